package dto

import "time"

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// StatusPatchRequest carries optional status fields for partial updates.
// Absent fields are left untouched.
type StatusPatchRequest struct {
	Status             *string    `json:"status"`
	TTOApprovalDate    *time.Time `json:"ttoApprovalDate"`
	TTORejectionDate   *time.Time `json:"ttoRejectionDate"`
	TTORejectionReason *string    `json:"ttoRejectionReason"`
}

// ValidationResponse reports the outcome of a dry-run validation.
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// PhotosResponse carries the consolidated photo list of one request.
type PhotosResponse struct {
	RequestID string   `json:"requestId"`
	PhotoURLs []string `json:"photoUrls"`
}
