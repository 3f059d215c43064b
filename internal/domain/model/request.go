package model

import "time"

// RequestStatus describes the position of a tire request in the approval workflow.
type RequestStatus string

const (
	RequestStatusSubmitted        RequestStatus = "SUBMITTED"
	RequestStatusManagerApproved  RequestStatus = "MANAGER_APPROVED"
	RequestStatusManagerRejected  RequestStatus = "MANAGER_REJECTED"
	RequestStatusTTOApproved      RequestStatus = "TTO_APPROVED"
	RequestStatusTTORejected      RequestStatus = "TTO_REJECTED"
	RequestStatusEngineerApproved RequestStatus = "ENGINEER_APPROVED"
	RequestStatusEngineerRejected RequestStatus = "ENGINEER_REJECTED"

	// Historical aliases still present in old documents. Treated as
	// submitted-equivalent for dashboard filtering and workflow guards.
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
)

// SubmittedEquivalent reports whether the status counts as freshly submitted.
func (s RequestStatus) SubmittedEquivalent() bool {
	return s == RequestStatusSubmitted || s == RequestStatusPending || s == RequestStatusApproved
}

// SubmittedStatuses lists statuses shown on the manager dashboard.
func SubmittedStatuses() []RequestStatus {
	return []RequestStatus{RequestStatusSubmitted, RequestStatusPending, RequestStatusApproved}
}

// TireRequest is a single tire replacement request moving through
// Manager -> TTO -> Engineer approval.
type TireRequest struct {
	ID               string        `json:"id"`
	VehicleNo        string        `json:"vehicleNo"`
	VehicleType      string        `json:"vehicleType"`
	VehicleBrand     string        `json:"vehicleBrand"`
	VehicleModel     string        `json:"vehicleModel"`
	UserSection      string        `json:"userSection"`
	ReplacementDate  string        `json:"replacementDate"`
	ExistingMake     string        `json:"existingMake"`
	TireSize         string        `json:"tireSize"`
	NoOfTires        string        `json:"noOfTires"`
	NoOfTubes        string        `json:"noOfTubes"`
	CostCenter       string        `json:"costCenter"`
	PresentKm        string        `json:"presentKm"`
	PreviousKm       string        `json:"previousKm"`
	WearIndicator    string        `json:"wearIndicator"`
	WearPattern      string        `json:"wearPattern"`
	OfficerServiceNo string        `json:"officerServiceNo"`
	Email            string        `json:"email"`
	Comments         string        `json:"comments"`
	Status           RequestStatus `json:"status"`

	// PhotoURLs is the canonical photo list. TirePhotoURLs mirrors it in
	// responses for compatibility with the legacy frontend field.
	PhotoURLs     []string `json:"photoUrls"`
	TirePhotoURLs []string `json:"tirePhotoUrls"`

	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	TTOApprovalDate    *time.Time `json:"ttoApprovalDate,omitempty"`
	TTORejectionDate   *time.Time `json:"ttoRejectionDate,omitempty"`
	TTORejectionReason *string    `json:"ttoRejectionReason,omitempty"`

	SubmittedAt time.Time `json:"submittedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
