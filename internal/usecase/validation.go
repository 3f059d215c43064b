package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

const (
	maxVehicleNoLength = 8
	maxTireQuantity    = 50
	maxTubeQuantity    = 50
	maxCommentLength   = 500
	maxImageSize       = 5 * 1024 * 1024

	replacementDateLayout = "2006-01-02"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// ValidateRequest checks a tire request against all field rules and returns
// the complete list of violations. An empty list means the request is valid.
func ValidateRequest(request *model.TireRequest) []string {
	errors := make([]string, 0)

	errors = validateVehicleNumber(request.VehicleNo, errors)
	errors = validateUserSection(request.UserSection, errors)
	errors = validateReplacementDate(request.ReplacementDate, errors)
	errors = validateTireQuantity(request.NoOfTires, errors)
	errors = validateTubeQuantity(request.NoOfTubes, errors)
	errors = validateCostCenter(request.CostCenter, errors)
	errors = validateOfficerServiceNumber(request.OfficerServiceNo, errors)
	errors = validateEmail(request.Email, errors)
	errors = validateComments(request.Comments, errors)

	return errors
}

func validateVehicleNumber(vehicleNo string, errors []string) []string {
	if strings.TrimSpace(vehicleNo) == "" {
		return append(errors, "Vehicle number is required")
	}
	if len(vehicleNo) > maxVehicleNoLength {
		return append(errors, fmt.Sprintf("Vehicle number cannot exceed %d characters", maxVehicleNoLength))
	}
	return errors
}

func validateUserSection(userSection string, errors []string) []string {
	if strings.TrimSpace(userSection) == "" {
		return append(errors, "User section is required and cannot be empty")
	}
	return errors
}

func validateReplacementDate(replacementDate string, errors []string) []string {
	if strings.TrimSpace(replacementDate) == "" {
		return append(errors, "Replacement date is required")
	}

	requested, err := time.Parse(replacementDateLayout, replacementDate)
	if err != nil {
		return append(errors, "Invalid replacement date format. Please use yyyy-MM-dd format")
	}
	if requested.After(time.Now()) {
		return append(errors, "Replacement date cannot be in the future")
	}
	return errors
}

func validateTireQuantity(noOfTires string, errors []string) []string {
	if strings.TrimSpace(noOfTires) == "" {
		return append(errors, "Number of tires is required")
	}

	quantity, err := strconv.Atoi(noOfTires)
	if err != nil {
		return append(errors, "Number of tires must be a valid number")
	}
	if quantity < 1 {
		return append(errors, "Number of tires must be at least 1")
	}
	if quantity > maxTireQuantity {
		return append(errors, fmt.Sprintf("Number of tires cannot exceed %d", maxTireQuantity))
	}
	return errors
}

func validateTubeQuantity(noOfTubes string, errors []string) []string {
	if strings.TrimSpace(noOfTubes) == "" {
		return errors // tubes are optional
	}

	quantity, err := strconv.Atoi(noOfTubes)
	if err != nil {
		return append(errors, "Number of tubes must be a valid number")
	}
	if quantity < 0 {
		return append(errors, "Number of tubes cannot be negative")
	}
	if quantity > maxTubeQuantity {
		return append(errors, fmt.Sprintf("Number of tubes cannot exceed %d", maxTubeQuantity))
	}
	return errors
}

func validateCostCenter(costCenter string, errors []string) []string {
	if strings.TrimSpace(costCenter) == "" {
		return append(errors, "Cost center should be automatically filled according to registered data")
	}
	return errors
}

func validateOfficerServiceNumber(officerServiceNo string, errors []string) []string {
	if strings.TrimSpace(officerServiceNo) == "" {
		return append(errors, "Officer service number should be automatically filled according to registered data")
	}
	return errors
}

func validateEmail(email string, errors []string) []string {
	if strings.TrimSpace(email) == "" {
		return append(errors, "Email should be automatically filled according to registered data")
	}
	if !emailPattern.MatchString(email) {
		return append(errors, "Please provide a valid email address")
	}
	return errors
}

func validateComments(comments string, errors []string) []string {
	if len(comments) > maxCommentLength {
		return append(errors, fmt.Sprintf("Comments cannot exceed %d characters", maxCommentLength))
	}
	return errors
}

// sectionCostCenters maps user sections to their registered cost centers.
var sectionCostCenters = map[string]string{
	"IT":         "IT-001",
	"HR":         "HR-001",
	"Finance":    "FIN-001",
	"Operations": "OPS-001",
}

const fallbackCostCenter = "GEN-001"

// AutoPopulate fills cost center, officer service number and email with
// deterministic placeholders when the submitter left them blank. It runs
// before validation so auto-filled requests still pass required-field checks.
func AutoPopulate(request *model.TireRequest, now func() time.Time) *model.TireRequest {
	if now == nil {
		now = time.Now
	}

	if strings.TrimSpace(request.CostCenter) == "" {
		cc, ok := sectionCostCenters[request.UserSection]
		if !ok {
			cc = fallbackCostCenter
		}
		request.CostCenter = cc
	}

	if strings.TrimSpace(request.OfficerServiceNo) == "" {
		request.OfficerServiceNo = fmt.Sprintf("SVC-%04d", now().UnixMilli()%10000)
	}

	if strings.TrimSpace(request.Email) == "" {
		request.Email = strings.ToLower(request.OfficerServiceNo) + "@company.com"
	}

	return request
}

// ImageUpload describes an uploaded photo to be checked before encoding.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
}

// ValidateImages checks uploaded image metadata, accumulating all violations
// instead of failing on the first one.
func ValidateImages(uploads []ImageUpload) []string {
	errors := make([]string, 0)

	for _, upload := range uploads {
		if upload.Size > maxImageSize {
			errors = append(errors, fmt.Sprintf("Image file size must be less than 5MB. Current file: %s (%s)",
				upload.Filename, formatFileSize(upload.Size)))
		}
		if !strings.HasPrefix(upload.ContentType, "image/") {
			errors = append(errors, fmt.Sprintf("Only image files are allowed. Invalid file: %s", upload.Filename))
		}
	}

	return errors
}

func formatFileSize(size int64) string {
	switch {
	case size >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(size)/(1024.0*1024.0))
	case size >= 1024:
		return fmt.Sprintf("%.2f KB", float64(size)/1024.0)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
