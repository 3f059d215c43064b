package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

func validRequest() *model.TireRequest {
	return &model.TireRequest{
		VehicleNo:        "WP-1234",
		UserSection:      "IT",
		ReplacementDate:  time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		NoOfTires:        "4",
		NoOfTubes:        "2",
		CostCenter:       "IT-001",
		OfficerServiceNo: "EMP001",
		Email:            "user@example.com",
		Comments:         "front axle wear",
	}
}

func TestValidateRequestValid(t *testing.T) {
	if violations := ValidateRequest(validRequest()); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateRequestRules(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*model.TireRequest)
		message string
	}{
		{"missing vehicle number", func(r *model.TireRequest) { r.VehicleNo = " " }, "Vehicle number is required"},
		{"vehicle number too long", func(r *model.TireRequest) { r.VehicleNo = "WP-123456" }, "Vehicle number cannot exceed 8 characters"},
		{"missing section", func(r *model.TireRequest) { r.UserSection = "" }, "User section is required and cannot be empty"},
		{"missing date", func(r *model.TireRequest) { r.ReplacementDate = "" }, "Replacement date is required"},
		{"bad date format", func(r *model.TireRequest) { r.ReplacementDate = "01/02/2025" }, "Invalid replacement date format. Please use yyyy-MM-dd format"},
		{"future date", func(r *model.TireRequest) {
			r.ReplacementDate = time.Now().AddDate(0, 0, 2).Format("2006-01-02")
		}, "Replacement date cannot be in the future"},
		{"missing tire count", func(r *model.TireRequest) { r.NoOfTires = "" }, "Number of tires is required"},
		{"non-numeric tire count", func(r *model.TireRequest) { r.NoOfTires = "four" }, "Number of tires must be a valid number"},
		{"zero tires", func(r *model.TireRequest) { r.NoOfTires = "0" }, "Number of tires must be at least 1"},
		{"too many tires", func(r *model.TireRequest) { r.NoOfTires = "51" }, "Number of tires cannot exceed 50"},
		{"non-numeric tube count", func(r *model.TireRequest) { r.NoOfTubes = "two" }, "Number of tubes must be a valid number"},
		{"negative tubes", func(r *model.TireRequest) { r.NoOfTubes = "-1" }, "Number of tubes cannot be negative"},
		{"too many tubes", func(r *model.TireRequest) { r.NoOfTubes = "51" }, "Number of tubes cannot exceed 50"},
		{"missing cost center", func(r *model.TireRequest) { r.CostCenter = "" }, "Cost center should be automatically filled according to registered data"},
		{"missing service number", func(r *model.TireRequest) { r.OfficerServiceNo = "" }, "Officer service number should be automatically filled according to registered data"},
		{"missing email", func(r *model.TireRequest) { r.Email = "" }, "Email should be automatically filled according to registered data"},
		{"bad email", func(r *model.TireRequest) { r.Email = "not-an-email" }, "Please provide a valid email address"},
		{"comment too long", func(r *model.TireRequest) { r.Comments = strings.Repeat("x", 501) }, "Comments cannot exceed 500 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := validRequest()
			tc.mutate(request)
			violations := ValidateRequest(request)
			found := false
			for _, v := range violations {
				if v == tc.message {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("expected %q in violations, got %v", tc.message, violations)
			}
		})
	}
}

func TestValidateRequestAccumulatesAllViolations(t *testing.T) {
	violations := ValidateRequest(&model.TireRequest{})
	if len(violations) < 6 {
		t.Fatalf("expected every violated rule to be reported, got %v", violations)
	}
}

func TestTubesAreOptional(t *testing.T) {
	request := validRequest()
	request.NoOfTubes = ""
	if violations := ValidateRequest(request); len(violations) != 0 {
		t.Fatalf("expected no violations with empty tube count, got %v", violations)
	}
}

func TestAutoPopulateFillsBlanks(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	request := &model.TireRequest{UserSection: "IT"}
	AutoPopulate(request, func() time.Time { return fixed })

	if request.CostCenter != "IT-001" {
		t.Errorf("expected section cost center, got %q", request.CostCenter)
	}
	if request.OfficerServiceNo == "" {
		t.Error("expected service number to be generated")
	}
	if !strings.HasSuffix(request.Email, "@company.com") {
		t.Errorf("expected generated email, got %q", request.Email)
	}
}

func TestAutoPopulateUnknownSectionFallsBack(t *testing.T) {
	request := &model.TireRequest{UserSection: "Catering"}
	AutoPopulate(request, nil)
	if request.CostCenter != "GEN-001" {
		t.Errorf("expected fallback cost center, got %q", request.CostCenter)
	}
}

func TestAutoPopulateKeepsProvidedValues(t *testing.T) {
	request := validRequest()
	AutoPopulate(request, nil)
	if request.CostCenter != "IT-001" || request.Email != "user@example.com" {
		t.Errorf("expected provided values untouched, got %+v", request)
	}
}

func TestValidateImages(t *testing.T) {
	violations := ValidateImages([]ImageUpload{
		{Filename: "ok.png", ContentType: "image/png", Size: 1024},
		{Filename: "big.jpg", ContentType: "image/jpeg", Size: 6 * 1024 * 1024},
		{Filename: "doc.pdf", ContentType: "application/pdf", Size: 1024},
	})

	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", violations)
	}
	if !strings.Contains(violations[0], "big.jpg") {
		t.Errorf("expected size violation for big.jpg, got %q", violations[0])
	}
	if !strings.Contains(violations[1], "doc.pdf") {
		t.Errorf("expected type violation for doc.pdf, got %q", violations[1])
	}
}

func TestFormatFileSize(t *testing.T) {
	if got := formatFileSize(512); got != "512 bytes" {
		t.Errorf("unexpected format: %q", got)
	}
	if got := formatFileSize(2048); got != "2.00 KB" {
		t.Errorf("unexpected format: %q", got)
	}
	if got := formatFileSize(3 * 1024 * 1024); got != "3.00 MB" {
		t.Errorf("unexpected format: %q", got)
	}
}
