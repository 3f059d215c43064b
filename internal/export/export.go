package export

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

// ErrPDFDependencyMissing reports that no headless browser is installed.
var ErrPDFDependencyMissing = errors.New("pdf dependency missing")

// Result is a rendered export artifact.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// Service renders tire request reports as PDF documents.
type Service struct{}

// NewService creates the export service.
func NewService() *Service {
	return &Service{}
}

// RequestPDF renders the printable report for a single request.
func (s *Service) RequestPDF(request *model.TireRequest) (*Result, error) {
	html, err := renderReportHTML(request)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return exportPDF(html, "tire-request-"+request.ID)
}

type reportData struct {
	Request     *model.TireRequest
	GeneratedAt string
	StatusClass string
}

func renderReportHTML(request *model.TireRequest) (string, error) {
	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	statusClass := "status-pending"
	switch request.Status {
	case model.RequestStatusEngineerApproved:
		statusClass = "status-approved"
	case model.RequestStatusManagerRejected, model.RequestStatusTTORejected, model.RequestStatusEngineerRejected:
		statusClass = "status-rejected"
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, reportData{
		Request:     request,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		StatusClass: statusClass,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
    body { font-family: Arial, sans-serif; color: #222; margin: 0; }
    h1 { font-size: 20px; border-bottom: 2px solid #2e6c80; padding-bottom: 8px; }
    table { width: 100%; border-collapse: collapse; margin-top: 16px; }
    td { border: 1px solid #ccc; padding: 6px 10px; font-size: 12px; }
    td.label { width: 35%; background: #f4f6f8; font-weight: bold; }
    .status { display: inline-block; padding: 2px 10px; border-radius: 3px; font-size: 12px; }
    .status-approved { background: #d4edda; color: #155724; }
    .status-rejected { background: #f8d7da; color: #721c24; }
    .status-pending { background: #fff3cd; color: #856404; }
    .footer { margin-top: 24px; font-size: 10px; color: #888; }
</style>
</head>
<body>
    <h1>Tire Replacement Request Report</h1>
    <p>Request ID: <strong>{{.Request.ID}}</strong>
       &nbsp; Status: <span class="status {{.StatusClass}}">{{.Request.Status}}</span></p>
    <table>
        <tr><td class="label">Vehicle Number</td><td>{{.Request.VehicleNo}}</td></tr>
        <tr><td class="label">Vehicle Type</td><td>{{.Request.VehicleType}}</td></tr>
        <tr><td class="label">Brand / Model</td><td>{{.Request.VehicleBrand}} {{.Request.VehicleModel}}</td></tr>
        <tr><td class="label">User Section</td><td>{{.Request.UserSection}}</td></tr>
        <tr><td class="label">Cost Center</td><td>{{.Request.CostCenter}}</td></tr>
        <tr><td class="label">Replacement Date</td><td>{{.Request.ReplacementDate}}</td></tr>
        <tr><td class="label">Existing Tire Make</td><td>{{.Request.ExistingMake}}</td></tr>
        <tr><td class="label">Tire Size</td><td>{{.Request.TireSize}}</td></tr>
        <tr><td class="label">Number of Tires</td><td>{{.Request.NoOfTires}}</td></tr>
        <tr><td class="label">Number of Tubes</td><td>{{.Request.NoOfTubes}}</td></tr>
        <tr><td class="label">Present Km</td><td>{{.Request.PresentKm}}</td></tr>
        <tr><td class="label">Previous Km</td><td>{{.Request.PreviousKm}}</td></tr>
        <tr><td class="label">Wear Indicator</td><td>{{.Request.WearIndicator}}</td></tr>
        <tr><td class="label">Wear Pattern</td><td>{{.Request.WearPattern}}</td></tr>
        <tr><td class="label">Officer Service No</td><td>{{.Request.OfficerServiceNo}}</td></tr>
        <tr><td class="label">Requester Email</td><td>{{.Request.Email}}</td></tr>
        <tr><td class="label">Comments</td><td>{{.Request.Comments}}</td></tr>
        {{if .Request.RejectionReason}}<tr><td class="label">Rejection Reason</td><td>{{.Request.RejectionReason}}</td></tr>{{end}}
    </table>
    <div class="footer">Generated {{.GeneratedAt}} by the Tire Management System</div>
</body>
</html>`
