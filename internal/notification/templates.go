package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

type requestData struct {
	RequestID     string
	VehicleNo     string
	UserSection   string
	TireSize      string
	NoOfTires     string
	DashboardLink string
	OrderLink     string
	Reason        string
}

type orderData struct {
	OrderID       string
	RequestID     string
	VehicleNo     string
	TireBrand     string
	TireSize      string
	Quantity      int
	DashboardLink string
	Reason        string
}

func renderTemplate(tmpl string, data interface{}) (string, error) {
	t, err := template.New("notification").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse notification template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render notification template: %w", err)
	}
	return buf.String(), nil
}

const managerNewRequestTemplate = `<html>
<body>
    <h2 style="color: #2e6c80;">New Tire Request Awaiting Your Approval</h2>
    <p>Hello,</p>
    <p>A new tire replacement request has been submitted.</p>
    <ul>
        <li>Request ID: <strong>{{.RequestID}}</strong></li>
        <li>Vehicle: <strong>{{.VehicleNo}}</strong></li>
        <li>Section: {{.UserSection}}</li>
        <li>Tire size: {{.TireSize}}</li>
        <li>Quantity: {{.NoOfTires}}</li>
    </ul>
    <p><a href="{{.DashboardLink}}" style="color: #1a73e8;">Review on the Manager Dashboard</a></p>
    <br/>
    <p>Best regards,<br/>Tire Management Team</p>
</body>
</html>`

const ttoReviewTemplate = `<html>
<body>
    <h2 style="color: #2e6c80;">Tire Request Approved by Manager - TTO Review Required</h2>
    <p>Hello,</p>
    <p>Request <strong>{{.RequestID}}</strong> for vehicle <strong>{{.VehicleNo}}</strong> has been approved by the manager and now awaits your review.</p>
    <p><a href="{{.DashboardLink}}" style="color: #1a73e8;">Open the TTO Dashboard</a></p>
    <br/>
    <p>Best regards,<br/>Tire Management Team</p>
</body>
</html>`

const engineerReviewTemplate = `<html>
<body>
    <h2 style="color: #2e6c80;">Tire Request - Final Engineering Approval Required</h2>
    <p>Hello,</p>
    <p>Request <strong>{{.RequestID}}</strong> for vehicle <strong>{{.VehicleNo}}</strong> has been approved by the TTO and requires final engineering approval.</p>
    <p><a href="{{.DashboardLink}}" style="color: #1a73e8;">Open the Engineer Dashboard</a></p>
    <br/>
    <p>Best regards,<br/>Tire Management Team</p>
</body>
</html>`

const requestApprovedTemplate = `<html>
<body>
    <h2 style="color: #2e6c80;">Your Tire Request Has Been Approved</h2>
    <p>Hello,</p>
    <p>Your tire request with ID <strong>{{.RequestID}}</strong> for vehicle <strong>{{.VehicleNo}}</strong> has been approved by the Engineer.</p>
    <p><a href="{{.OrderLink}}" style="color: #1a73e8;">Order Tires Now</a></p>
    <p>Thank you for using our service.</p>
    <br/>
    <p>Best regards,<br/>Tire Management Team</p>
</body>
</html>`

const sellerOrderTemplate = `<html>
<body>
    <h2 style="color: #2e6c80;">New Tire Order Received</h2>
    <p>Hello,</p>
    <p>A new tire order is ready for processing.</p>
    <ul>
        <li>Order ID: <strong>{{.OrderID}}</strong></li>
        <li>Vehicle: <strong>{{.VehicleNo}}</strong></li>
        <li>Tires: {{.TireBrand}} - Size: {{.TireSize}}</li>
        <li>Quantity: {{.Quantity}}</li>
    </ul>
    <p><a href="{{.DashboardLink}}" style="color: #1a73e8;">Open the Seller Dashboard</a></p>
    <br/>
    <p>Best regards,<br/>Tire Management Team</p>
</body>
</html>`

const orderConfirmedTemplate = `<html>
<body>
    <h2 style="color: #2e6c80;">Your Tire Order is Confirmed</h2>
    <p>Hello,</p>
    <p>Your tire order <strong>{{.OrderID}}</strong> for vehicle <strong>{{.VehicleNo}}</strong> has been confirmed by the seller.</p>
    <br/>
    <p>Best regards,<br/>Tire Management Team</p>
</body>
</html>`

const orderRejectedTemplate = `<html>
<body>
    <h2 style="color: #c0392b;">Your Tire Order Was Rejected</h2>
    <p>Hello,</p>
    <p>Your tire order <strong>{{.OrderID}}</strong> for vehicle <strong>{{.VehicleNo}}</strong> was rejected by the seller.</p>
    <p>Reason: {{.Reason}}</p>
    <br/>
    <p>Best regards,<br/>Tire Management Team</p>
</body>
</html>`
