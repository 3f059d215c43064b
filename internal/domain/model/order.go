package model

import "time"

// OrderStatus describes seller-side processing of a tire order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusRejected  OrderStatus = "rejected"
)

// TireOrder is the purchase order projected from a fully approved request.
// It references the request but does not own it and may outlive it.
type TireOrder struct {
	ID              string      `json:"id"`
	RequestID       string      `json:"requestId"`
	VehicleNo       string      `json:"vehicleNo"`
	TireBrand       string      `json:"tireBrand"`
	TireSize        string      `json:"tireSize"`
	Quantity        int         `json:"quantity"`
	VendorEmail     string      `json:"vendorEmail"`
	UserEmail       string      `json:"userEmail"`
	Status          OrderStatus `json:"status"`
	RejectionReason *string     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
