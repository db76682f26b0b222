package models

import "time"

// Stavy objednávky.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusDelivering = "delivering"
	OrderStatusReady      = "ready"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order je odoslaná objednávka — sploštený snapshot zákazníckych údajov,
// položiek a súm. ID, stav a čas vytvorenia prideľuje úložisko.
type Order struct {
	ID                 int          `json:"id"`
	SessionID          string       `json:"-"`
	CustomerName       string       `json:"customerName"`
	CustomerEmail      string       `json:"customerEmail"`
	CustomerPhone      string       `json:"customerPhone"`
	DeliveryAddress    string       `json:"deliveryAddress"`
	DeliveryCity       string       `json:"deliveryCity"`
	DeliveryCityPart   string       `json:"deliveryCityPart,omitempty"`
	DeliveryPostalCode string       `json:"deliveryPostalCode"`
	DeliveryType       DeliveryType `json:"deliveryType"`
	DeliveryFee        float64      `json:"deliveryFee"`
	Notes              string       `json:"notes,omitempty"`
	Items              []CartItem   `json:"items"`
	TotalAmount        float64      `json:"totalAmount"`
	Status             string       `json:"status"`
	CreatedAt          time.Time    `json:"createdAt"`
}
