package domain

import "time"

// StatusQuery is the customer's input: an order number and optional email.
type StatusQuery struct {
	Order string
	Email string
}

// StatusReport is the payload rendered as JSON or as the HTML status card.
type StatusReport struct {
	OrderName string    `json:"orderName"`
	CreatedAt time.Time `json:"createdAt"`
	DaysSince int       `json:"daysSince"`
	Stage     Stage     `json:"stage"`
	Message   string    `json:"message"`
}
