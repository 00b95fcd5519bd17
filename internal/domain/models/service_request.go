package models

import "time"

const (
	ServiceRequestNew        = "new"
	ServiceRequestInProgress = "in_progress"
	ServiceRequestClosed     = "closed"
)

// ServiceRequest is a lead from the marketing site's "request a service" form.
type ServiceRequest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Service   string    `json:"service"`
	Budget    string    `json:"budget"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
