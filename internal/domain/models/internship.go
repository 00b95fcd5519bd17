package models

import "time"

type Internship struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title" binding:"required,min=3,max=200"`
	Department  string     `json:"department"`
	Location    string     `json:"location"`
	Mode        string     `json:"mode" binding:"omitempty,oneof=remote onsite hybrid"`
	Duration    string     `json:"duration"`
	Stipend     string     `json:"stipend"`
	Description string     `json:"description"`
	IsActive    bool       `json:"isActive"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
