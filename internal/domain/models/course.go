package models

import "time"

type Course struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" binding:"required,min=3,max=200"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category" binding:"max=80"`
	Instructor  string    `json:"instructor" binding:"max=120"`
	Price       float64   `json:"price" binding:"gte=0"`
	Duration    string    `json:"duration"`
	Level       string    `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	ImageURL    string    `json:"imageUrl" binding:"omitempty,url"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CourseFilter drives the public catalog listing.
type CourseFilter struct {
	Query         string
	Category      string
	Page          int
	Limit         int
	IncludeHidden bool
}
