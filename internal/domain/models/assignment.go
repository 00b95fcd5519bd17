package models

import "time"

type Assignment struct {
	ID          int64      `json:"id"`
	CourseID    int64      `json:"courseId" binding:"required,gt=0"`
	Title       string     `json:"title" binding:"required,min=3,max=200"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	MaxScore    int        `json:"maxScore" binding:"gte=0,lte=1000"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
