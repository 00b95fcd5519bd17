package models

import "time"

type Resource struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId" binding:"required,gt=0"`
	Title     string    `json:"title" binding:"required,min=2,max=200"`
	Kind      string    `json:"kind" binding:"required,oneof=video pdf link slides"`
	URL       string    `json:"url" binding:"required,url"`
	CreatedAt time.Time `json:"createdAt"`
}
