package models

import "time"

type Certificate struct {
	ID                int64     `json:"id"`
	CertificateNumber string    `json:"certificateNumber"`
	UserID            *int64    `json:"userId,omitempty"`
	RecipientName     string    `json:"recipientName"`
	Email             string    `json:"email"`
	CourseID          int64     `json:"courseId"`
	CourseTitle       string    `json:"courseTitle,omitempty"`
	Instructor        string    `json:"instructor,omitempty"`
	IssuedAt          time.Time `json:"issuedAt"`
}
