package models

import "time"

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"

	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
)

// EnrollmentRequest is one checkout submission waiting for payment verification.
type EnrollmentRequest struct {
	ID              int64      `json:"id"`
	CourseID        int64      `json:"courseId"`
	CourseTitle     string     `json:"courseTitle,omitempty"`
	UserID          *int64     `json:"userId,omitempty"`
	FullName        string     `json:"fullName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Address         string     `json:"address"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	Pincode         string     `json:"pincode"`
	PaymentMethod   string     `json:"paymentMethod"`
	TransactionID   string     `json:"transactionId"`
	ScreenshotKey   string     `json:"-"`
	ScreenshotType  string     `json:"screenshotType"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ReviewedBy      *int64     `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Enrollment grants a learner access to a course after payment approval.
type Enrollment struct {
	ID          int64     `json:"id"`
	UserID      *int64    `json:"userId,omitempty"`
	Email       string    `json:"email"`
	CourseID    int64     `json:"courseId"`
	CourseTitle string    `json:"courseTitle,omitempty"`
	Instructor  string    `json:"instructor,omitempty"`
	RequestID   int64     `json:"requestId"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}
