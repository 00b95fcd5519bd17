package models

// PaymentReview is the admin decision on an enrollment request's payment proof.
type PaymentReview struct {
	RequestID  int64  `json:"requestId"`
	ReviewerID int64  `json:"reviewerId"`
	Approve    bool   `json:"approve"`
	Reason     string `json:"reason,omitempty"`
}

// PaymentFilter narrows the admin verification queue.
type PaymentFilter struct {
	Status string
	Query  string
	Page   int
	Limit  int
}
