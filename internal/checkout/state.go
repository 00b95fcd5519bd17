// Package checkout is the two step enrollment checkout: personal details, then payment
// proof, then a single multipart submission to the enrollment endpoint.
package checkout

import (
	"strconv"

	"agencylms/internal/validation"
)

type Step int

const (
	StepPersonal Step = 1
	StepPayment  Step = 2
)

// File is a picked payment screenshot held in memory until submit.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Course is what the learner clicked "Enroll" on.
type Course struct {
	ID         int64
	Name       string
	Price      float64
	Instructor string
}

type FormData struct {
	FullName          string
	Email             string
	Phone             string
	Address           string
	City              string
	State             string
	Pincode           string
	PaymentMethod     string
	PaymentScreenshot *File
	TransactionID     string
	CourseID          int64
	CourseName        string
	CoursePrice       float64
	Instructor        string
}

// State is a snapshot of the flow. Errors is a copy and safe to keep.
type State struct {
	CurrentStep  Step
	FormData     FormData
	Errors       validation.Errors
	Loading      bool
	ShowThankYou bool
	Alert        string
	Preview      string
}

func (f FormData) personal() validation.PersonalDetails {
	return validation.PersonalDetails{
		FullName: f.FullName,
		Email:    f.Email,
		Phone:    f.Phone,
		Address:  f.Address,
		City:     f.City,
		State:    f.State,
		Pincode:  f.Pincode,
	}
}

func (f FormData) payment() validation.PaymentProof {
	return validation.PaymentProof{
		HasScreenshot: f.PaymentScreenshot != nil,
		TransactionID: f.TransactionID,
	}
}

// fields lists the multipart text fields in wire order.
func (f FormData) fields() [][2]string {
	return [][2]string{
		{validation.FieldCourseID, strconv.FormatInt(f.CourseID, 10)},
		{validation.FieldFullName, f.FullName},
		{validation.FieldEmail, f.Email},
		{validation.FieldPhone, f.Phone},
		{validation.FieldAddress, f.Address},
		{validation.FieldCity, f.City},
		{validation.FieldState, f.State},
		{validation.FieldPincode, f.Pincode},
		{validation.FieldPaymentMethod, f.PaymentMethod},
		{validation.FieldTransactionID, f.TransactionID},
	}
}

func copyErrors(e validation.Errors) validation.Errors {
	out := make(validation.Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
