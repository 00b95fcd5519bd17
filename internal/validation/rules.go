// Package validation holds the form rules shared by the checkout client and the HTTP handlers.
package validation

import (
	"regexp"
	"strings"

	"agencylms/internal/domain"
	"agencylms/internal/utils"
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

// Field names as they travel on the wire.
const (
	FieldFullName          = "fullName"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldAddress           = "address"
	FieldCity              = "city"
	FieldState             = "state"
	FieldPincode           = "pincode"
	FieldPaymentMethod     = "paymentMethod"
	FieldPaymentScreenshot = "paymentScreenshot"
	FieldTransactionID     = "transactionId"
	FieldCourseID          = "courseId"
)

// Errors maps a field name to its first error message.
type Errors map[string]string

// Add keeps the first message recorded for a field.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = msg
}

func (e Errors) Empty() bool { return len(e) == 0 }

// Err converts a non-empty map to domain.ValidationError.
func (e Errors) Err() error {
	if e.Empty() {
		return nil
	}
	out := make(map[string]string, len(e))
	for k, v := range e {
		out[k] = v
	}
	return domain.ValidationError{Fields: out}
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsPhone10 accepts any formatting as long as exactly ten digits remain.
func IsPhone10(s string) bool {
	return len(utils.DigitsOnly(s)) == 10
}

func IsPincode(s string) bool {
	return pincodePattern.MatchString(strings.TrimSpace(s))
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// PersonalDetails is step one of the enrollment checkout.
type PersonalDetails struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	Pincode  string
}

func ValidatePersonal(p PersonalDetails) Errors {
	errs := Errors{}
	if blank(p.FullName) {
		errs.Add(FieldFullName, "Full name is required")
	}
	switch {
	case blank(p.Email):
		errs.Add(FieldEmail, "Email is required")
	case !IsEmail(p.Email):
		errs.Add(FieldEmail, "Please enter a valid email address")
	}
	switch {
	case blank(p.Phone):
		errs.Add(FieldPhone, "Phone number is required")
	case !IsPhone10(p.Phone):
		errs.Add(FieldPhone, "Phone number should be 10 digits")
	}
	if blank(p.Address) {
		errs.Add(FieldAddress, "Address is required")
	}
	if blank(p.City) {
		errs.Add(FieldCity, "City is required")
	}
	if blank(p.State) {
		errs.Add(FieldState, "State is required")
	}
	switch {
	case blank(p.Pincode):
		errs.Add(FieldPincode, "Pincode is required")
	case !IsPincode(p.Pincode):
		errs.Add(FieldPincode, "Pincode should be 6 digits")
	}
	return errs
}

// PaymentProof is step two of the enrollment checkout.
type PaymentProof struct {
	HasScreenshot bool
	TransactionID string
}

func ValidatePayment(p PaymentProof) Errors {
	errs := Errors{}
	if !p.HasScreenshot {
		errs.Add(FieldPaymentScreenshot, "Please upload the payment screenshot")
	}
	if blank(p.TransactionID) {
		errs.Add(FieldTransactionID, "Transaction ID is required")
	}
	return errs
}
