package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var contactPhonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,20}$`)

const (
	minNameLen     = 2
	minMessageLen  = 10
	minPasswordLen = 6
)

// IsContactPhone is looser than IsPhone10: international numbers are allowed.
func IsContactPhone(s string) bool {
	return contactPhonePattern.MatchString(strings.TrimSpace(s))
}

func tooShort(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) < n
}

type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Message   string
}

func ValidateContact(in ContactInput) Errors {
	errs := Errors{}
	if tooShort(in.FirstName, minNameLen) {
		errs.Add("firstName", "First name must be at least 2 characters")
	}
	if tooShort(in.LastName, minNameLen) {
		errs.Add("lastName", "Last name must be at least 2 characters")
	}
	switch {
	case blank(in.Email):
		errs.Add("email", "Email is required")
	case !IsEmail(in.Email):
		errs.Add("email", "Please enter a valid email address")
	}
	if !blank(in.Phone) && !IsContactPhone(in.Phone) {
		errs.Add("phone", "Please enter a valid phone number")
	}
	if tooShort(in.Message, minMessageLen) {
		errs.Add("message", "Message must be at least 10 characters")
	}
	return errs
}

type ServiceRequestInput struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
}

func ValidateServiceRequest(in ServiceRequestInput) Errors {
	errs := Errors{}
	if tooShort(in.Name, minNameLen) {
		errs.Add("name", "Name must be at least 2 characters")
	}
	switch {
	case blank(in.Email):
		errs.Add("email", "Email is required")
	case !IsEmail(in.Email):
		errs.Add("email", "Please enter a valid email address")
	}
	if !blank(in.Phone) && !IsContactPhone(in.Phone) {
		errs.Add("phone", "Please enter a valid phone number")
	}
	if blank(in.Service) {
		errs.Add("service", "Please select a service")
	}
	if tooShort(in.Message, minMessageLen) {
		errs.Add("message", "Message must be at least 10 characters")
	}
	return errs
}

type RegistrationInput struct {
	Name     string
	Email    string
	Password string
}

func ValidateRegistration(in RegistrationInput) Errors {
	errs := Errors{}
	if tooShort(in.Name, minNameLen) {
		errs.Add("name", "Name must be at least 2 characters")
	}
	switch {
	case blank(in.Email):
		errs.Add("email", "Email is required")
	case !IsEmail(in.Email):
		errs.Add("email", "Please enter a valid email address")
	}
	if len(in.Password) < minPasswordLen {
		errs.Add("password", "Password must be at least 6 characters")
	}
	return errs
}
