package booking

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyCustomerName = errors.New("customer name is required")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrEmptyServiceType  = errors.New("service type is required")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// CustomerContact is the customer payload carried on a booking. It is opaque
// to capacity accounting.
type CustomerContact struct {
	name    string
	email   string
	phone   string
	address string
}

func NewCustomerContact(name, email, phone, address string) (CustomerContact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomerContact{}, ErrEmptyCustomerName
	}

	email = strings.TrimSpace(email)
	if !emailRegex.MatchString(email) {
		return CustomerContact{}, ErrInvalidEmail
	}

	return CustomerContact{
		name:    name,
		email:   email,
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
	}, nil
}

func (c CustomerContact) Name() string    { return c.name }
func (c CustomerContact) Email() string   { return c.email }
func (c CustomerContact) Phone() string   { return c.phone }
func (c CustomerContact) Address() string { return c.address }

type ServiceType struct {
	value string
}

func NewServiceType(s string) (ServiceType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ServiceType{}, ErrEmptyServiceType
	}
	return ServiceType{value: s}, nil
}

func (s ServiceType) String() string {
	return s.value
}
