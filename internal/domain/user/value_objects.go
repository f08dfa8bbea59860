package user

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidRole  = errors.New("invalid role")
	ErrEmptyName    = errors.New("name cannot be empty")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

// GuestContact is the contact info an unauthenticated caller supplies
// instead of credentials. Phone is free-form; it is refreshed on the
// stored account whenever a returning guest presents a different one.
type GuestContact struct {
	name  string
	email Email
	phone string
}

func NewGuestContact(name, email, phone string) (GuestContact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return GuestContact{}, ErrEmptyName
	}
	addr, err := NewEmail(email)
	if err != nil {
		return GuestContact{}, err
	}
	return GuestContact{
		name:  name,
		email: addr,
		phone: strings.TrimSpace(phone),
	}, nil
}

func (g GuestContact) Name() string  { return g.name }
func (g GuestContact) Email() Email  { return g.email }
func (g GuestContact) Phone() string { return g.phone }
