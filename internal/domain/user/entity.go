package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Covers registered customers, admins, and lightweight guest
// accounts created on the fly during checkout.
type User struct {
	id           uuid.UUID
	email        Email
	name         string
	phone        string
	passwordHash string
	role         Role
	isGuest      bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewGuest creates a guest account from contact info. Guests share one
// constant placeholder credential; they never authenticate with it, it
// only satisfies the not-null credential column.
func NewGuest(contact GuestContact, placeholderHash string) *User {
	return &User{
		id:           uuid.New(),
		email:        contact.Email(),
		name:         contact.Name(),
		phone:        contact.Phone(),
		passwordHash: placeholderHash,
		role:         RoleCustomer,
		isGuest:      true,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() Email          { return u.email }
func (u *User) Name() string          { return u.name }
func (u *User) Phone() string         { return u.phone }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) IsGuest() bool        { return u.isGuest }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
