package entity

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Name         *string  `db:"name"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`

	// Password reset state. Only the SHA-256 hash of the issued token is
	// stored; the raw token leaves the system inside the reset email.
	ResetPasswordToken   *string    `db:"reset_password_token"`
	ResetPasswordExpires *time.Time `db:"reset_password_expires"`
}
