package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role codes as constants
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleSupplier = "supplier"
)

// Roles lists every valid role value.
var Roles = []string{RoleCustomer, RoleAdmin, RoleSupplier}

// User represents an account in the system (customer, admin or supplier)
type User struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role     string `gorm:"type:varchar(20);not null;default:'customer'" json:"role" validate:"required,oneof=customer admin supplier"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsValidRole reports whether role is one of the known role codes.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
