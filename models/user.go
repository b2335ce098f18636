package models

import (
	"errors"

	goval "github.com/go-passwd/validator"
	"golang.org/x/crypto/bcrypt"
)

// User represents an author of the application
type User struct {
	Model
	Fullname       string `json:"fullname" form:"fullname" conform:"trim" binding:"required,min=2"`
	Username       string `json:"username" form:"username" gorm:"uniqueIndex;not null" conform:"trim,lower" binding:"required,min=2"`
	Email          string `json:"email" form:"email" gorm:"uniqueIndex;not null" conform:"trim,lower,email" binding:"required,email"`
	Password       string `json:"password,omitempty" form:"password" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string `json:"-"`
	ResetToken     string `json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ForgotPassword struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" form:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required"`
}

// Blacklist stores revoked session tokens until they expire.
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token" gorm:"type:text"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	err := passwordValidator.Validate(password)
	return err
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
