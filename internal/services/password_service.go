package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const MaxPasswordLength = 72 // bcrypt limitation

var (
	ErrPasswordEmpty    = errors.New("password cannot be empty")
	ErrPasswordTooLong  = fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	ErrPasswordTooShort = errors.New("password is too short")
)

// PasswordService hashes and checks admin passwords
type PasswordService struct {
	cost      int
	minLength int
}

func NewPasswordService(cost, minLength int) PasswordServiceInterface {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordService{
		cost:      cost,
		minLength: minLength,
	}
}

func (ps *PasswordService) ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}

	if len(password) < ps.minLength {
		return fmt.Errorf("%w: minimum is %d characters", ErrPasswordTooShort, ps.minLength)
	}

	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	return nil
}

// HashPassword validates and hashes a password using bcrypt
func (ps *PasswordService) HashPassword(password string) (string, error) {
	if err := ps.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

func (ps *PasswordService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
