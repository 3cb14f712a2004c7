package services

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Role names shown to the operator.
const (
	RoleManager = "manager"
	RoleVisitor = "visitor"
)

// ErrManagerRequired is returned for inventory changes attempted in visitor mode.
var ErrManagerRequired = errors.New("manager mode required")

// AuthService tracks whether the operator has unlocked manager mode.
// Visitors may browse; only managers may change the inventory.
type AuthService struct {
	managerHash []byte
	manager     bool
}

// NewAuthService creates a new AuthService. Without a password hash there is
// nothing to unlock and the operator starts in manager mode.
func NewAuthService(managerPasswordHash string) *AuthService {
	return &AuthService{
		managerHash: []byte(managerPasswordHash),
		manager:     managerPasswordHash == "",
	}
}

// HashPassword returns the bcrypt hash to configure as the manager password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Login switches to manager mode if the password matches.
func (s *AuthService) Login(password string) error {
	if len(s.managerHash) == 0 {
		s.manager = true
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(s.managerHash, []byte(password)); err != nil {
		log.Printf("Manager login rejected: %v", err)
		return fmt.Errorf("invalid credentials")
	}
	s.manager = true
	return nil
}

// Logout returns to visitor mode.
func (s *AuthService) Logout() {
	s.manager = false
}

// IsManagerMode reports whether inventory changes are allowed.
func (s *AuthService) IsManagerMode() bool {
	return s.manager
}

// Role returns the current operator role.
func (s *AuthService) Role() string {
	if s.manager {
		return RoleManager
	}
	return RoleVisitor
}
