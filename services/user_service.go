package services

import (
	"errors"
	"strings"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
	"github.com/bako110/Sonaby/utils"
)

// UserUpdateInput carries the fields an administrator may change on a
// staff account. Password is optional.
type UserUpdateInput struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"required"`
	IsActive  *bool  `json:"is_active"`
	Password  string `json:"password"`
}

// InterfaceUserService owns staff account administration
type InterfaceUserService interface {
	GetByID(id uint) (*models.User, error)
	Update(id uint, input UserUpdateInput) (*models.User, error)
	Delete(id uint) error
	List(search, role string, p models.PaginationQuery) ([]models.User, int64, error)
}

// UserService implements staff account administration. Account
// creation goes through the auth service's Register.
type UserService struct {
	store store.Store
}

// NewUserService creates a new user service
func NewUserService(s store.Store) InterfaceUserService {
	return &UserService{store: s}
}

// GetByID returns one staff account
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.store.Users().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("user %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return user, nil
}

// Update replaces the account fields
func (s *UserService) Update(id uint, input UserUpdateInput) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, code.Validation("email is required")
	}
	if !models.IsValidRole(input.Role) {
		return nil, code.Validation("unknown role %q", input.Role)
	}
	taken, err := s.store.Users().EmailTaken(email, id)
	if err != nil {
		return nil, code.Internal(err)
	}
	if taken {
		return nil, code.Conflict("email %s is already registered", email)
	}

	user.Email = email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Phone = input.Phone
	user.Role = input.Role
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != "" {
		if len(input.Password) < 8 {
			return nil, code.Validation("password must be at least 8 characters")
		}
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, code.Internal(err)
		}
		user.PasswordHash = hash
	}
	if err := s.store.Users().Update(user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, code.Conflict("email %s is already registered", email)
		}
		return nil, code.Internal(err)
	}
	return user, nil
}

// Delete removes a staff account
func (s *UserService) Delete(id uint) error {
	if err := s.store.Users().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("user %d not found", id)
		}
		return code.Internal(err)
	}
	return nil
}

// List pages through staff accounts
func (s *UserService) List(search, role string, p models.PaginationQuery) ([]models.User, int64, error) {
	p.Normalize()
	if role != "" && !models.IsValidRole(role) {
		return nil, 0, code.Validation("unknown role %q", role)
	}
	users, total, err := s.store.Users().List(search, role, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return users, total, nil
}
