package services

import (
	"errors"
	"strings"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// BlacklistInput carries a manual blacklist request
type BlacklistInput struct {
	VisitorID uint   `json:"visitor_id" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// BlacklistStatus reports whether a visitor is blacklisted
type BlacklistStatus struct {
	VisitorID   uint                 `json:"visitor_id"`
	Blacklisted bool                 `json:"blacklisted"`
	Entry       *models.NonDesirable `json:"entry,omitempty"`
}

// InterfaceNonDesirableService owns the blacklist
type InterfaceNonDesirableService interface {
	Blacklist(input BlacklistInput, reportedBy uint) (*models.NonDesirable, error)
	Unblacklist(entryID uint) error
	Status(visitorID uint) (*BlacklistStatus, error)
	GetByID(id uint) (*models.NonDesirable, error)
	List(search string, p models.PaginationQuery) ([]models.NonDesirable, int64, error)
}

// NonDesirableService implements blacklist management
type NonDesirableService struct {
	store store.Store
}

// NewNonDesirableService creates a new blacklist service
func NewNonDesirableService(s store.Store) InterfaceNonDesirableService {
	return &NonDesirableService{store: s}
}

// Blacklist adds a visitor to the blacklist. A visitor already on the
// list stays on it with the original entry untouched.
func (s *NonDesirableService) Blacklist(input BlacklistInput, reportedBy uint) (*models.NonDesirable, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, code.Validation("reason is required")
	}
	ok, err := s.store.Visitors().Exists(input.VisitorID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if !ok {
		return nil, code.NotFound("visitor %d not found", input.VisitorID)
	}

	entry := &models.NonDesirable{
		VisitorID:  input.VisitorID,
		Reason:     input.Reason,
		ReportedBy: reportedBy,
	}
	if err := s.store.NonDesirables().Create(entry); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, code.Conflict("visitor %d is already blacklisted", input.VisitorID)
		}
		return nil, code.Internal(err)
	}
	return entry, nil
}

// Unblacklist removes an entry, restoring the visitor's access
func (s *NonDesirableService) Unblacklist(entryID uint) error {
	if err := s.store.NonDesirables().Delete(entryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("blacklist entry %d not found", entryID)
		}
		return code.Internal(err)
	}
	return nil
}

// Status derives the blacklist state of a visitor
func (s *NonDesirableService) Status(visitorID uint) (*BlacklistStatus, error) {
	ok, err := s.store.Visitors().Exists(visitorID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if !ok {
		return nil, code.NotFound("visitor %d not found", visitorID)
	}

	status := &BlacklistStatus{VisitorID: visitorID}
	entry, err := s.store.NonDesirables().FindByVisitor(visitorID)
	switch {
	case err == nil:
		status.Blacklisted = true
		status.Entry = entry
	case errors.Is(err, store.ErrNotFound):
		// clean record
	default:
		return nil, code.Internal(err)
	}
	return status, nil
}

// GetByID returns one blacklist entry
func (s *NonDesirableService) GetByID(id uint) (*models.NonDesirable, error) {
	entry, err := s.store.NonDesirables().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("blacklist entry %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return entry, nil
}

// List pages through the blacklist
func (s *NonDesirableService) List(search string, p models.PaginationQuery) ([]models.NonDesirable, int64, error) {
	p.Normalize()
	entries, total, err := s.store.NonDesirables().List(search, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return entries, total, nil
}
