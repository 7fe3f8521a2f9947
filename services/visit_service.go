package services

import (
	"errors"
	"time"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// CheckInInput carries a check-in request
type CheckInInput struct {
	VisitorID             uint   `json:"visitor_id" binding:"required"`
	CheckpointID          uint   `json:"checkpoint_id" binding:"required"`
	ServiceID             uint   `json:"service_id" binding:"required"`
	GroupRepresentativeID *uint  `json:"group_representative_id"`
	Reason                string `json:"reason"`
	PersonVisited         string `json:"person_visited"`
}

// CheckOutInput carries an optional explicit end time for a checkout
type CheckOutInput struct {
	EndAt *time.Time `json:"end_at"`
}

// InterfaceVisitService owns the visit lifecycle
type InterfaceVisitService interface {
	CheckIn(input CheckInInput) (*models.Visit, error)
	CheckOut(visitID uint, endAt *time.Time) (*models.Visit, error)
	GetByID(id uint) (*models.Visit, error)
	List(f store.VisitFilter, p models.PaginationQuery) ([]models.Visit, int64, error)
	ListActive() ([]models.Visit, error)
	Delete(id uint) error
	Stats() (*models.VisitStats, error)
}

// VisitService implements check-in and check-out
type VisitService struct {
	store store.Store
}

// NewVisitService creates a new visit service
func NewVisitService(s store.Store) InterfaceVisitService {
	return &VisitService{store: s}
}

// CheckIn opens a visit. The admission chain runs in a fixed order:
// the visitor must exist, must not be blacklisted, the checkpoint and
// service must exist, the group representative (if given) must exist,
// and the visitor must not already be inside. The first failing check
// decides the error.
func (s *VisitService) CheckIn(input CheckInInput) (*models.Visit, error) {
	ok, err := s.store.Visitors().Exists(input.VisitorID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if !ok {
		return nil, code.NotFound("visitor %d not found", input.VisitorID)
	}

	_, err = s.store.NonDesirables().FindByVisitor(input.VisitorID)
	switch {
	case err == nil:
		return nil, code.Conflict("visitor %d is blacklisted and cannot check in", input.VisitorID)
	case errors.Is(err, store.ErrNotFound):
		// allowed in
	default:
		return nil, code.Internal(err)
	}

	ok, err = s.store.Checkpoints().Exists(input.CheckpointID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if !ok {
		return nil, code.Validation("checkpoint %d does not exist", input.CheckpointID)
	}

	ok, err = s.store.Services().Exists(input.ServiceID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if !ok {
		return nil, code.Validation("service %d does not exist", input.ServiceID)
	}

	if input.GroupRepresentativeID != nil {
		ok, err = s.store.Visitors().Exists(*input.GroupRepresentativeID)
		if err != nil {
			return nil, code.Internal(err)
		}
		if !ok {
			return nil, code.Validation("group representative %d does not exist", *input.GroupRepresentativeID)
		}
	}

	active, err := s.store.Visits().HasActiveVisit(input.VisitorID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if active {
		return nil, code.Conflict("visitor %d already has an active visit", input.VisitorID)
	}

	visit := &models.Visit{
		VisitorID:             input.VisitorID,
		CheckpointID:          input.CheckpointID,
		ServiceID:             input.ServiceID,
		GroupRepresentativeID: input.GroupRepresentativeID,
		Reason:                input.Reason,
		PersonVisited:         input.PersonVisited,
		StartAt:               time.Now(),
	}
	if err := s.store.Visits().Create(visit); err != nil {
		// the unique index catches the race between the check above
		// and the insert
		if errors.Is(err, store.ErrDuplicate) {
			return nil, code.Conflict("visitor %d already has an active visit", input.VisitorID)
		}
		return nil, code.Internal(err)
	}
	return visit, nil
}

// CheckOut closes an active visit at endAt, or now when none is given.
// Checking out a finished visit is a conflict, not a no-op.
func (s *VisitService) CheckOut(visitID uint, endAt *time.Time) (*models.Visit, error) {
	visit, err := s.store.Visits().GetByID(visitID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("visit %d not found", visitID)
		}
		return nil, code.Internal(err)
	}
	if visit.EndAt != nil {
		return nil, code.Conflict("visit %d is already completed", visitID)
	}
	end := time.Now()
	if endAt != nil {
		end = *endAt
	}
	visit.EndAt = &end
	if err := s.store.Visits().Update(visit); err != nil {
		return nil, code.Internal(err)
	}
	return visit, nil
}

// GetByID returns one visit
func (s *VisitService) GetByID(id uint) (*models.Visit, error) {
	visit, err := s.store.Visits().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("visit %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return visit, nil
}

// List pages through the visit ledger
func (s *VisitService) List(f store.VisitFilter, p models.PaginationQuery) ([]models.Visit, int64, error) {
	p.Normalize()
	if f.Status == "" {
		f.Status = models.VisitStatusAll
	}
	switch f.Status {
	case models.VisitStatusAll, models.VisitStatusActive, models.VisitStatusCompleted:
	default:
		return nil, 0, code.Validation("unknown status %q", f.Status)
	}
	visits, total, err := s.store.Visits().List(f, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return visits, total, nil
}

// ListActive returns everyone currently inside
func (s *VisitService) ListActive() ([]models.Visit, error) {
	visits, err := s.store.Visits().ListActive()
	if err != nil {
		return nil, code.Internal(err)
	}
	return visits, nil
}

// Delete removes a visit record
func (s *VisitService) Delete(id uint) error {
	if err := s.store.Visits().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("visit %d not found", id)
		}
		return code.Internal(err)
	}
	return nil
}

// Stats aggregates the ledger
func (s *VisitService) Stats() (*models.VisitStats, error) {
	stats, err := s.store.Visits().Stats()
	if err != nil {
		return nil, code.Internal(err)
	}
	return stats, nil
}
