package services

import (
	"errors"
	"strings"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// CheckpointInput carries checkpoint create and update fields
type CheckpointInput struct {
	Name          string `json:"name" binding:"required"`
	SiteID        uint   `json:"site_id" binding:"required"`
	SOSIdentifier string `json:"sos_identifier" binding:"required"`
}

// InterfaceCheckpointService owns checkpoints
type InterfaceCheckpointService interface {
	Create(input CheckpointInput) (*models.Checkpoint, error)
	GetByID(id uint) (*models.Checkpoint, error)
	Update(id uint, input CheckpointInput) (*models.Checkpoint, error)
	Delete(id uint) error
	List(search string, siteID uint, p models.PaginationQuery) ([]models.Checkpoint, int64, error)
}

// CheckpointService implements checkpoint management
type CheckpointService struct {
	store store.Store
}

// NewCheckpointService creates a new checkpoint service
func NewCheckpointService(s store.Store) InterfaceCheckpointService {
	return &CheckpointService{store: s}
}

func (s *CheckpointService) validate(input *CheckpointInput, excludeID uint) error {
	input.Name = strings.TrimSpace(input.Name)
	input.SOSIdentifier = strings.TrimSpace(input.SOSIdentifier)
	if input.Name == "" || input.SOSIdentifier == "" {
		return code.Validation("name and sos identifier are required")
	}
	ok, err := s.store.Sites().Exists(input.SiteID)
	if err != nil {
		return code.Internal(err)
	}
	if !ok {
		return code.Validation("site %d does not exist", input.SiteID)
	}
	taken, err := s.store.Checkpoints().SOSIdentifierTaken(input.SOSIdentifier, excludeID)
	if err != nil {
		return code.Internal(err)
	}
	if taken {
		return code.Conflict("sos identifier %q is already in use", input.SOSIdentifier)
	}
	return nil
}

// Create registers a checkpoint under a site
func (s *CheckpointService) Create(input CheckpointInput) (*models.Checkpoint, error) {
	if err := s.validate(&input, 0); err != nil {
		return nil, err
	}
	checkpoint := &models.Checkpoint{
		Name:          input.Name,
		SiteID:        input.SiteID,
		SOSIdentifier: input.SOSIdentifier,
	}
	if err := s.store.Checkpoints().Create(checkpoint); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, code.Conflict("sos identifier %q is already in use", input.SOSIdentifier)
		}
		return nil, code.Internal(err)
	}
	return checkpoint, nil
}

// GetByID returns one checkpoint
func (s *CheckpointService) GetByID(id uint) (*models.Checkpoint, error) {
	checkpoint, err := s.store.Checkpoints().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("checkpoint %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return checkpoint, nil
}

// Update replaces the checkpoint fields
func (s *CheckpointService) Update(id uint, input CheckpointInput) (*models.Checkpoint, error) {
	checkpoint, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(&input, id); err != nil {
		return nil, err
	}
	checkpoint.Name = input.Name
	checkpoint.SiteID = input.SiteID
	checkpoint.SOSIdentifier = input.SOSIdentifier
	if err := s.store.Checkpoints().Update(checkpoint); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, code.Conflict("sos identifier %q is already in use", input.SOSIdentifier)
		}
		return nil, code.Internal(err)
	}
	return checkpoint, nil
}

// Delete removes a checkpoint. A checkpoint referenced by visits keeps
// its history and cannot be deleted.
func (s *CheckpointService) Delete(id uint) error {
	ok, err := s.store.Checkpoints().Exists(id)
	if err != nil {
		return code.Internal(err)
	}
	if !ok {
		return code.NotFound("checkpoint %d not found", id)
	}
	visits, err := s.store.Visits().CountByCheckpoint(id)
	if err != nil {
		return code.Internal(err)
	}
	if visits > 0 {
		return code.Conflict("checkpoint %d has %d recorded visits and cannot be deleted", id, visits)
	}
	if err := s.store.Checkpoints().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("checkpoint %d not found", id)
		}
		return code.Internal(err)
	}
	return nil
}

// List pages through checkpoints, optionally scoped to a site
func (s *CheckpointService) List(search string, siteID uint, p models.PaginationQuery) ([]models.Checkpoint, int64, error) {
	p.Normalize()
	checkpoints, total, err := s.store.Checkpoints().List(search, siteID, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return checkpoints, total, nil
}
