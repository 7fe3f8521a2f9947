package services

import (
	"errors"
	"time"

	"github.com/bako110/Sonaby/config"
	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// SOSInput carries an alert trigger request
type SOSInput struct {
	CheckpointID uint   `json:"checkpoint_id" binding:"required"`
	Message      string `json:"message"`
}

// SOSResult is the outcome of triggering an alert. Notified is false
// when the alert was stored but the dispatch to the security channel
// failed.
type SOSResult struct {
	Alert    *models.SOSAlert `json:"alert"`
	Notified bool             `json:"notified"`
}

// InterfaceSOSService owns panic alerts
type InterfaceSOSService interface {
	Trigger(input SOSInput, sentBy uint) (*SOSResult, error)
	Resolve(alertID, resolvedBy uint) (*models.SOSAlert, error)
	GetByID(id uint) (*models.SOSAlert, error)
	List(f store.SOSFilter, p models.PaginationQuery) ([]models.SOSAlert, int64, error)
	ListActive() ([]models.SOSAlert, error)
	Stats() (*models.SOSStats, error)
}

// SOSService implements alert triggering with per-checkpoint
// deduplication.
type SOSService struct {
	store    store.Store
	notifier InterfaceNotifier
}

// NewSOSService creates a new SOS service
func NewSOSService(s store.Store, notifier InterfaceNotifier, _ *config.Config) InterfaceSOSService {
	return &SOSService{store: s, notifier: notifier}
}

// Trigger raises an alert for a checkpoint. While the checkpoint has
// an unresolved alert, new triggers are rejected; resolving the alert
// re-arms the checkpoint. The alert is persisted before dispatch and a
// failed dispatch degrades the result instead of failing it.
func (s *SOSService) Trigger(input SOSInput, sentBy uint) (*SOSResult, error) {
	checkpoint, err := s.store.Checkpoints().GetByID(input.CheckpointID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("checkpoint %d not found", input.CheckpointID)
		}
		return nil, code.Internal(err)
	}

	active, err := s.store.SOSAlerts().HasActiveAlert(input.CheckpointID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if active {
		return nil, code.Conflict("checkpoint %d already has an active alert", input.CheckpointID)
	}

	alert := &models.SOSAlert{
		CheckpointID: input.CheckpointID,
		SentBy:       sentBy,
		Message:      input.Message,
		IsActive:     true,
	}
	if err := s.store.SOSAlerts().Create(alert); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, code.Conflict("checkpoint %d already has an active alert", input.CheckpointID)
		}
		return nil, code.Internal(err)
	}

	result := &SOSResult{Alert: alert}
	if s.notifier != nil {
		if err := s.notifier.NotifySOS(alert, checkpoint); err != nil {
			config.Error("sos dispatch failed for alert %d: %v", alert.ID, err)
		} else {
			result.Notified = true
		}
	}
	return result, nil
}

// Resolve closes an active alert
func (s *SOSService) Resolve(alertID, resolvedBy uint) (*models.SOSAlert, error) {
	alert, err := s.store.SOSAlerts().GetByID(alertID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("alert %d not found", alertID)
		}
		return nil, code.Internal(err)
	}
	if !alert.IsActive {
		return nil, code.Conflict("alert %d is already resolved", alertID)
	}
	now := time.Now()
	alert.IsActive = false
	alert.ResolvedAt = &now
	alert.ResolvedBy = &resolvedBy
	if err := s.store.SOSAlerts().Update(alert); err != nil {
		return nil, code.Internal(err)
	}
	return alert, nil
}

// GetByID returns one alert
func (s *SOSService) GetByID(id uint) (*models.SOSAlert, error) {
	alert, err := s.store.SOSAlerts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("alert %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return alert, nil
}

// List pages through alerts
func (s *SOSService) List(f store.SOSFilter, p models.PaginationQuery) ([]models.SOSAlert, int64, error) {
	p.Normalize()
	alerts, total, err := s.store.SOSAlerts().List(f, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return alerts, total, nil
}

// ListActive returns every unresolved alert
func (s *SOSService) ListActive() ([]models.SOSAlert, error) {
	alerts, err := s.store.SOSAlerts().ListActive()
	if err != nil {
		return nil, code.Internal(err)
	}
	return alerts, nil
}

// Stats aggregates alerts
func (s *SOSService) Stats() (*models.SOSStats, error) {
	stats, err := s.store.SOSAlerts().Stats()
	if err != nil {
		return nil, code.Internal(err)
	}
	return stats, nil
}
