package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bako110/Sonaby/config"
	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// IncidentInput carries an incident report
type IncidentInput struct {
	VisitorID   uint   `json:"visitor_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// IncidentReport is the result of reporting an incident, including
// whether the report tripped the automatic blacklist.
type IncidentReport struct {
	Incident        *models.Incident `json:"incident"`
	AutoBlacklisted bool             `json:"auto_blacklisted"`
	IncidentCount   int64            `json:"incident_count"`
}

// InterfaceIncidentService owns incident reporting
type InterfaceIncidentService interface {
	Report(input IncidentInput, reportedBy uint) (*IncidentReport, error)
	GetByID(id uint) (*models.Incident, error)
	Resolve(id uint, note string) (*models.Incident, error)
	Delete(id uint) error
	List(f store.IncidentFilter, p models.PaginationQuery) ([]models.Incident, int64, error)
	CountByVisitor(visitorID uint) (int64, error)
}

// IncidentService implements incident reporting and the automatic
// blacklist rule.
type IncidentService struct {
	store     store.Store
	threshold int64
}

// NewIncidentService creates a new incident service
func NewIncidentService(s store.Store, cfg *config.Config) InterfaceIncidentService {
	return &IncidentService{
		store:     s,
		threshold: int64(cfg.AutoBlacklistThreshold),
	}
}

func validSeverity(severity string) bool {
	switch severity {
	case "", models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
		return true
	}
	return false
}

// Report files an incident. When the visitor's total incident count
// reaches the threshold, the visitor is blacklisted automatically with
// a reason citing the count, attributed to the reporting user. The
// blacklist write is opportunistic: a failure (including the visitor
// being already blacklisted) never fails the report.
func (s *IncidentService) Report(input IncidentInput, reportedBy uint) (*IncidentReport, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, code.Validation("reason is required")
	}
	if !validSeverity(input.Severity) {
		return nil, code.Validation("unknown severity %q", input.Severity)
	}
	ok, err := s.store.Visitors().Exists(input.VisitorID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if !ok {
		return nil, code.NotFound("visitor %d not found", input.VisitorID)
	}
	ok, err = s.store.Services().Exists(input.ServiceID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if !ok {
		return nil, code.Validation("service %d does not exist", input.ServiceID)
	}

	severity := input.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}
	incident := &models.Incident{
		VisitorID:   input.VisitorID,
		ServiceID:   input.ServiceID,
		ReportedBy:  reportedBy,
		Reason:      input.Reason,
		Description: input.Description,
		Severity:    severity,
	}
	if err := s.store.Incidents().Create(incident); err != nil {
		return nil, code.Internal(err)
	}

	report := &IncidentReport{Incident: incident}
	count, err := s.store.Incidents().CountByVisitor(input.VisitorID)
	if err != nil {
		// the incident is filed; the threshold check will run again
		// on the next report
		config.Error("incident count failed for visitor %d: %v", input.VisitorID, err)
		return report, nil
	}
	report.IncidentCount = count

	if count >= s.threshold {
		entry := &models.NonDesirable{
			VisitorID:  input.VisitorID,
			Reason:     fmt.Sprintf("Automatically blacklisted after %d incidents", count),
			ReportedBy: reportedBy,
		}
		switch err := s.store.NonDesirables().Create(entry); {
		case err == nil:
			report.AutoBlacklisted = true
		case errors.Is(err, store.ErrDuplicate):
			// already on the list, which is the desired end state
		default:
			config.Error("auto-blacklist failed for visitor %d: %v", input.VisitorID, err)
		}
	}
	return report, nil
}

// GetByID returns one incident
func (s *IncidentService) GetByID(id uint) (*models.Incident, error) {
	incident, err := s.store.Incidents().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("incident %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return incident, nil
}

// Resolve closes an incident with a resolution note
func (s *IncidentService) Resolve(id uint, note string) (*models.Incident, error) {
	incident, err := s.store.Incidents().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("incident %d not found", id)
		}
		return nil, code.Internal(err)
	}
	if incident.Resolved {
		return nil, code.Conflict("incident %d is already resolved", id)
	}
	now := time.Now()
	incident.Resolved = true
	incident.ResolvedAt = &now
	incident.ResolutionNote = note
	if err := s.store.Incidents().Update(incident); err != nil {
		return nil, code.Internal(err)
	}
	return incident, nil
}

// Delete removes an incident record
func (s *IncidentService) Delete(id uint) error {
	if err := s.store.Incidents().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("incident %d not found", id)
		}
		return code.Internal(err)
	}
	return nil
}

// List pages through incidents
func (s *IncidentService) List(f store.IncidentFilter, p models.PaginationQuery) ([]models.Incident, int64, error) {
	p.Normalize()
	incidents, total, err := s.store.Incidents().List(f, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return incidents, total, nil
}

// CountByVisitor returns the visitor's incident total
func (s *IncidentService) CountByVisitor(visitorID uint) (int64, error) {
	ok, err := s.store.Visitors().Exists(visitorID)
	if err != nil {
		return 0, code.Internal(err)
	}
	if !ok {
		return 0, code.NotFound("visitor %d not found", visitorID)
	}
	count, err := s.store.Incidents().CountByVisitor(visitorID)
	if err != nil {
		return 0, code.Internal(err)
	}
	return count, nil
}
