package services

import (
	"errors"
	"strings"
	"time"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// ServiceInput carries organizational service fields
type ServiceInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ServiceActivity is a service's traffic over a day window
type ServiceActivity struct {
	Service          *models.Service `json:"service"`
	Days             int             `json:"days"`
	VisitCount       int64           `json:"visit_count"`
	AppointmentCount int64           `json:"appointment_count"`
	IncidentCount    int64           `json:"incident_count"`
}

// InterfaceServiceService owns the organizational services visits and
// appointments are filed against
type InterfaceServiceService interface {
	Create(input ServiceInput) (*models.Service, error)
	GetByID(id uint) (*models.Service, error)
	Update(id uint, input ServiceInput) (*models.Service, error)
	Delete(id uint) error
	List(search string, p models.PaginationQuery) ([]models.Service, int64, error)
	Activity(id uint, days int) (*ServiceActivity, error)
}

// ServiceService implements organizational service management
type ServiceService struct {
	store store.Store
}

// NewServiceService creates a new organizational service manager
func NewServiceService(s store.Store) InterfaceServiceService {
	return &ServiceService{store: s}
}

// Create registers an organizational service
func (s *ServiceService) Create(input ServiceInput) (*models.Service, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, code.Validation("name is required")
	}
	svc := &models.Service{Name: input.Name, Description: input.Description}
	if err := s.store.Services().Create(svc); err != nil {
		return nil, code.Internal(err)
	}
	return svc, nil
}

// GetByID returns one organizational service
func (s *ServiceService) GetByID(id uint) (*models.Service, error) {
	svc, err := s.store.Services().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("service %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return svc, nil
}

// Update replaces the service fields
func (s *ServiceService) Update(id uint, input ServiceInput) (*models.Service, error) {
	svc, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, code.Validation("name is required")
	}
	svc.Name = input.Name
	svc.Description = input.Description
	if err := s.store.Services().Update(svc); err != nil {
		return nil, code.Internal(err)
	}
	return svc, nil
}

// Delete removes an organizational service unless visits or
// appointments still reference it
func (s *ServiceService) Delete(id uint) error {
	ok, err := s.store.Services().Exists(id)
	if err != nil {
		return code.Internal(err)
	}
	if !ok {
		return code.NotFound("service %d not found", id)
	}
	visits, err := s.store.Visits().CountByService(id)
	if err != nil {
		return code.Internal(err)
	}
	if visits > 0 {
		return code.Conflict("service %d has %d recorded visits and cannot be deleted", id, visits)
	}
	appointments, err := s.store.Appointments().CountByService(id)
	if err != nil {
		return code.Internal(err)
	}
	if appointments > 0 {
		return code.Conflict("service %d has %d appointments and cannot be deleted", id, appointments)
	}
	if err := s.store.Services().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("service %d not found", id)
		}
		return code.Internal(err)
	}
	return nil
}

// List pages through organizational services
func (s *ServiceService) List(search string, p models.PaginationQuery) ([]models.Service, int64, error) {
	p.Normalize()
	services, total, err := s.store.Services().List(search, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return services, total, nil
}

// Activity counts the service's visits, appointments and incidents
// over the last days days
func (s *ServiceService) Activity(id uint, days int) (*ServiceActivity, error) {
	svc, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	page := models.PaginationQuery{Page: 1, Limit: 1}

	activity := &ServiceActivity{Service: svc, Days: days}
	if _, activity.VisitCount, err = s.store.Visits().List(
		store.VisitFilter{ServiceID: id, Since: &since}, page); err != nil {
		return nil, code.Internal(err)
	}
	if _, activity.AppointmentCount, err = s.store.Appointments().List(
		store.AppointmentFilter{ServiceID: id, Since: &since}, page); err != nil {
		return nil, code.Internal(err)
	}
	if _, activity.IncidentCount, err = s.store.Incidents().List(
		store.IncidentFilter{ServiceID: id, Since: &since}, page); err != nil {
		return nil, code.Internal(err)
	}
	return activity, nil
}
