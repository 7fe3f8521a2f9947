package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// AppointmentInput carries appointment scheduling fields
type AppointmentInput struct {
	VisitorID     uint      `json:"visitor_id" binding:"required"`
	ServiceID     uint      `json:"service_id" binding:"required"`
	PersonVisited string    `json:"person_visited"`
	Reason        string    `json:"reason"`
	DateStart     time.Time `json:"date_start" binding:"required"`
	DateEnd       time.Time `json:"date_end" binding:"required"`
}

// InterfaceAppointmentService owns scheduled visits
type InterfaceAppointmentService interface {
	Create(input AppointmentInput) (*models.Appointment, error)
	GetByID(id uint) (*models.Appointment, error)
	Update(id uint, input AppointmentInput) (*models.Appointment, error)
	Validate(id uint) (*models.Appointment, error)
	Cancel(id uint) (*models.Appointment, error)
	Delete(id uint) error
	List(f store.AppointmentFilter, p models.PaginationQuery) ([]models.Appointment, int64, error)
}

// AppointmentService implements appointment scheduling. Each
// appointment carries a uuid QR code scanned at the checkpoint.
type AppointmentService struct {
	store store.Store
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(s store.Store) InterfaceAppointmentService {
	return &AppointmentService{store: s}
}

// Create schedules an appointment
func (s *AppointmentService) Create(input AppointmentInput) (*models.Appointment, error) {
	if !input.DateEnd.After(input.DateStart) {
		return nil, code.Validation("date_end must be after date_start")
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

	// blacklisted visitors cannot book ahead either
	_, err = s.store.NonDesirables().FindByVisitor(input.VisitorID)
	switch {
	case err == nil:
		return nil, code.Conflict("visitor %d is blacklisted and cannot book appointments", input.VisitorID)
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, code.Internal(err)
	}

	appointment := &models.Appointment{
		VisitorID:     input.VisitorID,
		ServiceID:     input.ServiceID,
		PersonVisited: input.PersonVisited,
		Reason:        input.Reason,
		DateStart:     input.DateStart,
		DateEnd:       input.DateEnd,
		QRCode:        uuid.NewString(),
		Status:        models.AppointmentPending,
	}
	if err := s.store.Appointments().Create(appointment); err != nil {
		return nil, code.Internal(err)
	}
	return appointment, nil
}

// GetByID returns one appointment
func (s *AppointmentService) GetByID(id uint) (*models.Appointment, error) {
	appointment, err := s.store.Appointments().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("appointment %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return appointment, nil
}

// Update reschedules an appointment. Cancelled appointments are
// immutable; the QR code never changes.
func (s *AppointmentService) Update(id uint, input AppointmentInput) (*models.Appointment, error) {
	appointment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == models.AppointmentCancelled {
		return nil, code.Conflict("appointment %d is cancelled", id)
	}
	if !input.DateEnd.After(input.DateStart) {
		return nil, code.Validation("date_end must be after date_start")
	}
	ok, err := s.store.Services().Exists(input.ServiceID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if !ok {
		return nil, code.Validation("service %d does not exist", input.ServiceID)
	}
	appointment.ServiceID = input.ServiceID
	appointment.PersonVisited = input.PersonVisited
	appointment.Reason = input.Reason
	appointment.DateStart = input.DateStart
	appointment.DateEnd = input.DateEnd
	if err := s.store.Appointments().Update(appointment); err != nil {
		return nil, code.Internal(err)
	}
	return appointment, nil
}

// Validate approves a pending appointment
func (s *AppointmentService) Validate(id uint) (*models.Appointment, error) {
	return s.transition(id, models.AppointmentPending, models.AppointmentValidated)
}

// Cancel cancels a pending or validated appointment
func (s *AppointmentService) Cancel(id uint) (*models.Appointment, error) {
	appointment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == models.AppointmentCancelled {
		return nil, code.Conflict("appointment %d is already cancelled", id)
	}
	appointment.Status = models.AppointmentCancelled
	if err := s.store.Appointments().Update(appointment); err != nil {
		return nil, code.Internal(err)
	}
	return appointment, nil
}

func (s *AppointmentService) transition(id uint, from, to string) (*models.Appointment, error) {
	appointment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment.Status != from {
		return nil, code.Conflict("appointment %d is %s, expected %s", id, appointment.Status, from)
	}
	appointment.Status = to
	if err := s.store.Appointments().Update(appointment); err != nil {
		return nil, code.Internal(err)
	}
	return appointment, nil
}

// Delete removes an appointment
func (s *AppointmentService) Delete(id uint) error {
	if err := s.store.Appointments().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("appointment %d not found", id)
		}
		return code.Internal(err)
	}
	return nil
}

// List pages through appointments
func (s *AppointmentService) List(f store.AppointmentFilter, p models.PaginationQuery) ([]models.Appointment, int64, error) {
	p.Normalize()
	appointments, total, err := s.store.Appointments().List(f, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return appointments, total, nil
}
