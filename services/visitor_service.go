package services

import (
	"errors"
	"strings"
	"time"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// VisitorInput carries visitor registration and update fields
type VisitorInput struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	IDType    string `json:"id_type"`
	IDNumber  string `json:"id_number"`
	FileID    *uint  `json:"file_id"`
}

// VisitorDetail is a visitor together with derived state
type VisitorDetail struct {
	*models.Visitor
	Blacklisted     bool                 `json:"blacklisted"`
	BlacklistEntry  *models.NonDesirable `json:"blacklist_entry,omitempty"`
	HasActiveVisit  bool                 `json:"has_active_visit"`
}

// VisitorHistory is a visitor's activity over a day window
type VisitorHistory struct {
	Visitor          *models.Visitor      `json:"visitor"`
	Days             int                  `json:"days"`
	Visits           []models.Visit       `json:"visits"`
	VisitCount       int64                `json:"visit_count"`
	Appointments     []models.Appointment `json:"appointments"`
	AppointmentCount int64                `json:"appointment_count"`
	Incidents        []models.Incident    `json:"incidents"`
	IncidentCount    int64                `json:"incident_count"`
}

// VisitorStats aggregates the registry
type VisitorStats struct {
	Total       int64            `json:"total"`
	WithFile    int64            `json:"with_file"`
	WithoutFile int64            `json:"without_file"`
	Blacklisted int64            `json:"blacklisted"`
	Companies   map[string]int64 `json:"companies"`
}

// InterfaceVisitorService owns visitor identity records
type InterfaceVisitorService interface {
	Create(input VisitorInput) (*models.Visitor, error)
	GetByID(id uint) (*VisitorDetail, error)
	Update(id uint, input VisitorInput) (*models.Visitor, error)
	Delete(id uint) error
	List(f store.VisitorFilter, p models.PaginationQuery) ([]models.Visitor, int64, error)
	History(id uint, days int) (*VisitorHistory, error)
	Stats() (*VisitorStats, error)
}

// VisitorService implements visitor management
type VisitorService struct {
	store store.Store
}

// NewVisitorService creates a new visitor service
func NewVisitorService(s store.Store) InterfaceVisitorService {
	return &VisitorService{store: s}
}

func validIDType(t string) bool {
	switch t {
	case "", models.IDTypeCNI, models.IDTypePasseport, models.IDTypePermisConduite,
		models.IDTypeCarteSejour, models.IDTypeAutre:
		return true
	}
	return false
}

func (s *VisitorService) validate(input *VisitorInput) error {
	input.Firstname = strings.TrimSpace(input.Firstname)
	input.Lastname = strings.TrimSpace(input.Lastname)
	if input.Firstname == "" || input.Lastname == "" {
		return code.Validation("firstname and lastname are required")
	}
	if !validIDType(input.IDType) {
		return code.Validation("unknown id type %q", input.IDType)
	}
	if input.FileID != nil {
		ok, err := s.store.Files().Exists(*input.FileID)
		if err != nil {
			return code.Internal(err)
		}
		if !ok {
			return code.Validation("file %d does not exist", *input.FileID)
		}
	}
	return nil
}

// Create registers a visitor
func (s *VisitorService) Create(input VisitorInput) (*models.Visitor, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	visitor := &models.Visitor{
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Email:     input.Email,
		Phone:     input.Phone,
		Company:   input.Company,
		IDType:    input.IDType,
		IDNumber:  input.IDNumber,
		FileID:    input.FileID,
	}
	if err := s.store.Visitors().Create(visitor); err != nil {
		return nil, code.Internal(err)
	}
	return visitor, nil
}

// GetByID returns a visitor with derived blacklist and visit state
func (s *VisitorService) GetByID(id uint) (*VisitorDetail, error) {
	visitor, err := s.store.Visitors().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("visitor %d not found", id)
		}
		return nil, code.Internal(err)
	}

	detail := &VisitorDetail{Visitor: visitor}

	entry, err := s.store.NonDesirables().FindByVisitor(id)
	switch {
	case err == nil:
		detail.Blacklisted = true
		detail.BlacklistEntry = entry
	case errors.Is(err, store.ErrNotFound):
		// not blacklisted
	default:
		return nil, code.Internal(err)
	}

	active, err := s.store.Visits().HasActiveVisit(id)
	if err != nil {
		return nil, code.Internal(err)
	}
	detail.HasActiveVisit = active
	return detail, nil
}

// Update replaces the mutable visitor fields
func (s *VisitorService) Update(id uint, input VisitorInput) (*models.Visitor, error) {
	visitor, err := s.store.Visitors().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("visitor %d not found", id)
		}
		return nil, code.Internal(err)
	}
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	visitor.Firstname = input.Firstname
	visitor.Lastname = input.Lastname
	visitor.Email = input.Email
	visitor.Phone = input.Phone
	visitor.Company = input.Company
	visitor.IDType = input.IDType
	visitor.IDNumber = input.IDNumber
	visitor.FileID = input.FileID
	if err := s.store.Visitors().Update(visitor); err != nil {
		return nil, code.Internal(err)
	}
	return visitor, nil
}

// Delete removes a visitor. Deletion is blocked while the visitor has
// visit history; the ledger is never silently truncated.
func (s *VisitorService) Delete(id uint) error {
	ok, err := s.store.Visitors().Exists(id)
	if err != nil {
		return code.Internal(err)
	}
	if !ok {
		return code.NotFound("visitor %d not found", id)
	}
	visits, err := s.store.Visits().CountByVisitor(id)
	if err != nil {
		return code.Internal(err)
	}
	if visits > 0 {
		return code.Conflict("visitor %d has %d recorded visits and cannot be deleted", id, visits)
	}
	if err := s.store.Visitors().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("visitor %d not found", id)
		}
		return code.Internal(err)
	}
	return nil
}

// List pages through visitors
func (s *VisitorService) List(f store.VisitorFilter, p models.PaginationQuery) ([]models.Visitor, int64, error) {
	p.Normalize()
	visitors, total, err := s.store.Visitors().List(f, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return visitors, total, nil
}

// History returns the visitor's activity over the last days days
func (s *VisitorService) History(id uint, days int) (*VisitorHistory, error) {
	visitor, err := s.store.Visitors().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("visitor %d not found", id)
		}
		return nil, code.Internal(err)
	}
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	page := models.PaginationQuery{Page: 1, Limit: 100}

	history := &VisitorHistory{Visitor: visitor, Days: days}
	history.Visits, history.VisitCount, err = s.store.Visits().List(
		store.VisitFilter{VisitorID: id, Since: &since}, page)
	if err != nil {
		return nil, code.Internal(err)
	}
	history.Appointments, history.AppointmentCount, err = s.store.Appointments().List(
		store.AppointmentFilter{VisitorID: id, Since: &since}, page)
	if err != nil {
		return nil, code.Internal(err)
	}
	history.Incidents, history.IncidentCount, err = s.store.Incidents().List(
		store.IncidentFilter{VisitorID: id, Since: &since}, page)
	if err != nil {
		return nil, code.Internal(err)
	}
	return history, nil
}

// Stats aggregates the registry
func (s *VisitorService) Stats() (*VisitorStats, error) {
	stats := &VisitorStats{}
	var err error
	if stats.Total, err = s.store.Visitors().Count(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.WithFile, err = s.store.Visitors().CountWithFile(); err != nil {
		return nil, code.Internal(err)
	}
	stats.WithoutFile = stats.Total - stats.WithFile
	if stats.Blacklisted, err = s.store.NonDesirables().Count(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.Companies, err = s.store.Visitors().CompanyDistribution(); err != nil {
		return nil, code.Internal(err)
	}
	return stats, nil
}
