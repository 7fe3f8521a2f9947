// Package store gives every domain service a narrow, per-entity
// repository interface over the persistent store. Two implementations
// exist: the MySQL-backed GORM store used in production and an
// in-memory store used by the service test suites. Both enforce the
// storage-level uniqueness invariants (one active visit per visitor,
// one active alert per checkpoint, one blacklist entry per visitor) so
// that concurrent check-then-act sequences fail with ErrDuplicate
// instead of violating an invariant.
package store

import (
	"errors"
	"time"

	"github.com/bako110/Sonaby/models"
)

var (
	// ErrNotFound is returned when no row matches the requested id
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write collides with a
	// uniqueness constraint
	ErrDuplicate = errors.New("duplicate record")
)

// VisitorFilter narrows visitor listings
type VisitorFilter struct {
	Search  string
	Company string
}

// VisitFilter narrows visit listings
type VisitFilter struct {
	VisitorID    uint
	CheckpointID uint
	ServiceID    uint
	Status       string // "all", "active", "completed"
	Search       string
	Since        *time.Time
}

// IncidentFilter narrows incident listings
type IncidentFilter struct {
	VisitorID uint
	ServiceID uint
	Search    string
	Since     *time.Time
}

// SOSFilter narrows alert listings
type SOSFilter struct {
	CheckpointID uint
	Active       *bool
}

// AppointmentFilter narrows appointment listings
type AppointmentFilter struct {
	VisitorID uint
	ServiceID uint
	Search    string
	Upcoming  bool
	Since     *time.Time
}

// VisitorStore owns visitor identity records
type VisitorStore interface {
	Create(v *models.Visitor) error
	GetByID(id uint) (*models.Visitor, error)
	Update(v *models.Visitor) error
	Delete(id uint) error
	List(f VisitorFilter, p models.PaginationQuery) ([]models.Visitor, int64, error)
	Exists(id uint) (bool, error)
	Count() (int64, error)
	CountWithFile() (int64, error)
	CompanyDistribution() (map[string]int64, error)
}

// VisitStore owns the visit ledger
type VisitStore interface {
	Create(v *models.Visit) error
	GetByID(id uint) (*models.Visit, error)
	Update(v *models.Visit) error
	Delete(id uint) error
	List(f VisitFilter, p models.PaginationQuery) ([]models.Visit, int64, error)
	ListActive() ([]models.Visit, error)
	HasActiveVisit(visitorID uint) (bool, error)
	CountByVisitor(visitorID uint) (int64, error)
	CountByCheckpoint(checkpointID uint) (int64, error)
	CountByService(serviceID uint) (int64, error)
	Stats() (*models.VisitStats, error)
}

// NonDesirableStore owns blacklist entries
type NonDesirableStore interface {
	Create(n *models.NonDesirable) error
	GetByID(id uint) (*models.NonDesirable, error)
	Delete(id uint) error
	List(search string, p models.PaginationQuery) ([]models.NonDesirable, int64, error)
	// FindByVisitor returns ErrNotFound when the visitor has no entry
	FindByVisitor(visitorID uint) (*models.NonDesirable, error)
	Count() (int64, error)
}

// IncidentStore owns incident records
type IncidentStore interface {
	Create(i *models.Incident) error
	GetByID(id uint) (*models.Incident, error)
	Update(i *models.Incident) error
	Delete(id uint) error
	List(f IncidentFilter, p models.PaginationQuery) ([]models.Incident, int64, error)
	CountByVisitor(visitorID uint) (int64, error)
}

// SOSStore owns SOS alerts
type SOSStore interface {
	Create(a *models.SOSAlert) error
	GetByID(id uint) (*models.SOSAlert, error)
	Update(a *models.SOSAlert) error
	List(f SOSFilter, p models.PaginationQuery) ([]models.SOSAlert, int64, error)
	ListActive() ([]models.SOSAlert, error)
	HasActiveAlert(checkpointID uint) (bool, error)
	Stats() (*models.SOSStats, error)
}

// CheckpointStore owns checkpoints
type CheckpointStore interface {
	Create(cp *models.Checkpoint) error
	GetByID(id uint) (*models.Checkpoint, error)
	Update(cp *models.Checkpoint) error
	Delete(id uint) error
	List(search string, siteID uint, p models.PaginationQuery) ([]models.Checkpoint, int64, error)
	Exists(id uint) (bool, error)
	SOSIdentifierTaken(identifier string, excludeID uint) (bool, error)
	CountBySite(siteID uint) (int64, error)
	Count() (int64, error)
}

// SiteStore owns sites
type SiteStore interface {
	Create(s *models.Site) error
	GetByID(id uint) (*models.Site, error)
	Update(s *models.Site) error
	Delete(id uint) error
	List(search string, p models.PaginationQuery) ([]models.Site, int64, error)
	Exists(id uint) (bool, error)
	Count() (int64, error)
}

// ServiceStore owns organizational services
type ServiceStore interface {
	Create(s *models.Service) error
	GetByID(id uint) (*models.Service, error)
	Update(s *models.Service) error
	Delete(id uint) error
	List(search string, p models.PaginationQuery) ([]models.Service, int64, error)
	Exists(id uint) (bool, error)
	Count() (int64, error)
}

// AgentStore owns checkpoint control agents
type AgentStore interface {
	Create(a *models.Agent) error
	GetByID(id uint) (*models.Agent, error)
	Update(a *models.Agent) error
	Delete(id uint) error
	List(search string, checkpointID uint, p models.PaginationQuery) ([]models.Agent, int64, error)
	EmailTaken(email string, excludeID uint) (bool, error)
}

// AppointmentStore owns appointments
type AppointmentStore interface {
	Create(a *models.Appointment) error
	GetByID(id uint) (*models.Appointment, error)
	Update(a *models.Appointment) error
	Delete(id uint) error
	List(f AppointmentFilter, p models.PaginationQuery) ([]models.Appointment, int64, error)
	CountByService(serviceID uint) (int64, error)
}

// UserStore owns staff accounts
type UserStore interface {
	Create(u *models.User) error
	GetByID(id uint) (*models.User, error)
	// GetByEmail returns ErrNotFound when no account uses the email
	GetByEmail(email string) (*models.User, error)
	Update(u *models.User) error
	Delete(id uint) error
	List(search, role string, p models.PaginationQuery) ([]models.User, int64, error)
	EmailTaken(email string, excludeID uint) (bool, error)
	Count() (int64, error)
}

// FileStore owns uploaded file metadata
type FileStore interface {
	Create(f *models.File) error
	GetByID(id uint) (*models.File, error)
	Delete(id uint) error
	List(search string, p models.PaginationQuery) ([]models.File, int64, error)
	Exists(id uint) (bool, error)
	Count() (int64, error)
	TotalSize() (int64, error)
}

// Store bundles every repository. Services receive the bundle and use
// only the repositories they need.
type Store interface {
	Visitors() VisitorStore
	Visits() VisitStore
	NonDesirables() NonDesirableStore
	Incidents() IncidentStore
	SOSAlerts() SOSStore
	Checkpoints() CheckpointStore
	Sites() SiteStore
	Services() ServiceStore
	Agents() AgentStore
	Appointments() AppointmentStore
	Users() UserStore
	Files() FileStore
}
