package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// GormStore is the MySQL-backed implementation of Store
type GormStore struct {
	db *gorm.DB

	visitors      *gormVisitorStore
	visits        *gormVisitStore
	nonDesirables *gormNonDesirableStore
	incidents     *gormIncidentStore
	sosAlerts     *gormSOSStore
	checkpoints   *gormCheckpointStore
	sites         *gormSiteStore
	services      *gormServiceStore
	agents        *gormAgentStore
	appointments  *gormAppointmentStore
	users         *gormUserStore
	files         *gormFileStore
}

// NewGormStore wraps a live database connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:            db,
		visitors:      &gormVisitorStore{db},
		visits:        &gormVisitStore{db},
		nonDesirables: &gormNonDesirableStore{db},
		incidents:     &gormIncidentStore{db},
		sosAlerts:     &gormSOSStore{db},
		checkpoints:   &gormCheckpointStore{db},
		sites:         &gormSiteStore{db},
		services:      &gormServiceStore{db},
		agents:        &gormAgentStore{db},
		appointments:  &gormAppointmentStore{db},
		users:         &gormUserStore{db},
		files:         &gormFileStore{db},
	}
}

func (s *GormStore) Visitors() VisitorStore           { return s.visitors }
func (s *GormStore) Visits() VisitStore               { return s.visits }
func (s *GormStore) NonDesirables() NonDesirableStore { return s.nonDesirables }
func (s *GormStore) Incidents() IncidentStore         { return s.incidents }
func (s *GormStore) SOSAlerts() SOSStore              { return s.sosAlerts }
func (s *GormStore) Checkpoints() CheckpointStore     { return s.checkpoints }
func (s *GormStore) Sites() SiteStore                 { return s.sites }
func (s *GormStore) Services() ServiceStore           { return s.services }
func (s *GormStore) Agents() AgentStore               { return s.agents }
func (s *GormStore) Appointments() AppointmentStore   { return s.appointments }
func (s *GormStore) Users() UserStore                 { return s.users }
func (s *GormStore) Files() FileStore                 { return s.files }

// mysqlDuplicateEntry is the MySQL error number raised when a write
// violates a unique index
const mysqlDuplicateEntry = 1062

// translateErr converts driver errors into the store sentinels
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return ErrDuplicate
	}
	return err
}

// likePattern builds the case-insensitive LIKE pattern for a search
// term (utf8mb4 collations compare case-insensitively)
func likePattern(search string) string {
	return "%" + search + "%"
}
