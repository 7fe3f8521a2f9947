package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bako110/Sonaby/models"
)

// MemoryStore is the in-memory implementation of Store used by the
// service test suites. It enforces the same uniqueness invariants the
// MySQL unique indexes enforce, so service code under test sees the
// same ErrDuplicate failures it would see in production.
type MemoryStore struct {
	mu  sync.Mutex
	seq uint

	visitors      map[uint]*models.Visitor
	visits        map[uint]*models.Visit
	nonDesirables map[uint]*models.NonDesirable
	incidents     map[uint]*models.Incident
	sosAlerts     map[uint]*models.SOSAlert
	checkpoints   map[uint]*models.Checkpoint
	sites         map[uint]*models.Site
	services      map[uint]*models.Service
	agents        map[uint]*models.Agent
	appointments  map[uint]*models.Appointment
	users         map[uint]*models.User
	files         map[uint]*models.File
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		visitors:      make(map[uint]*models.Visitor),
		visits:        make(map[uint]*models.Visit),
		nonDesirables: make(map[uint]*models.NonDesirable),
		incidents:     make(map[uint]*models.Incident),
		sosAlerts:     make(map[uint]*models.SOSAlert),
		checkpoints:   make(map[uint]*models.Checkpoint),
		sites:         make(map[uint]*models.Site),
		services:      make(map[uint]*models.Service),
		agents:        make(map[uint]*models.Agent),
		appointments:  make(map[uint]*models.Appointment),
		users:         make(map[uint]*models.User),
		files:         make(map[uint]*models.File),
	}
}

func (m *MemoryStore) Visitors() VisitorStore           { return (*memVisitorStore)(m) }
func (m *MemoryStore) Visits() VisitStore               { return (*memVisitStore)(m) }
func (m *MemoryStore) NonDesirables() NonDesirableStore { return (*memNonDesirableStore)(m) }
func (m *MemoryStore) Incidents() IncidentStore         { return (*memIncidentStore)(m) }
func (m *MemoryStore) SOSAlerts() SOSStore              { return (*memSOSStore)(m) }
func (m *MemoryStore) Checkpoints() CheckpointStore     { return (*memCheckpointStore)(m) }
func (m *MemoryStore) Sites() SiteStore                 { return (*memSiteStore)(m) }
func (m *MemoryStore) Services() ServiceStore           { return (*memServiceStore)(m) }
func (m *MemoryStore) Agents() AgentStore               { return (*memAgentStore)(m) }
func (m *MemoryStore) Appointments() AppointmentStore   { return (*memAppointmentStore)(m) }
func (m *MemoryStore) Users() UserStore                 { return (*memUserStore)(m) }
func (m *MemoryStore) Files() FileStore                 { return (*memFileStore)(m) }

func (m *MemoryStore) nextID() uint {
	m.seq++
	return m.seq
}

func stamp(b *models.BaseModel, id uint) {
	now := time.Now()
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func paginate[T any](items []T, p models.PaginationQuery) []T {
	off := p.Offset()
	if off >= len(items) {
		return nil
	}
	end := off + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[off:end]
}

// sortNewest orders a slice by CreatedAt descending, newest first,
// with id as the tiebreaker to keep the order stable within a test
func sortNewest[T any](items []T, created func(T) time.Time, id func(T) uint) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if ci.Equal(cj) {
			return id(items[i]) > id(items[j])
		}
		return ci.After(cj)
	})
}

// --- visitors ---

type memVisitorStore MemoryStore

func (m *memVisitorStore) Create(v *models.Visitor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&v.BaseModel, (*MemoryStore)(m).nextID())
	cp := *v
	m.visitors[v.ID] = &cp
	return nil
}

func (m *memVisitorStore) GetByID(id uint) (*models.Visitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.visitors[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memVisitorStore) Update(v *models.Visitor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.visitors[v.ID]; !ok {
		return ErrNotFound
	}
	v.UpdatedAt = time.Now()
	cp := *v
	m.visitors[v.ID] = &cp
	return nil
}

func (m *memVisitorStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.visitors[id]; !ok {
		return ErrNotFound
	}
	delete(m.visitors, id)
	return nil
}

func (m *memVisitorStore) List(f VisitorFilter, p models.PaginationQuery) ([]models.Visitor, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Visitor
	for _, v := range m.visitors {
		if f.Company != "" && !strings.EqualFold(v.Company, f.Company) {
			continue
		}
		if f.Search != "" &&
			!containsFold(v.Firstname, f.Search) &&
			!containsFold(v.Lastname, f.Search) &&
			!containsFold(v.Email, f.Search) &&
			!containsFold(v.Phone, f.Search) {
			continue
		}
		out = append(out, *v)
	}
	sortNewest(out, func(v models.Visitor) time.Time { return v.CreatedAt }, func(v models.Visitor) uint { return v.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memVisitorStore) Exists(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.visitors[id]
	return ok, nil
}

func (m *memVisitorStore) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.visitors)), nil
}

func (m *memVisitorStore) CountWithFile() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, v := range m.visitors {
		if v.FileID != nil {
			n++
		}
	}
	return n, nil
}

func (m *memVisitorStore) CompanyDistribution() (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dist := make(map[string]int64)
	for _, v := range m.visitors {
		if v.Company != "" {
			dist[v.Company]++
		}
	}
	return dist, nil
}

// --- visits ---

type memVisitStore MemoryStore

func (m *memVisitStore) Create(v *models.Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.EndAt == nil {
		for _, other := range m.visits {
			if other.VisitorID == v.VisitorID && other.EndAt == nil {
				return ErrDuplicate
			}
		}
	}
	stamp(&v.BaseModel, (*MemoryStore)(m).nextID())
	cp := *v
	m.visits[v.ID] = &cp
	return nil
}

func (m *memVisitStore) GetByID(id uint) (*models.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.visits[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memVisitStore) Update(v *models.Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.visits[v.ID]; !ok {
		return ErrNotFound
	}
	if v.EndAt == nil {
		for _, other := range m.visits {
			if other.ID != v.ID && other.VisitorID == v.VisitorID && other.EndAt == nil {
				return ErrDuplicate
			}
		}
	}
	v.UpdatedAt = time.Now()
	cp := *v
	m.visits[v.ID] = &cp
	return nil
}

func (m *memVisitStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.visits[id]; !ok {
		return ErrNotFound
	}
	delete(m.visits, id)
	return nil
}

func (m *memVisitStore) matches(v *models.Visit, f VisitFilter) bool {
	if f.VisitorID != 0 && v.VisitorID != f.VisitorID {
		return false
	}
	if f.CheckpointID != 0 && v.CheckpointID != f.CheckpointID {
		return false
	}
	if f.ServiceID != 0 && v.ServiceID != f.ServiceID {
		return false
	}
	switch f.Status {
	case models.VisitStatusActive:
		if v.EndAt != nil {
			return false
		}
	case models.VisitStatusCompleted:
		if v.EndAt == nil {
			return false
		}
	}
	if f.Search != "" {
		visitor := m.visitors[v.VisitorID]
		if visitor == nil {
			return false
		}
		if !containsFold(visitor.Firstname, f.Search) && !containsFold(visitor.Lastname, f.Search) {
			return false
		}
	}
	if f.Since != nil && v.CreatedAt.Before(*f.Since) {
		return false
	}
	return true
}

func (m *memVisitStore) List(f VisitFilter, p models.PaginationQuery) ([]models.Visit, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Visit
	for _, v := range m.visits {
		if m.matches(v, f) {
			out = append(out, *v)
		}
	}
	sortNewest(out, func(v models.Visit) time.Time { return v.StartAt }, func(v models.Visit) uint { return v.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memVisitStore) ListActive() ([]models.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Visit
	for _, v := range m.visits {
		if v.EndAt == nil {
			out = append(out, *v)
		}
	}
	sortNewest(out, func(v models.Visit) time.Time { return v.StartAt }, func(v models.Visit) uint { return v.ID })
	return out, nil
}

func (m *memVisitStore) HasActiveVisit(visitorID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.visits {
		if v.VisitorID == visitorID && v.EndAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (m *memVisitStore) CountByVisitor(visitorID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, v := range m.visits {
		if v.VisitorID == visitorID {
			n++
		}
	}
	return n, nil
}

func (m *memVisitStore) CountByCheckpoint(checkpointID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, v := range m.visits {
		if v.CheckpointID == checkpointID {
			n++
		}
	}
	return n, nil
}

func (m *memVisitStore) CountByService(serviceID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, v := range m.visits {
		if v.ServiceID == serviceID {
			n++
		}
	}
	return n, nil
}

func (m *memVisitStore) Stats() (*models.VisitStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &models.VisitStats{
		VisitsPerService:    make(map[uint]int64),
		VisitsPerCheckpoint: make(map[uint]int64),
		VisitsByDay:         make(map[string]int64),
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, v := range m.visits {
		stats.TotalVisits++
		if v.EndAt == nil {
			stats.ActiveVisits++
		} else {
			stats.CompletedVisits++
		}
		stats.VisitsPerService[v.ServiceID]++
		stats.VisitsPerCheckpoint[v.CheckpointID]++
		if v.StartAt.After(weekAgo) {
			stats.VisitsByDay[v.StartAt.Format("2006-01-02")]++
		}
	}
	return stats, nil
}

// --- non-desirables ---

type memNonDesirableStore MemoryStore

func (m *memNonDesirableStore) Create(n *models.NonDesirable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.nonDesirables {
		if other.VisitorID == n.VisitorID {
			return ErrDuplicate
		}
	}
	stamp(&n.BaseModel, (*MemoryStore)(m).nextID())
	cp := *n
	m.nonDesirables[n.ID] = &cp
	return nil
}

func (m *memNonDesirableStore) GetByID(id uint) (*models.NonDesirable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nonDesirables[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (m *memNonDesirableStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.nonDesirables[id]; !ok {
		return ErrNotFound
	}
	delete(m.nonDesirables, id)
	return nil
}

func (m *memNonDesirableStore) List(search string, p models.PaginationQuery) ([]models.NonDesirable, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.NonDesirable
	for _, n := range m.nonDesirables {
		if search != "" {
			visitor := m.visitors[n.VisitorID]
			nameMatch := visitor != nil &&
				(containsFold(visitor.Firstname, search) || containsFold(visitor.Lastname, search))
			if !containsFold(n.Reason, search) && !nameMatch {
				continue
			}
		}
		out = append(out, *n)
	}
	sortNewest(out, func(n models.NonDesirable) time.Time { return n.CreatedAt }, func(n models.NonDesirable) uint { return n.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memNonDesirableStore) FindByVisitor(visitorID uint) (*models.NonDesirable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.nonDesirables {
		if n.VisitorID == visitorID {
			cp := *n
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memNonDesirableStore) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.nonDesirables)), nil
}

// --- incidents ---

type memIncidentStore MemoryStore

func (m *memIncidentStore) Create(i *models.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&i.BaseModel, (*MemoryStore)(m).nextID())
	cp := *i
	m.incidents[i.ID] = &cp
	return nil
}

func (m *memIncidentStore) GetByID(id uint) (*models.Incident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.incidents[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *i
	return &cp, nil
}

func (m *memIncidentStore) Update(i *models.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.incidents[i.ID]; !ok {
		return ErrNotFound
	}
	i.UpdatedAt = time.Now()
	cp := *i
	m.incidents[i.ID] = &cp
	return nil
}

func (m *memIncidentStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.incidents[id]; !ok {
		return ErrNotFound
	}
	delete(m.incidents, id)
	return nil
}

func (m *memIncidentStore) List(f IncidentFilter, p models.PaginationQuery) ([]models.Incident, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Incident
	for _, i := range m.incidents {
		if f.VisitorID != 0 && i.VisitorID != f.VisitorID {
			continue
		}
		if f.ServiceID != 0 && i.ServiceID != f.ServiceID {
			continue
		}
		if f.Search != "" && !containsFold(i.Reason, f.Search) && !containsFold(i.Description, f.Search) {
			continue
		}
		if f.Since != nil && i.CreatedAt.Before(*f.Since) {
			continue
		}
		out = append(out, *i)
	}
	sortNewest(out, func(i models.Incident) time.Time { return i.CreatedAt }, func(i models.Incident) uint { return i.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memIncidentStore) CountByVisitor(visitorID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, i := range m.incidents {
		if i.VisitorID == visitorID {
			n++
		}
	}
	return n, nil
}

// --- SOS alerts ---

type memSOSStore MemoryStore

func (m *memSOSStore) Create(a *models.SOSAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.IsActive {
		for _, other := range m.sosAlerts {
			if other.CheckpointID == a.CheckpointID && other.IsActive {
				return ErrDuplicate
			}
		}
	}
	stamp(&a.BaseModel, (*MemoryStore)(m).nextID())
	cp := *a
	m.sosAlerts[a.ID] = &cp
	return nil
}

func (m *memSOSStore) GetByID(id uint) (*models.SOSAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.sosAlerts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memSOSStore) Update(a *models.SOSAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sosAlerts[a.ID]; !ok {
		return ErrNotFound
	}
	if a.IsActive {
		for _, other := range m.sosAlerts {
			if other.ID != a.ID && other.CheckpointID == a.CheckpointID && other.IsActive {
				return ErrDuplicate
			}
		}
	}
	a.UpdatedAt = time.Now()
	cp := *a
	m.sosAlerts[a.ID] = &cp
	return nil
}

func (m *memSOSStore) List(f SOSFilter, p models.PaginationQuery) ([]models.SOSAlert, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SOSAlert
	for _, a := range m.sosAlerts {
		if f.CheckpointID != 0 && a.CheckpointID != f.CheckpointID {
			continue
		}
		if f.Active != nil && a.IsActive != *f.Active {
			continue
		}
		out = append(out, *a)
	}
	sortNewest(out, func(a models.SOSAlert) time.Time { return a.CreatedAt }, func(a models.SOSAlert) uint { return a.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memSOSStore) ListActive() ([]models.SOSAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SOSAlert
	for _, a := range m.sosAlerts {
		if a.IsActive {
			out = append(out, *a)
		}
	}
	sortNewest(out, func(a models.SOSAlert) time.Time { return a.CreatedAt }, func(a models.SOSAlert) uint { return a.ID })
	return out, nil
}

func (m *memSOSStore) HasActiveAlert(checkpointID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.sosAlerts {
		if a.CheckpointID == checkpointID && a.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (m *memSOSStore) Stats() (*models.SOSStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &models.SOSStats{
		AlertsPerCheckpoint: make(map[uint]int64),
		AlertsByDay:         make(map[string]int64),
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, a := range m.sosAlerts {
		stats.TotalAlerts++
		if a.IsActive {
			stats.ActiveAlerts++
		} else {
			stats.ResolvedAlerts++
		}
		stats.AlertsPerCheckpoint[a.CheckpointID]++
		if a.CreatedAt.After(weekAgo) {
			stats.AlertsByDay[a.CreatedAt.Format("2006-01-02")]++
		}
	}
	return stats, nil
}

// --- checkpoints ---

type memCheckpointStore MemoryStore

func (m *memCheckpointStore) Create(cp *models.Checkpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.checkpoints {
		if other.SOSIdentifier == cp.SOSIdentifier {
			return ErrDuplicate
		}
	}
	stamp(&cp.BaseModel, (*MemoryStore)(m).nextID())
	c := *cp
	m.checkpoints[cp.ID] = &c
	return nil
}

func (m *memCheckpointStore) GetByID(id uint) (*models.Checkpoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp, ok := m.checkpoints[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *cp
	return &c, nil
}

func (m *memCheckpointStore) Update(cp *models.Checkpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.checkpoints[cp.ID]; !ok {
		return ErrNotFound
	}
	for _, other := range m.checkpoints {
		if other.ID != cp.ID && other.SOSIdentifier == cp.SOSIdentifier {
			return ErrDuplicate
		}
	}
	cp.UpdatedAt = time.Now()
	c := *cp
	m.checkpoints[cp.ID] = &c
	return nil
}

func (m *memCheckpointStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.checkpoints[id]; !ok {
		return ErrNotFound
	}
	delete(m.checkpoints, id)
	return nil
}

func (m *memCheckpointStore) List(search string, siteID uint, p models.PaginationQuery) ([]models.Checkpoint, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Checkpoint
	for _, cp := range m.checkpoints {
		if siteID != 0 && cp.SiteID != siteID {
			continue
		}
		if search != "" && !containsFold(cp.Name, search) && !containsFold(cp.SOSIdentifier, search) {
			continue
		}
		out = append(out, *cp)
	}
	sortNewest(out, func(c models.Checkpoint) time.Time { return c.CreatedAt }, func(c models.Checkpoint) uint { return c.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memCheckpointStore) Exists(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.checkpoints[id]
	return ok, nil
}

func (m *memCheckpointStore) SOSIdentifierTaken(identifier string, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cp := range m.checkpoints {
		if cp.ID != excludeID && cp.SOSIdentifier == identifier {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCheckpointStore) CountBySite(siteID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, cp := range m.checkpoints {
		if cp.SiteID == siteID {
			n++
		}
	}
	return n, nil
}

func (m *memCheckpointStore) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.checkpoints)), nil
}

// --- sites ---

type memSiteStore MemoryStore

func (m *memSiteStore) Create(s *models.Site) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&s.BaseModel, (*MemoryStore)(m).nextID())
	cp := *s
	m.sites[s.ID] = &cp
	return nil
}

func (m *memSiteStore) GetByID(id uint) (*models.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sites[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSiteStore) Update(s *models.Site) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sites[s.ID]; !ok {
		return ErrNotFound
	}
	s.UpdatedAt = time.Now()
	cp := *s
	m.sites[s.ID] = &cp
	return nil
}

func (m *memSiteStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sites[id]; !ok {
		return ErrNotFound
	}
	delete(m.sites, id)
	return nil
}

func (m *memSiteStore) List(search string, p models.PaginationQuery) ([]models.Site, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Site
	for _, s := range m.sites {
		if search != "" && !containsFold(s.Name, search) && !containsFold(s.Location, search) {
			continue
		}
		out = append(out, *s)
	}
	sortNewest(out, func(s models.Site) time.Time { return s.CreatedAt }, func(s models.Site) uint { return s.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memSiteStore) Exists(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sites[id]
	return ok, nil
}

func (m *memSiteStore) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sites)), nil
}

// --- services ---

type memServiceStore MemoryStore

func (m *memServiceStore) Create(s *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&s.BaseModel, (*MemoryStore)(m).nextID())
	cp := *s
	m.services[s.ID] = &cp
	return nil
}

func (m *memServiceStore) GetByID(id uint) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memServiceStore) Update(s *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[s.ID]; !ok {
		return ErrNotFound
	}
	s.UpdatedAt = time.Now()
	cp := *s
	m.services[s.ID] = &cp
	return nil
}

func (m *memServiceStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[id]; !ok {
		return ErrNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *memServiceStore) List(search string, p models.PaginationQuery) ([]models.Service, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Service
	for _, s := range m.services {
		if search != "" && !containsFold(s.Name, search) && !containsFold(s.Description, search) {
			continue
		}
		out = append(out, *s)
	}
	sortNewest(out, func(s models.Service) time.Time { return s.CreatedAt }, func(s models.Service) uint { return s.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memServiceStore) Exists(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.services[id]
	return ok, nil
}

func (m *memServiceStore) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.services)), nil
}

// --- agents ---

type memAgentStore MemoryStore

func (m *memAgentStore) Create(a *models.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.agents {
		if strings.EqualFold(other.Email, a.Email) {
			return ErrDuplicate
		}
	}
	stamp(&a.BaseModel, (*MemoryStore)(m).nextID())
	cp := *a
	m.agents[a.ID] = &cp
	return nil
}

func (m *memAgentStore) GetByID(id uint) (*models.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.agents[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAgentStore) Update(a *models.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.agents[a.ID]; !ok {
		return ErrNotFound
	}
	for _, other := range m.agents {
		if other.ID != a.ID && strings.EqualFold(other.Email, a.Email) {
			return ErrDuplicate
		}
	}
	a.UpdatedAt = time.Now()
	cp := *a
	m.agents[a.ID] = &cp
	return nil
}

func (m *memAgentStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.agents[id]; !ok {
		return ErrNotFound
	}
	delete(m.agents, id)
	return nil
}

func (m *memAgentStore) List(search string, checkpointID uint, p models.PaginationQuery) ([]models.Agent, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Agent
	for _, a := range m.agents {
		if checkpointID != 0 && (a.CheckpointID == nil || *a.CheckpointID != checkpointID) {
			continue
		}
		if search != "" &&
			!containsFold(a.Firstname, search) &&
			!containsFold(a.Lastname, search) &&
			!containsFold(a.Email, search) {
			continue
		}
		out = append(out, *a)
	}
	sortNewest(out, func(a models.Agent) time.Time { return a.CreatedAt }, func(a models.Agent) uint { return a.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memAgentStore) EmailTaken(email string, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.agents {
		if a.ID != excludeID && strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// --- appointments ---

type memAppointmentStore MemoryStore

func (m *memAppointmentStore) Create(a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.appointments {
		if other.QRCode == a.QRCode {
			return ErrDuplicate
		}
	}
	stamp(&a.BaseModel, (*MemoryStore)(m).nextID())
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *memAppointmentStore) GetByID(id uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAppointmentStore) Update(a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appointments[a.ID]; !ok {
		return ErrNotFound
	}
	a.UpdatedAt = time.Now()
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *memAppointmentStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(m.appointments, id)
	return nil
}

func (m *memAppointmentStore) List(f AppointmentFilter, p models.PaginationQuery) ([]models.Appointment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	now := time.Now()
	for _, a := range m.appointments {
		if f.VisitorID != 0 && a.VisitorID != f.VisitorID {
			continue
		}
		if f.ServiceID != 0 && a.ServiceID != f.ServiceID {
			continue
		}
		if f.Search != "" {
			visitor := m.visitors[a.VisitorID]
			nameMatch := visitor != nil &&
				(containsFold(visitor.Firstname, f.Search) || containsFold(visitor.Lastname, f.Search))
			if !containsFold(a.PersonVisited, f.Search) && !nameMatch {
				continue
			}
		}
		if f.Upcoming && a.DateStart.Before(now) {
			continue
		}
		if f.Since != nil && a.CreatedAt.Before(*f.Since) {
			continue
		}
		out = append(out, *a)
	}
	sortNewest(out, func(a models.Appointment) time.Time { return a.CreatedAt }, func(a models.Appointment) uint { return a.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memAppointmentStore) CountByService(serviceID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.appointments {
		if a.ServiceID == serviceID {
			n++
		}
	}
	return n, nil
}

// --- users ---

type memUserStore MemoryStore

func (m *memUserStore) Create(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if strings.EqualFold(other.Email, u.Email) {
			return ErrDuplicate
		}
	}
	stamp(&u.BaseModel, (*MemoryStore)(m).nextID())
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserStore) GetByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) GetByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memUserStore) Update(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	for _, other := range m.users {
		if other.ID != u.ID && strings.EqualFold(other.Email, u.Email) {
			return ErrDuplicate
		}
	}
	u.UpdatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUserStore) List(search, role string, p models.PaginationQuery) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if search != "" &&
			!containsFold(u.FirstName, search) &&
			!containsFold(u.LastName, search) &&
			!containsFold(u.Email, search) {
			continue
		}
		out = append(out, *u)
	}
	sortNewest(out, func(u models.User) time.Time { return u.CreatedAt }, func(u models.User) uint { return u.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memUserStore) EmailTaken(email string, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserStore) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

// --- files ---

type memFileStore MemoryStore

func (m *memFileStore) Create(f *models.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.files {
		if other.StoredName == f.StoredName {
			return ErrDuplicate
		}
	}
	stamp(&f.BaseModel, (*MemoryStore)(m).nextID())
	cp := *f
	m.files[f.ID] = &cp
	return nil
}

func (m *memFileStore) GetByID(id uint) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *memFileStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		return ErrNotFound
	}
	delete(m.files, id)
	return nil
}

func (m *memFileStore) List(search string, p models.PaginationQuery) ([]models.File, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.File
	for _, f := range m.files {
		if search != "" && !containsFold(f.OriginalName, search) && !containsFold(f.MimeType, search) {
			continue
		}
		out = append(out, *f)
	}
	sortNewest(out, func(f models.File) time.Time { return f.CreatedAt }, func(f models.File) uint { return f.ID })
	return paginate(out, p), int64(len(out)), nil
}

func (m *memFileStore) Exists(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[id]
	return ok, nil
}

func (m *memFileStore) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.files)), nil
}

func (m *memFileStore) TotalSize() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var size int64
	for _, f := range m.files {
		size += f.Size
	}
	return size, nil
}
