package services

import (
	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// DashboardStats is the aggregate snapshot for the dashboard
type DashboardStats struct {
	Visitors      int64              `json:"visitors"`
	Blacklisted   int64              `json:"blacklisted"`
	Sites         int64              `json:"sites"`
	Checkpoints   int64              `json:"checkpoints"`
	Services      int64              `json:"services"`
	Visits        *models.VisitStats `json:"visits"`
	SOS           *models.SOSStats   `json:"sos"`
	Companies     map[string]int64   `json:"companies"`
	FilesStored   int64              `json:"files_stored"`
	FilesSize     int64              `json:"files_size_bytes"`
}

// InterfaceStatsService builds the dashboard snapshot
type InterfaceStatsService interface {
	Dashboard() (*DashboardStats, error)
}

// StatsService aggregates counters across the stores
type StatsService struct {
	store store.Store
}

// NewStatsService creates a new statistics service
func NewStatsService(s store.Store) InterfaceStatsService {
	return &StatsService{store: s}
}

// Dashboard collects the full snapshot
func (s *StatsService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.Visitors, err = s.store.Visitors().Count(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.Blacklisted, err = s.store.NonDesirables().Count(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.Sites, err = s.store.Sites().Count(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.Checkpoints, err = s.store.Checkpoints().Count(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.Services, err = s.store.Services().Count(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.Visits, err = s.store.Visits().Stats(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.SOS, err = s.store.SOSAlerts().Stats(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.Companies, err = s.store.Visitors().CompanyDistribution(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.FilesStored, err = s.store.Files().Count(); err != nil {
		return nil, code.Internal(err)
	}
	if stats.FilesSize, err = s.store.Files().TotalSize(); err != nil {
		return nil, code.Internal(err)
	}
	return stats, nil
}
