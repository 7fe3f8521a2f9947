package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

type gormSOSStore struct {
	db *gorm.DB
}

func sosPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Checkpoint.Site").Preload("Sender")
}

func (s *gormSOSStore) Create(a *models.SOSAlert) error {
	return translateErr(s.db.Create(a).Error)
}

func (s *gormSOSStore) GetByID(id uint) (*models.SOSAlert, error) {
	var alert models.SOSAlert
	if err := sosPreloads(s.db).First(&alert, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &alert, nil
}

func (s *gormSOSStore) Update(a *models.SOSAlert) error {
	return translateErr(s.db.Save(a).Error)
}

func (s *gormSOSStore) List(f SOSFilter, p models.PaginationQuery) ([]models.SOSAlert, int64, error) {
	q := s.db.Model(&models.SOSAlert{})
	if f.CheckpointID != 0 {
		q = q.Where("checkpoint_id = ?", f.CheckpointID)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var alerts []models.SOSAlert
	err := sosPreloads(q).
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&alerts).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return alerts, total, nil
}

func (s *gormSOSStore) ListActive() ([]models.SOSAlert, error) {
	var alerts []models.SOSAlert
	err := sosPreloads(s.db).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, translateErr(err)
}

func (s *gormSOSStore) HasActiveAlert(checkpointID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.SOSAlert{}).
		Where("checkpoint_id = ? AND is_active = ?", checkpointID, true).
		Count(&count).Error
	return count > 0, translateErr(err)
}

func (s *gormSOSStore) Stats() (*models.SOSStats, error) {
	stats := &models.SOSStats{
		AlertsPerCheckpoint: map[uint]int64{},
		AlertsByDay:         map[string]int64{},
	}

	if err := s.db.Model(&models.SOSAlert{}).Count(&stats.TotalAlerts).Error; err != nil {
		return nil, translateErr(err)
	}
	if err := s.db.Model(&models.SOSAlert{}).Where("is_active = ?", true).Count(&stats.ActiveAlerts).Error; err != nil {
		return nil, translateErr(err)
	}
	stats.ResolvedAlerts = stats.TotalAlerts - stats.ActiveAlerts

	type idCount struct {
		ID    uint
		Count int64
	}
	var perCheckpoint []idCount
	err := s.db.Model(&models.SOSAlert{}).
		Select("checkpoint_id AS id, COUNT(id) AS count").
		Group("checkpoint_id").
		Scan(&perCheckpoint).Error
	if err != nil {
		return nil, translateErr(err)
	}
	for _, r := range perCheckpoint {
		stats.AlertsPerCheckpoint[r.ID] = r.Count
	}

	type dayCount struct {
		Day   string
		Count int64
	}
	var perDay []dayCount
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	err = s.db.Model(&models.SOSAlert{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS day, COUNT(id) AS count").
		Where("created_at >= ?", sevenDaysAgo).
		Group("day").
		Scan(&perDay).Error
	if err != nil {
		return nil, translateErr(err)
	}
	for _, r := range perDay {
		stats.AlertsByDay[r.Day] = r.Count
	}

	return stats, nil
}
