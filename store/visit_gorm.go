package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

type gormVisitStore struct {
	db *gorm.DB
}

// visitPreloads attaches the relations every visit reply carries
func visitPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Visitor").
		Preload("Checkpoint.Site").
		Preload("Service").
		Preload("GroupRepresentative")
}

func (s *gormVisitStore) Create(v *models.Visit) error {
	return translateErr(s.db.Create(v).Error)
}

func (s *gormVisitStore) GetByID(id uint) (*models.Visit, error) {
	var visit models.Visit
	if err := visitPreloads(s.db).First(&visit, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &visit, nil
}

func (s *gormVisitStore) Update(v *models.Visit) error {
	return translateErr(s.db.Save(v).Error)
}

func (s *gormVisitStore) Delete(id uint) error {
	res := s.db.Delete(&models.Visit{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormVisitStore) applyFilter(f VisitFilter) *gorm.DB {
	q := s.db.Model(&models.Visit{})
	if f.VisitorID != 0 {
		q = q.Where("visitor_id = ?", f.VisitorID)
	}
	if f.CheckpointID != 0 {
		q = q.Where("checkpoint_id = ?", f.CheckpointID)
	}
	if f.ServiceID != 0 {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	switch f.Status {
	case models.VisitStatusActive:
		q = q.Where("end_at IS NULL")
	case models.VisitStatusCompleted:
		q = q.Where("end_at IS NOT NULL")
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where(
			"reason LIKE ? OR person_visited LIKE ? OR visitor_id IN (?)",
			pattern, pattern,
			s.db.Model(&models.Visitor{}).Select("id").
				Where("firstname LIKE ? OR lastname LIKE ?", pattern, pattern),
		)
	}
	if f.Since != nil {
		q = q.Where("created_at >= ?", *f.Since)
	}
	return q
}

func (s *gormVisitStore) List(f VisitFilter, p models.PaginationQuery) ([]models.Visit, int64, error) {
	q := s.applyFilter(f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var visits []models.Visit
	err := visitPreloads(q).
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&visits).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return visits, total, nil
}

func (s *gormVisitStore) ListActive() ([]models.Visit, error) {
	var visits []models.Visit
	err := visitPreloads(s.db).
		Where("end_at IS NULL").
		Order("start_at DESC").
		Find(&visits).Error
	return visits, translateErr(err)
}

func (s *gormVisitStore) HasActiveVisit(visitorID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Visit{}).
		Where("visitor_id = ? AND end_at IS NULL", visitorID).
		Count(&count).Error
	return count > 0, translateErr(err)
}

func (s *gormVisitStore) CountByVisitor(visitorID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Visit{}).Where("visitor_id = ?", visitorID).Count(&count).Error
	return count, translateErr(err)
}

func (s *gormVisitStore) CountByCheckpoint(checkpointID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Visit{}).Where("checkpoint_id = ?", checkpointID).Count(&count).Error
	return count, translateErr(err)
}

func (s *gormVisitStore) CountByService(serviceID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Visit{}).Where("service_id = ?", serviceID).Count(&count).Error
	return count, translateErr(err)
}

func (s *gormVisitStore) Stats() (*models.VisitStats, error) {
	stats := &models.VisitStats{
		VisitsPerService:    map[uint]int64{},
		VisitsPerCheckpoint: map[uint]int64{},
		VisitsByDay:         map[string]int64{},
	}

	if err := s.db.Model(&models.Visit{}).Count(&stats.TotalVisits).Error; err != nil {
		return nil, translateErr(err)
	}
	if err := s.db.Model(&models.Visit{}).Where("end_at IS NULL").Count(&stats.ActiveVisits).Error; err != nil {
		return nil, translateErr(err)
	}
	stats.CompletedVisits = stats.TotalVisits - stats.ActiveVisits

	type idCount struct {
		ID    uint
		Count int64
	}
	var perService []idCount
	err := s.db.Model(&models.Visit{}).
		Select("service_id AS id, COUNT(id) AS count").
		Group("service_id").
		Scan(&perService).Error
	if err != nil {
		return nil, translateErr(err)
	}
	for _, r := range perService {
		stats.VisitsPerService[r.ID] = r.Count
	}

	var perCheckpoint []idCount
	err = s.db.Model(&models.Visit{}).
		Select("checkpoint_id AS id, COUNT(id) AS count").
		Group("checkpoint_id").
		Scan(&perCheckpoint).Error
	if err != nil {
		return nil, translateErr(err)
	}
	for _, r := range perCheckpoint {
		stats.VisitsPerCheckpoint[r.ID] = r.Count
	}

	type dayCount struct {
		Day   string
		Count int64
	}
	var perDay []dayCount
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	err = s.db.Model(&models.Visit{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS day, COUNT(id) AS count").
		Where("created_at >= ?", sevenDaysAgo).
		Group("day").
		Scan(&perDay).Error
	if err != nil {
		return nil, translateErr(err)
	}
	for _, r := range perDay {
		stats.VisitsByDay[r.Day] = r.Count
	}

	return stats, nil
}
