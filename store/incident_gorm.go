package store

import (
	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

type gormIncidentStore struct {
	db *gorm.DB
}

func (s *gormIncidentStore) Create(i *models.Incident) error {
	return translateErr(s.db.Create(i).Error)
}

func (s *gormIncidentStore) GetByID(id uint) (*models.Incident, error) {
	var incident models.Incident
	err := s.db.
		Preload("Visitor").
		Preload("Service").
		Preload("Reporter").
		First(&incident, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &incident, nil
}

func (s *gormIncidentStore) Update(i *models.Incident) error {
	return translateErr(s.db.Save(i).Error)
}

func (s *gormIncidentStore) Delete(id uint) error {
	res := s.db.Delete(&models.Incident{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormIncidentStore) List(f IncidentFilter, p models.PaginationQuery) ([]models.Incident, int64, error) {
	q := s.db.Model(&models.Incident{})
	if f.VisitorID != 0 {
		q = q.Where("visitor_id = ?", f.VisitorID)
	}
	if f.ServiceID != 0 {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where(
			"reason LIKE ? OR description LIKE ? OR visitor_id IN (?)",
			pattern, pattern,
			s.db.Model(&models.Visitor{}).Select("id").
				Where("firstname LIKE ? OR lastname LIKE ?", pattern, pattern),
		)
	}
	if f.Since != nil {
		q = q.Where("created_at >= ?", *f.Since)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var incidents []models.Incident
	err := q.Preload("Visitor").Preload("Service").Preload("Reporter").
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&incidents).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return incidents, total, nil
}

func (s *gormIncidentStore) CountByVisitor(visitorID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Incident{}).Where("visitor_id = ?", visitorID).Count(&count).Error
	return count, translateErr(err)
}
