package store

import (
	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

type gormNonDesirableStore struct {
	db *gorm.DB
}

func (s *gormNonDesirableStore) Create(n *models.NonDesirable) error {
	return translateErr(s.db.Create(n).Error)
}

func (s *gormNonDesirableStore) GetByID(id uint) (*models.NonDesirable, error) {
	var entry models.NonDesirable
	err := s.db.Preload("Visitor").Preload("Reporter").First(&entry, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &entry, nil
}

func (s *gormNonDesirableStore) Delete(id uint) error {
	res := s.db.Delete(&models.NonDesirable{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormNonDesirableStore) List(search string, p models.PaginationQuery) ([]models.NonDesirable, int64, error) {
	q := s.db.Model(&models.NonDesirable{})
	if search != "" {
		pattern := likePattern(search)
		q = q.Where(
			"reason LIKE ? OR visitor_id IN (?)",
			pattern,
			s.db.Model(&models.Visitor{}).Select("id").
				Where("firstname LIKE ? OR lastname LIKE ?", pattern, pattern),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var entries []models.NonDesirable
	err := q.Preload("Visitor").Preload("Reporter").
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&entries).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return entries, total, nil
}

func (s *gormNonDesirableStore) FindByVisitor(visitorID uint) (*models.NonDesirable, error) {
	var entry models.NonDesirable
	err := s.db.Preload("Reporter").
		Where("visitor_id = ?", visitorID).
		First(&entry).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &entry, nil
}

func (s *gormNonDesirableStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.NonDesirable{}).Count(&count).Error
	return count, translateErr(err)
}
