package store

import (
	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

type gormVisitorStore struct {
	db *gorm.DB
}

func (s *gormVisitorStore) Create(v *models.Visitor) error {
	return translateErr(s.db.Create(v).Error)
}

// GetByID loads the visitor with its supporting file and the recent
// activity summaries shown on the detail screen.
func (s *gormVisitorStore) GetByID(id uint) (*models.Visitor, error) {
	var visitor models.Visitor
	err := s.db.
		Preload("File").
		Preload("Visits", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Preload("Visits.Checkpoint.Site").
		Preload("Visits.Service").
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Preload("Appointments.Service").
		Preload("Incidents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(5)
		}).
		Preload("Incidents.Service").
		Preload("NonDesirables").
		First(&visitor, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &visitor, nil
}

func (s *gormVisitorStore) Update(v *models.Visitor) error {
	return translateErr(s.db.Save(v).Error)
}

func (s *gormVisitorStore) Delete(id uint) error {
	res := s.db.Delete(&models.Visitor{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormVisitorStore) List(f VisitorFilter, p models.PaginationQuery) ([]models.Visitor, int64, error) {
	q := s.db.Model(&models.Visitor{})
	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where("firstname LIKE ? OR lastname LIKE ? OR email LIKE ? OR phone LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if f.Company != "" {
		q = q.Where("company LIKE ?", likePattern(f.Company))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var visitors []models.Visitor
	err := q.Preload("File").
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&visitors).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return visitors, total, nil
}

func (s *gormVisitorStore) Exists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Visitor{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateErr(err)
}

func (s *gormVisitorStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Visitor{}).Count(&count).Error
	return count, translateErr(err)
}

func (s *gormVisitorStore) CountWithFile() (int64, error) {
	var count int64
	err := s.db.Model(&models.Visitor{}).Where("file_id IS NOT NULL").Count(&count).Error
	return count, translateErr(err)
}

func (s *gormVisitorStore) CompanyDistribution() (map[string]int64, error) {
	type row struct {
		Company string
		Count   int64
	}
	var rows []row
	err := s.db.Model(&models.Visitor{}).
		Select("company, COUNT(id) AS count").
		Where("company <> ''").
		Group("company").
		Scan(&rows).Error
	if err != nil {
		return nil, translateErr(err)
	}
	dist := make(map[string]int64, len(rows))
	for _, r := range rows {
		dist[r.Company] = r.Count
	}
	return dist, nil
}
