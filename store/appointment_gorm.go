package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

type gormAppointmentStore struct {
	db *gorm.DB
}

func (s *gormAppointmentStore) Create(a *models.Appointment) error {
	return translateErr(s.db.Create(a).Error)
}

func (s *gormAppointmentStore) GetByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Preload("Visitor").Preload("Service").First(&appointment, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &appointment, nil
}

func (s *gormAppointmentStore) Update(a *models.Appointment) error {
	return translateErr(s.db.Save(a).Error)
}

func (s *gormAppointmentStore) Delete(id uint) error {
	res := s.db.Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormAppointmentStore) List(f AppointmentFilter, p models.PaginationQuery) ([]models.Appointment, int64, error) {
	q := s.db.Model(&models.Appointment{})
	if f.VisitorID != 0 {
		q = q.Where("visitor_id = ?", f.VisitorID)
	}
	if f.ServiceID != 0 {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where(
			"person_visited LIKE ? OR visitor_id IN (?)",
			pattern,
			s.db.Model(&models.Visitor{}).Select("id").
				Where("firstname LIKE ? OR lastname LIKE ?", pattern, pattern),
		)
	}
	if f.Upcoming {
		q = q.Where("date_start >= ?", time.Now())
	}
	if f.Since != nil {
		q = q.Where("created_at >= ?", *f.Since)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var appointments []models.Appointment
	err := q.Preload("Visitor").Preload("Service").
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return appointments, total, nil
}

func (s *gormAppointmentStore) CountByService(serviceID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Appointment{}).Where("service_id = ?", serviceID).Count(&count).Error
	return count, translateErr(err)
}
