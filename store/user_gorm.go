package store

import (
	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

type gormUserStore struct {
	db *gorm.DB
}

func (s *gormUserStore) Create(u *models.User) error {
	return translateErr(s.db.Create(u).Error)
}

func (s *gormUserStore) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *gormUserStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *gormUserStore) Update(u *models.User) error {
	return translateErr(s.db.Save(u).Error)
}

func (s *gormUserStore) Delete(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormUserStore) List(search, role string, p models.PaginationQuery) ([]models.User, int64, error) {
	q := s.db.Model(&models.User{})
	if search != "" {
		pattern := likePattern(search)
		q = q.Where("firstname LIKE ? OR lastname LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var users []models.User
	err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset()).Find(&users).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return users, total, nil
}

func (s *gormUserStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, translateErr(err)
}

func (s *gormUserStore) EmailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}
