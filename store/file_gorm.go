package store

import (
	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

type gormFileStore struct {
	db *gorm.DB
}

func (s *gormFileStore) Create(f *models.File) error {
	return translateErr(s.db.Create(f).Error)
}

func (s *gormFileStore) GetByID(id uint) (*models.File, error) {
	var file models.File
	if err := s.db.First(&file, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &file, nil
}

func (s *gormFileStore) Delete(id uint) error {
	res := s.db.Delete(&models.File{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormFileStore) List(search string, p models.PaginationQuery) ([]models.File, int64, error) {
	q := s.db.Model(&models.File{})
	if search != "" {
		pattern := likePattern(search)
		q = q.Where("original_name LIKE ? OR mime_type LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var files []models.File
	err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset()).Find(&files).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return files, total, nil
}

func (s *gormFileStore) Exists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.File{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}

func (s *gormFileStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.File{}).Count(&count).Error
	return count, translateErr(err)
}

func (s *gormFileStore) TotalSize() (int64, error) {
	var size *int64
	err := s.db.Model(&models.File{}).Select("SUM(size)").Scan(&size).Error
	if err != nil {
		return 0, translateErr(err)
	}
	if size == nil {
		return 0, nil
	}
	return *size, nil
}
