package store

import (
	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

// Sites, checkpoints and organizational services share the same plain
// CRUD shape; they live together here.

type gormSiteStore struct {
	db *gorm.DB
}

func (s *gormSiteStore) Create(site *models.Site) error {
	return translateErr(s.db.Create(site).Error)
}

func (s *gormSiteStore) GetByID(id uint) (*models.Site, error) {
	var site models.Site
	err := s.db.Preload("Checkpoints").First(&site, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &site, nil
}

func (s *gormSiteStore) Update(site *models.Site) error {
	return translateErr(s.db.Save(site).Error)
}

func (s *gormSiteStore) Delete(id uint) error {
	res := s.db.Delete(&models.Site{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormSiteStore) List(search string, p models.PaginationQuery) ([]models.Site, int64, error) {
	q := s.db.Model(&models.Site{})
	if search != "" {
		pattern := likePattern(search)
		q = q.Where("name LIKE ? OR location LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var sites []models.Site
	err := q.Preload("Checkpoints").
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&sites).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return sites, total, nil
}

func (s *gormSiteStore) Exists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Site{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateErr(err)
}

func (s *gormSiteStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Site{}).Count(&count).Error
	return count, translateErr(err)
}

type gormCheckpointStore struct {
	db *gorm.DB
}

func (s *gormCheckpointStore) Create(cp *models.Checkpoint) error {
	return translateErr(s.db.Create(cp).Error)
}

func (s *gormCheckpointStore) GetByID(id uint) (*models.Checkpoint, error) {
	var cp models.Checkpoint
	err := s.db.Preload("Site").Preload("Agents").First(&cp, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &cp, nil
}

func (s *gormCheckpointStore) Update(cp *models.Checkpoint) error {
	return translateErr(s.db.Save(cp).Error)
}

func (s *gormCheckpointStore) Delete(id uint) error {
	res := s.db.Delete(&models.Checkpoint{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormCheckpointStore) List(search string, siteID uint, p models.PaginationQuery) ([]models.Checkpoint, int64, error) {
	q := s.db.Model(&models.Checkpoint{})
	if search != "" {
		pattern := likePattern(search)
		q = q.Where("name LIKE ? OR sos_identifier LIKE ?", pattern, pattern)
	}
	if siteID != 0 {
		q = q.Where("site_id = ?", siteID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var checkpoints []models.Checkpoint
	err := q.Preload("Site").Preload("Agents").
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&checkpoints).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return checkpoints, total, nil
}

func (s *gormCheckpointStore) Exists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Checkpoint{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateErr(err)
}

func (s *gormCheckpointStore) SOSIdentifierTaken(identifier string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.Model(&models.Checkpoint{}).Where("sos_identifier = ?", identifier)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, translateErr(err)
}

func (s *gormCheckpointStore) CountBySite(siteID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Checkpoint{}).Where("site_id = ?", siteID).Count(&count).Error
	return count, translateErr(err)
}

func (s *gormCheckpointStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Checkpoint{}).Count(&count).Error
	return count, translateErr(err)
}

type gormServiceStore struct {
	db *gorm.DB
}

func (s *gormServiceStore) Create(svc *models.Service) error {
	return translateErr(s.db.Create(svc).Error)
}

func (s *gormServiceStore) GetByID(id uint) (*models.Service, error) {
	var svc models.Service
	err := s.db.First(&svc, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &svc, nil
}

func (s *gormServiceStore) Update(svc *models.Service) error {
	return translateErr(s.db.Save(svc).Error)
}

func (s *gormServiceStore) Delete(id uint) error {
	res := s.db.Delete(&models.Service{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormServiceStore) List(search string, p models.PaginationQuery) ([]models.Service, int64, error) {
	q := s.db.Model(&models.Service{})
	if search != "" {
		pattern := likePattern(search)
		q = q.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var services []models.Service
	err := q.Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&services).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return services, total, nil
}

func (s *gormServiceStore) Exists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Service{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateErr(err)
}

func (s *gormServiceStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Service{}).Count(&count).Error
	return count, translateErr(err)
}
