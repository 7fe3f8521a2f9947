package store

import (
	"gorm.io/gorm"

	"github.com/bako110/Sonaby/models"
)

type gormAgentStore struct {
	db *gorm.DB
}

func (s *gormAgentStore) Create(a *models.Agent) error {
	return translateErr(s.db.Create(a).Error)
}

func (s *gormAgentStore) GetByID(id uint) (*models.Agent, error) {
	var agent models.Agent
	err := s.db.Preload("Checkpoint.Site").First(&agent, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &agent, nil
}

func (s *gormAgentStore) Update(a *models.Agent) error {
	return translateErr(s.db.Save(a).Error)
}

func (s *gormAgentStore) Delete(id uint) error {
	res := s.db.Delete(&models.Agent{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormAgentStore) List(search string, checkpointID uint, p models.PaginationQuery) ([]models.Agent, int64, error) {
	q := s.db.Model(&models.Agent{})
	if search != "" {
		pattern := likePattern(search)
		q = q.Where("firstname LIKE ? OR lastname LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}
	if checkpointID != 0 {
		q = q.Where("checkpoint_id = ?", checkpointID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var agents []models.Agent
	err := q.Preload("Checkpoint.Site").
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&agents).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return agents, total, nil
}

func (s *gormAgentStore) EmailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.Model(&models.Agent{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, translateErr(err)
}
