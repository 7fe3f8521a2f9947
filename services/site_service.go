package services

import (
	"errors"
	"strings"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// SiteInput carries site create and update fields
type SiteInput struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// InterfaceSiteService owns sites
type InterfaceSiteService interface {
	Create(input SiteInput) (*models.Site, error)
	GetByID(id uint) (*models.Site, error)
	Update(id uint, input SiteInput) (*models.Site, error)
	Delete(id uint) error
	List(search string, p models.PaginationQuery) ([]models.Site, int64, error)
}

// SiteService implements site management
type SiteService struct {
	store store.Store
}

// NewSiteService creates a new site service
func NewSiteService(s store.Store) InterfaceSiteService {
	return &SiteService{store: s}
}

// Create registers a site
func (s *SiteService) Create(input SiteInput) (*models.Site, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, code.Validation("name is required")
	}
	site := &models.Site{Name: input.Name, Location: input.Location}
	if err := s.store.Sites().Create(site); err != nil {
		return nil, code.Internal(err)
	}
	return site, nil
}

// GetByID returns one site
func (s *SiteService) GetByID(id uint) (*models.Site, error) {
	site, err := s.store.Sites().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("site %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return site, nil
}

// Update replaces the site fields
func (s *SiteService) Update(id uint, input SiteInput) (*models.Site, error) {
	site, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, code.Validation("name is required")
	}
	site.Name = input.Name
	site.Location = input.Location
	if err := s.store.Sites().Update(site); err != nil {
		return nil, code.Internal(err)
	}
	return site, nil
}

// Delete removes a site. A site still holding checkpoints cannot be
// deleted.
func (s *SiteService) Delete(id uint) error {
	ok, err := s.store.Sites().Exists(id)
	if err != nil {
		return code.Internal(err)
	}
	if !ok {
		return code.NotFound("site %d not found", id)
	}
	checkpoints, err := s.store.Checkpoints().CountBySite(id)
	if err != nil {
		return code.Internal(err)
	}
	if checkpoints > 0 {
		return code.Conflict("site %d has %d checkpoints and cannot be deleted", id, checkpoints)
	}
	if err := s.store.Sites().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("site %d not found", id)
		}
		return code.Internal(err)
	}
	return nil
}

// List pages through sites
func (s *SiteService) List(search string, p models.PaginationQuery) ([]models.Site, int64, error) {
	p.Normalize()
	sites, total, err := s.store.Sites().List(search, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return sites, total, nil
}
