package services

import (
	"errors"
	"strings"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
	"github.com/bako110/Sonaby/utils"
)

// AgentInput carries control agent fields. Password is required on
// create and optional on update.
type AgentInput struct {
	Firstname    string `json:"firstname" binding:"required"`
	Lastname     string `json:"lastname" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password"`
	CheckpointID *uint  `json:"checkpoint_id"`
}

// InterfaceAgentService owns checkpoint control agents
type InterfaceAgentService interface {
	Create(input AgentInput) (*models.Agent, error)
	GetByID(id uint) (*models.Agent, error)
	Update(id uint, input AgentInput) (*models.Agent, error)
	Delete(id uint) error
	List(search string, checkpointID uint, p models.PaginationQuery) ([]models.Agent, int64, error)
}

// AgentService implements control agent management
type AgentService struct {
	store store.Store
}

// NewAgentService creates a new agent service
func NewAgentService(s store.Store) InterfaceAgentService {
	return &AgentService{store: s}
}

func (s *AgentService) validate(input *AgentInput, excludeID uint) error {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Firstname == "" || input.Lastname == "" || input.Email == "" {
		return code.Validation("firstname, lastname and email are required")
	}
	taken, err := s.store.Agents().EmailTaken(input.Email, excludeID)
	if err != nil {
		return code.Internal(err)
	}
	if taken {
		return code.Conflict("email %s is already registered", input.Email)
	}
	if input.CheckpointID != nil {
		ok, err := s.store.Checkpoints().Exists(*input.CheckpointID)
		if err != nil {
			return code.Internal(err)
		}
		if !ok {
			return code.Validation("checkpoint %d does not exist", *input.CheckpointID)
		}
	}
	return nil
}

// Create registers a control agent
func (s *AgentService) Create(input AgentInput) (*models.Agent, error) {
	if len(input.Password) < 8 {
		return nil, code.Validation("password must be at least 8 characters")
	}
	if err := s.validate(&input, 0); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, code.Internal(err)
	}
	agent := &models.Agent{
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Email:        input.Email,
		PasswordHash: hash,
		CheckpointID: input.CheckpointID,
	}
	if err := s.store.Agents().Create(agent); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, code.Conflict("email %s is already registered", input.Email)
		}
		return nil, code.Internal(err)
	}
	return agent, nil
}

// GetByID returns one agent
func (s *AgentService) GetByID(id uint) (*models.Agent, error) {
	agent, err := s.store.Agents().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("agent %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return agent, nil
}

// Update replaces agent fields; the password only changes when a new
// one is supplied
func (s *AgentService) Update(id uint, input AgentInput) (*models.Agent, error) {
	agent, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(&input, id); err != nil {
		return nil, err
	}
	agent.Firstname = input.Firstname
	agent.Lastname = input.Lastname
	agent.Email = input.Email
	agent.CheckpointID = input.CheckpointID
	if input.Password != "" {
		if len(input.Password) < 8 {
			return nil, code.Validation("password must be at least 8 characters")
		}
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, code.Internal(err)
		}
		agent.PasswordHash = hash
	}
	if err := s.store.Agents().Update(agent); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, code.Conflict("email %s is already registered", input.Email)
		}
		return nil, code.Internal(err)
	}
	return agent, nil
}

// Delete removes an agent
func (s *AgentService) Delete(id uint) error {
	if err := s.store.Agents().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("agent %d not found", id)
		}
		return code.Internal(err)
	}
	return nil
}

// List pages through agents, optionally scoped to a checkpoint
func (s *AgentService) List(search string, checkpointID uint, p models.PaginationQuery) ([]models.Agent, int64, error) {
	p.Normalize()
	agents, total, err := s.store.Agents().List(search, checkpointID, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return agents, total, nil
}
