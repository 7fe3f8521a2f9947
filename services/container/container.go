// Package container wires every service with its dependencies and
// hands them to the controllers by name.
package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/bako110/Sonaby/config"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/store"
)

// ServiceContainer holds every service instance
type ServiceContainer struct {
	store  store.Store
	config *config.Config
	redis  *redis.Client

	// base services
	jwtService   services.InterfaceJWTService
	tokenStore   services.InterfaceTokenStore
	notifier     services.InterfaceNotifier

	// domain services
	authService         services.InterfaceAuthService
	visitorService      services.InterfaceVisitorService
	visitService        services.InterfaceVisitService
	nonDesirableService services.InterfaceNonDesirableService
	incidentService     services.InterfaceIncidentService
	sosService          services.InterfaceSOSService
	siteService         services.InterfaceSiteService
	checkpointService   services.InterfaceCheckpointService
	serviceService      services.InterfaceServiceService
	agentService        services.InterfaceAgentService
	appointmentService  services.InterfaceAppointmentService
	fileService         services.InterfaceFileService
	userService         services.InterfaceUserService
	statsService        services.InterfaceStatsService

	mu sync.RWMutex
}

// NewServiceContainer builds the container. The redis client and the
// notifier may be nil in tests; production wiring passes both.
func NewServiceContainer(s store.Store, cfg *config.Config, redisClient *redis.Client, notifier services.InterfaceNotifier) *ServiceContainer {
	if s == nil {
		panic("store is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}

	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			config.Warning("redis ping failed: %v", err)
		}
	}

	c := &ServiceContainer{
		store:    s,
		config:   cfg,
		redis:    redisClient,
		notifier: notifier,
	}
	c.initializeServices()
	return c
}

func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config)
	if c.redis != nil {
		c.tokenStore = services.NewRedisTokenStore(c.redis)
	} else {
		c.tokenStore = services.NewMemoryTokenStore()
	}

	if c.notifier != nil {
		if err := c.notifier.Connect(); err != nil {
			config.Warning("mqtt connect failed, sos dispatch degraded: %v", err)
		}
	}

	c.authService = services.NewAuthService(c.store, c.jwtService, c.tokenStore, c.config)
	c.visitorService = services.NewVisitorService(c.store)
	c.visitService = services.NewVisitService(c.store)
	c.nonDesirableService = services.NewNonDesirableService(c.store)
	c.incidentService = services.NewIncidentService(c.store, c.config)
	c.sosService = services.NewSOSService(c.store, c.notifier, c.config)
	c.siteService = services.NewSiteService(c.store)
	c.checkpointService = services.NewCheckpointService(c.store)
	c.serviceService = services.NewServiceService(c.store)
	c.agentService = services.NewAgentService(c.store)
	c.appointmentService = services.NewAppointmentService(c.store)
	c.fileService = services.NewFileService(c.store, c.config)
	c.userService = services.NewUserService(c.store)
	c.statsService = services.NewStatsService(c.store)
}

// GetService returns the service registered under name
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "store":
		return c.store
	case "jwt":
		return c.jwtService
	case "tokens":
		return c.tokenStore
	case "auth":
		return c.authService
	case "visitor":
		return c.visitorService
	case "visit":
		return c.visitService
	case "nondesirable":
		return c.nonDesirableService
	case "incident":
		return c.incidentService
	case "sos":
		return c.sosService
	case "site":
		return c.siteService
	case "checkpoint":
		return c.checkpointService
	case "service":
		return c.serviceService
	case "agent":
		return c.agentService
	case "appointment":
		return c.appointmentService
	case "file":
		return c.fileService
	case "user":
		return c.userService
	case "stats":
		return c.statsService
	default:
		return nil
	}
}

// Shutdown releases external connections
func (c *ServiceContainer) Shutdown() {
	if c.notifier != nil {
		c.notifier.Disconnect()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			config.Warning("redis close failed: %v", err)
		}
	}
}
