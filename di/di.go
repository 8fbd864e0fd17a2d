// Package di provides a dependency injection container for the application.
package di

import (
	"context"
	"fmt"
	"time"

	"github.com/ovozlabs/ovoz-voice-service/approval"
	"github.com/ovozlabs/ovoz-voice-service/audio"
	"github.com/ovozlabs/ovoz-voice-service/cache"
	"github.com/ovozlabs/ovoz-voice-service/config"
	"github.com/ovozlabs/ovoz-voice-service/entitlement"
	"github.com/ovozlabs/ovoz-voice-service/events"
	"github.com/ovozlabs/ovoz-voice-service/health"
	"github.com/ovozlabs/ovoz-voice-service/interfaces"
	"github.com/ovozlabs/ovoz-voice-service/pipeline"
	"github.com/ovozlabs/ovoz-voice-service/services"
	"github.com/ovozlabs/ovoz-voice-service/stt"
	"github.com/ovozlabs/ovoz-voice-service/worker"
)

// Container holds all the dependencies for the application. It is built
// once at startup; nothing in the core reaches for ambient globals.
type Container struct {
	Config    *config.AllConfig
	Cache     *cache.RedisClient
	Store     entitlement.Store
	Admission *entitlement.AdmissionController
	Engine    interfaces.SpeechToText
	Fetcher   interfaces.AudioFetcher
	Notifier  interfaces.Notifier
	Pipeline  *pipeline.Pipeline
	Workflow  *approval.Workflow
	Pool      *worker.WorkerPool
	Handler   *events.Handler
	Status    *services.StatusServer
}

// NewContainer creates a new dependency injection container. The notifier
// defaults to the logging stub; a chat-platform adapter embedding this
// service replaces it via the notifier argument (nil selects the stub).
func NewContainer(version string, notifier interfaces.Notifier) (*Container, error) {
	cfg, err := config.LoadAllConfigs()
	if err != nil {
		return nil, fmt.Errorf("fatal error loading config: %w", err)
	}

	if notifier == nil {
		notifier = &services.StubNotifier{}
	}

	var redisClient *cache.RedisClient
	var store entitlement.Store
	switch cfg.Service.StoreBackend {
	case "redis":
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		store = entitlement.NewRedisStoreFromClient(redisClient.Client)
	case "file":
		path, err := config.ExpandPath(cfg.Service.LedgerPath)
		if err != nil {
			return nil, err
		}
		store, err = entitlement.NewFileStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file ledger: %w", err)
		}
	case "memory":
		store = entitlement.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Supported: redis, file, memory", cfg.Service.StoreBackend)
	}

	engine, err := stt.NewEngine(context.Background(), cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize STT engine: %w", err)
	}

	fetcher := audio.NewHTTPFetcher(30 * time.Second)
	admission := entitlement.NewAdmissionController(store)

	p := pipeline.New(store, admission, engine, fetcher, time.Duration(cfg.Engine.TimeoutSeconds)*time.Second)
	workflow := approval.NewWorkflow(store, cfg.Service.OperatorID, notifier)
	pool := worker.New(cfg.Service.Workers, cfg.Service.QueueSize)

	statusServer := services.NewStatusServer(cfg.Service.StatusPort, version, func() map[string]string {
		return map[string]string{
			"store":    health.GetStoreStatus(store),
			"engine":   health.GetEngineStatus(engine),
			"notifier": health.GetNotifierStatus(notifier),
		}
	})

	handler := events.NewHandler(pool, p, workflow, notifier, statusServer)

	return &Container{
		Config:    cfg,
		Cache:     redisClient,
		Store:     store,
		Admission: admission,
		Engine:    engine,
		Fetcher:   fetcher,
		Notifier:  notifier,
		Pipeline:  p,
		Workflow:  workflow,
		Pool:      pool,
		Handler:   handler,
		Status:    statusServer,
	}, nil
}

// Close releases the container's long-lived resources.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Stop()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if closer, ok := c.Engine.(interface{ Close() }); ok {
		closer.Close()
	}
}
