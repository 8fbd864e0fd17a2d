package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ovozlabs/ovoz-voice-service/cache"
	"github.com/ovozlabs/ovoz-voice-service/di"
	logger "github.com/ovozlabs/ovoz-voice-service/log"
)

const version = "1.2.0"

func main() {
	// 1. Build the service container (config, store, engine, pipeline).
	container, err := di.NewContainer(version, nil)
	if err != nil {
		log.Fatalf("Fatal error building service container: %v", err)
	}
	defer container.Close()

	// 2. Initialize the logger. When redis is wired, recent log lines are
	// mirrored there for inspection.
	if container.Cache != nil {
		logger.Init(container.Notifier, cache.NewLogWriter(container.Cache))
	} else {
		logger.Init(container.Notifier, nil)
	}

	// 3. Start the transcription workers.
	container.Pool.Start()
	logger.Info("[BOOT] %d transcription workers started (queue size %d)", container.Pool.MaxWorkers, cap(container.Pool.JobQueue))

	// 4. Start the local status server.
	if err := container.Status.Start(); err != nil {
		logger.Error("Failed to start status server", err)
	}

	logger.Info("[BOOT] ovoz-voice-service %s ready: store=%s engine=%s operator=%s",
		version,
		container.Config.Service.StoreBackend,
		container.Engine.Name(),
		container.Config.Service.OperatorID,
	)

	// 5. Wait for shutdown signal. Inbound events arrive through the
	// transport adapter, which calls container.Handler.
	fmt.Println("Service is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("\nService shutting down.")
}
