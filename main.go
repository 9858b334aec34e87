package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"smartreply/app/config"
	"smartreply/app/server"
	"smartreply/app/service/cache"
	"smartreply/app/service/generation"
	"smartreply/app/service/reply"
	"smartreply/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, generation.New)
	do.Provide(di, cache.New)
	do.Provide(di, reply.New)
	do.Provide(di, server.New)

	// One-time model load before accepting traffic; a failure leaves the
	// backend degraded and the service template-only.
	status := do.MustInvoke[*generation.Service](di).Load(appCtx)

	slog.Info("Service started", "backend", string(status))

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	do.MustInvoke[*server.Service](di).Run(appCtx)
}
