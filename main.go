package main

import (
	"airops/app/client/llm"
	"airops/app/client/rowstore"
	"airops/app/config"
	"airops/app/server"
	"airops/app/service/chat"
	"airops/app/service/digest"
	"airops/app/service/fetch"
	"airops/app/service/intent"
	"airops/app/service/mlreport"
	"airops/app/service/persona"
	"airops/app/util/mylog"
	"context"
	"log/slog"
	"os"
	"os/signal"

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

	do.Provide(di, rowstore.NewClient)
	do.Provide(di, llm.New)
	do.Provide(di, intent.New)
	do.Provide(di, fetch.New)
	do.Provide(di, digest.New)
	do.Provide(di, persona.New)
	do.Provide(di, chat.New)
	do.Provide(di, mlreport.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	do.MustInvoke[*server.Server](di).Run(appCtx)
}
