package main

import (
	"context"
	"os/signal"
	"syscall"

	"service-driver/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := app.NewContainerBuilder().MustBuild(ctx)
	app.NewRunner().MustRun(container)
}
