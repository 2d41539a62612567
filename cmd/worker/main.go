package main

import (
	"context"
	"log"

	"github.com/xShinnRyuu/amazon-neptune-tools/config"
	"github.com/xShinnRyuu/amazon-neptune-tools/internal/worker"
)

func main() {
	// Configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	// Run
	ctx := context.Background()
	w := worker.NewWorker(cfg)
	w.Run(ctx, cfg)
}
