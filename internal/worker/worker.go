package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xShinnRyuu/amazon-neptune-tools/config"
	"github.com/xShinnRyuu/amazon-neptune-tools/internal/controller/rmq"
	"github.com/xShinnRyuu/amazon-neptune-tools/internal/telemetry/metric"
	ttrace "github.com/xShinnRyuu/amazon-neptune-tools/internal/telemetry/trace"
	"github.com/xShinnRyuu/amazon-neptune-tools/pkg/logger"
)

var name = "csv-compression-worker"

// NewWorker ...
func NewWorker(cfg *config.Config) *Worker {
	worker := &Worker{}

	worker.InitGlobalProvider(name, cfg.OTEL.OTLPEndpoint)

	return worker
}

type Worker struct {
	traceProviderCloseFn []ttrace.CloseFunc
}

// Run ...
func (s *Worker) Run(ctx context.Context, cfg *config.Config) error {
	l := logger.New(cfg.Log.Level)

	amqpWorker, err := rmq.NewAMQPWorker(cfg, l)
	if err != nil {
		l.Fatal(err)
	}

	go func() {
		if err := metric.Serve(cfg.OTEL.PrometheusPort); err != nil {
			l.Error(fmt.Errorf("app - Run - metric.Serve: %w", err))
		}
	}()

	consumeErr := make(chan error, 1)
	go func() {
		consumeErr <- amqpWorker.StartConsumer(ctx)
	}()

	l.Info("compression worker started")

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-interrupt:
		l.Info("app - Run - signal: " + sig.String())
	case err := <-consumeErr:
		l.Error(fmt.Errorf("app - Run - consumer: %w", err))
	}

	log.Printf("worker stopped")

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown
	if err := amqpWorker.CloseChan(); err != nil {
		l.Error(fmt.Errorf("app - Run - amqpWorker.CloseChan: %w", err))
	}

	for _, closeFn := range s.traceProviderCloseFn {
		if err := closeFn(ctxShutDown); err != nil {
			log.Error().Err(err).Msgf("Unable to close trace provider")
		}
	}

	log.Printf("worker exited properly")

	return nil
}
