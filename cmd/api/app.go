package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-orderflow/internal/aws"
	"github.com/imrishuroy/go-storefront-orderflow/internal/backend"
	"github.com/imrishuroy/go-storefront-orderflow/internal/catalog"
	"github.com/imrishuroy/go-storefront-orderflow/internal/config"
	"github.com/imrishuroy/go-storefront-orderflow/internal/delivery"
	"github.com/imrishuroy/go-storefront-orderflow/internal/events"
	"github.com/imrishuroy/go-storefront-orderflow/internal/handlers"
	"github.com/imrishuroy/go-storefront-orderflow/internal/idempotency"
	"github.com/imrishuroy/go-storefront-orderflow/internal/readiness"
	"github.com/imrishuroy/go-storefront-orderflow/internal/submission"
)

// app owns everything main wires together.
type app struct {
	handlers handlers.HandlerConfig
	closers  []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{}

	// HTTP_TIMEOUT=0 keeps the transport defaults.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	api := backend.New(cfg.BaseURL(), httpClient)

	relay := delivery.NewRelay(cfg.Relay, cfg.MerchantEmail, httpClient)
	if _, disabled := relay.(*delivery.Unavailable); disabled && cfg.DispatchPolicy == config.PolicyEmailFirst {
		logger.Warn("email relay is not configured; every order will fail under the email-first policy")
	}

	opts := submission.Options{Logger: logger}

	if cfg.SubmissionsTable != "" || cfg.FollowUpQueueURL != "" || cfg.MetricsNamespace != "" {
		clients, err := aws.NewAWSClients(ctx)
		if err != nil {
			return nil, err
		}
		if cfg.SubmissionsTable != "" {
			opts.Ledger = idempotency.NewStore(clients.DynamoDB, cfg.SubmissionsTable, cfg.SubmissionTTL)
		}
		if cfg.FollowUpQueueURL != "" {
			opts.FollowUps = aws.NewPublisher(clients.SQS, cfg.FollowUpQueueURL, cfg.DispatchPolicy)
		}
		if cfg.MetricsNamespace != "" {
			opts.Metrics = aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace)
		}
	}

	if cfg.KafkaBrokers != "" {
		producer, err := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			return nil, err
		}
		opts.Events = producer
		a.closers = append(a.closers, producer.Close)
	}

	wf, err := submission.New(cfg.DispatchPolicy, delivery.NewBackend(api, cfg.MerchantEmail), relay, opts)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Pending event publishes finish before the producer closes.
	a.closers = append([]func() error{func() error {
		wf.Drain()
		return nil
	}}, a.closers...)

	gate := readiness.New()
	gate.Start(cfg.ReadinessDelay)

	a.handlers = handlers.HandlerConfig{
		Catalog: catalog.New(api, logger),
		Admin:   api,
		Orders:  submission.NewRegistry(wf),
		Ready:   gate,
		Logger:  logger,
	}
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
}
