package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-orderflow/internal/aws"
	"github.com/imrishuroy/go-storefront-orderflow/internal/backend"
	"github.com/imrishuroy/go-storefront-orderflow/internal/config"
	"github.com/imrishuroy/go-storefront-orderflow/internal/delivery"
	"github.com/imrishuroy/go-storefront-orderflow/internal/idempotency"
	"github.com/imrishuroy/go-storefront-orderflow/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	api := backend.New(cfg.BaseURL(), &http.Client{Timeout: cfg.HTTPTimeout})
	var ledger BackendRecorder
	if cfg.SubmissionsTable != "" {
		clients, err := aws.NewAWSClients(context.Background())
		if err != nil {
			logger.Fatal("failed to init aws clients", zap.Error(err))
		}
		ledger = idempotency.NewStore(clients.DynamoDB, cfg.SubmissionsTable, cfg.SubmissionTTL)
	}
	p := NewProcessor(delivery.NewBackend(api, cfg.MerchantEmail), ledger, logger)

	// If RUN_LOCAL=true, replay a single follow-up body for local testing.
	if cfg.RunLocal {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			logger.Fatal("LOCAL_SQS_BODY is required when RUN_LOCAL=true")
		}
		ev := events.SQSEvent{Records: []events.SQSMessage{{MessageId: "local-1", Body: body}}}
		resp, _ := p.Handle(context.Background(), ev)
		if len(resp.BatchItemFailures) > 0 {
			logger.Fatal("local follow-up failed")
		}
		return
	}

	lambda.Start(p.Handle)
}
