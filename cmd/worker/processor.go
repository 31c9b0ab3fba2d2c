package main

import (
	"context"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-orderflow/internal/aws"
	"github.com/imrishuroy/go-storefront-orderflow/internal/delivery"
	"github.com/imrishuroy/go-storefront-orderflow/internal/logging"
)

// BackendRecorder is the ledger update the worker performs.
type BackendRecorder interface {
	MarkBackendRecorded(ctx context.Context, requestID string, backendOrderID int64) error
}

// Processor replays follow-ups against the backend channel with the
// identical intent the API dispatched.
type Processor struct {
	backend delivery.Channel
	ledger  BackendRecorder
	logger  *zap.Logger
}

// NewProcessor creates a worker processor. ledger may be nil.
func NewProcessor(backend delivery.Channel, ledger BackendRecorder, logger *zap.Logger) *Processor {
	return &Processor{backend: backend, ledger: ledger, logger: logging.OrNop(logger)}
}

// Handle processes each message and reports the failed ones so SQS only
// redelivers those; after maxReceiveCount they land in the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.logger.Error("follow-up failed",
				zap.String("message_id", rec.MessageId),
				zap.Error(err))
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: rec.MessageId,
			})
		}
	}
	return resp, nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	f, err := aws.DecodeFollowUp(rec.Body)
	if err != nil {
		return err
	}
	log := p.logger.With(
		zap.String("request_id", f.Intent.RequestID),
		zap.String("policy", f.Policy),
		zap.String("reason", f.Reason))

	log.Info("replaying backend record")
	rc, err := p.backend.Deliver(ctx, f.Intent)
	if err != nil {
		return err
	}

	// The record exists now; a ledger failure must not trigger a second one.
	if p.ledger != nil {
		if id, perr := strconv.ParseInt(rc.Reference, 10, 64); perr == nil {
			if err := p.ledger.MarkBackendRecorded(ctx, f.Intent.RequestID, id); err != nil {
				log.Warn("ledger update failed", zap.Error(err))
			}
		}
	}

	log.Info("backend record written", zap.String("backend_order_id", rc.Reference))
	return nil
}
