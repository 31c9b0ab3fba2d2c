package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/idempotency"
	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
)

// Ledger remembers the fate of each request id. *idempotency.Store
// implements it.
type Ledger interface {
	CreateIfNotExists(ctx context.Context, requestID, policy string) (bool, error)
	Reopen(ctx context.Context, requestID string) (bool, error)
	Get(ctx context.Context, requestID string) (*idempotency.SubmissionRecord, error)
	MarkDone(ctx context.Context, requestID, resultBody string) error
	MarkFailed(ctx context.Context, requestID, note string) error
	MarkBackendRecorded(ctx context.Context, requestID string, backendOrderID int64) error
}

// claim registers in with the ledger. handled is true when the caller must
// return res and err without dispatching. Ledger errors never block.
func (w *Workflow) claim(ctx context.Context, in orders.Intent) (res orders.Result, handled bool, err error) {
	if w.ledger == nil {
		return orders.Result{}, false, nil
	}
	log := w.logger.With(zap.String("request_id", in.RequestID))

	created, lerr := w.ledger.CreateIfNotExists(ctx, in.RequestID, w.policy)
	if lerr != nil {
		log.Warn("ledger create failed, dispatching anyway", zap.Error(lerr))
		return orders.Result{}, false, nil
	}
	if created {
		return orders.Result{}, false, nil
	}

	rec, lerr := w.ledger.Get(ctx, in.RequestID)
	if lerr != nil || rec == nil {
		log.Warn("ledger read failed, dispatching anyway", zap.Error(lerr))
		return orders.Result{}, false, nil
	}

	switch rec.Status {
	case idempotency.StatusDone:
		stored := orders.Result{OK: true, Message: orders.MessageSent}
		if rec.ResultBody != "" {
			if uerr := json.Unmarshal([]byte(rec.ResultBody), &stored); uerr != nil {
				log.Warn("stored result unreadable", zap.Error(uerr))
			}
		}
		stored.RequestID = in.RequestID
		log.Info("request already resolved, returning stored result")
		return stored, true, nil

	case idempotency.StatusFailed:
		reopened, lerr := w.ledger.Reopen(ctx, in.RequestID)
		if lerr != nil {
			log.Warn("ledger reopen failed, dispatching anyway", zap.Error(lerr))
			return orders.Result{}, false, nil
		}
		if reopened {
			return orders.Result{}, false, nil
		}
	}

	return orders.Result{OK: false, Message: orders.MessageBusy, RequestID: in.RequestID},
		true, fmt.Errorf("request %s: %w", in.RequestID, apperr.ErrBusy)
}

func (w *Workflow) record(ctx context.Context, in orders.Intent, res orders.Result, dispatchErr error) {
	if w.ledger == nil {
		return
	}
	log := w.logger.With(zap.String("request_id", in.RequestID))

	if !res.OK {
		if err := w.ledger.MarkFailed(ctx, in.RequestID, dispatchErr.Error()); err != nil {
			log.Warn("ledger mark failed failed", zap.Error(err))
		}
		return
	}

	body, err := json.Marshal(res)
	if err != nil {
		log.Warn("marshal result for ledger", zap.Error(err))
		return
	}
	if err := w.ledger.MarkDone(ctx, in.RequestID, string(body)); err != nil {
		log.Warn("ledger mark done failed", zap.Error(err))
	}

	if o, ok := res.Outcome(orders.ChannelBackend); ok && o.Status == orders.DeliverySent {
		if id, perr := strconv.ParseInt(o.Detail, 10, 64); perr == nil {
			if err := w.ledger.MarkBackendRecorded(ctx, in.RequestID, id); err != nil {
				log.Warn("ledger mark backend recorded failed", zap.Error(err))
			}
		}
	}
}
