// Package submission turns a posted order form into exactly one dispatch
// attempt under the configured delivery policy.
//
// Under soft-fail only the backend channel is used and a backend failure is
// reported to the buyer as a simulated success. Under email-first the email
// relay must succeed; the backend record is written afterwards on a
// best-effort basis. Failed backend records are handed to the follow-up
// queue when one is configured.
package submission

import (
	"context"
	"sync"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/config"
	"github.com/imrishuroy/go-storefront-orderflow/internal/delivery"
	"github.com/imrishuroy/go-storefront-orderflow/internal/events"
	"github.com/imrishuroy/go-storefront-orderflow/internal/logging"
	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
	"github.com/imrishuroy/go-storefront-orderflow/internal/validation"
)

// FollowUpQueue receives intents whose backend record still has to be written.
type FollowUpQueue interface {
	Enqueue(ctx context.Context, in orders.Intent, reason string) error
}

type EventPublisher interface {
	PublishOrderSubmitted(ctx context.Context, event events.OrderSubmittedEvent) error
}

type MetricsRecorder interface {
	RecordOutcomes(ctx context.Context, policy string, outcomes []orders.Outcome) error
}

// Options carries the optional collaborators. Nil members are skipped.
type Options struct {
	Ledger    Ledger
	FollowUps FollowUpQueue
	Events    EventPublisher
	Metrics   MetricsRecorder
	Logger    *zap.Logger
}

type Workflow struct {
	policy    string
	backend   delivery.Channel
	relay     delivery.Channel
	validate  *validatorv10.Validate
	ledger    Ledger
	followUps FollowUpQueue
	events    EventPublisher
	metrics   MetricsRecorder
	logger    *zap.Logger

	// pending tracks event publishes still running after the buyer got
	// the result.
	pending sync.WaitGroup

	now   func() time.Time
	newID func() string
}

// eventTimeout bounds one background event publish.
const eventTimeout = 3 * time.Second

// New builds a workflow for policy. The relay channel is only required by
// the email-first policy.
func New(policy string, backend, relay delivery.Channel, opts Options) (*Workflow, error) {
	if backend == nil {
		return nil, apperr.Configuration("submission: backend channel is required")
	}
	switch policy {
	case config.PolicySoftFail:
	case config.PolicyEmailFirst:
		if relay == nil {
			return nil, apperr.Configuration("submission: policy %s needs an email relay channel", policy)
		}
	default:
		return nil, apperr.Configuration("submission: unknown dispatch policy %q", policy)
	}

	return &Workflow{
		policy:    policy,
		backend:   backend,
		relay:     relay,
		validate:  validation.New(),
		ledger:    opts.Ledger,
		followUps: opts.FollowUps,
		events:    opts.Events,
		metrics:   opts.Metrics,
		logger:    logging.OrNop(opts.Logger).With(zap.String("policy", policy)),
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

// Check validates the buyer fields without building an intent.
func (w *Workflow) Check(form validation.OrderForm) validation.FieldErrors {
	return validation.Validate(w.validate, form.Normalized())
}

// Prepare validates form and builds an Intent for product. A well-formed
// request id posted by the form is kept so a retried attempt dedupes
// against the ledger; anything else gets a fresh one. It never touches
// the network.
func (w *Workflow) Prepare(form validation.OrderForm, product orders.ProductRef) (orders.Intent, validation.FieldErrors) {
	form = form.Normalized()
	if fe := validation.Validate(w.validate, form); fe != nil {
		return orders.Intent{}, fe
	}
	return orders.Intent{
		RequestID:    w.requestID(form.RequestID),
		BuyerName:    form.Name,
		BuyerEmail:   form.Email,
		BuyerPhone:   form.Phone,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Quantity:     validation.CoerceQuantity(form.Quantity),
		Comments:     form.Comments,
		SubmittedAt:  w.now().UTC(),
	}, nil
}

func (w *Workflow) requestID(posted string) string {
	if id, err := uuid.Parse(posted); err == nil {
		return id.String()
	}
	return w.newID()
}

// Submit validates form and dispatches the resulting intent. A validation
// failure returns the field errors and makes no network call.
func (w *Workflow) Submit(ctx context.Context, form validation.OrderForm, product orders.ProductRef) (orders.Result, error) {
	in, fe := w.Prepare(form, product)
	if fe != nil {
		return orders.Result{OK: false, Message: orders.MessageInvalidForm, Fields: fe}, fe
	}
	return w.Dispatch(ctx, in)
}

// Dispatch delivers in under the configured policy. Retrying with the same
// intent is safe when a ledger is configured: a resolved request id returns
// its stored result and one still in flight reports busy.
//
// The returned error is non-nil exactly when Result.OK is false.
func (w *Workflow) Dispatch(ctx context.Context, in orders.Intent) (orders.Result, error) {
	if res, handled, err := w.claim(ctx, in); handled {
		return res, err
	}

	var (
		res orders.Result
		err error
	)
	switch w.policy {
	case config.PolicyEmailFirst:
		res, err = w.dispatchEmailFirst(ctx, in)
	default:
		res, err = w.dispatchSoftFail(ctx, in)
	}
	res.RequestID = in.RequestID

	w.settle(ctx, in, res, err)
	return res, err
}

func (w *Workflow) dispatchSoftFail(ctx context.Context, in orders.Intent) (orders.Result, error) {
	rc, err := w.backend.Deliver(ctx, in)
	if err != nil {
		w.logger.Warn("backend channel failed, reporting simulated order",
			intentFields(in, orders.ChannelBackend, err)...)
		w.followUp(ctx, in, err)
		return orders.Result{
			OK:       true,
			Message:  orders.SimulatedMessage(in),
			Outcomes: []orders.Outcome{orders.Failed(orders.ChannelBackend, err)},
		}, nil
	}

	msg := rc.Message
	if msg == "" {
		msg = orders.MessageSent
	}
	return orders.Result{
		OK:       true,
		Message:  msg,
		Outcomes: []orders.Outcome{orders.Sent(orders.ChannelBackend, rc.Reference)},
	}, nil
}

func (w *Workflow) dispatchEmailFirst(ctx context.Context, in orders.Intent) (orders.Result, error) {
	rc, err := w.relay.Deliver(ctx, in)
	if err != nil {
		w.logger.Error("email relay failed, order not sent",
			intentFields(in, orders.ChannelEmailRelay, err)...)
		return orders.Result{
			OK:       false,
			Message:  orders.MessageDispatchFailed,
			Outcomes: []orders.Outcome{orders.Failed(orders.ChannelEmailRelay, err)},
		}, apperr.Dispatch("dispatch "+in.RequestID, err)
	}
	outcomes := []orders.Outcome{orders.Sent(orders.ChannelEmailRelay, rc.Reference)}

	brc, err := w.backend.Deliver(ctx, in)
	if err != nil {
		w.logger.Warn("backend side record failed",
			intentFields(in, orders.ChannelBackend, err)...)
		w.followUp(ctx, in, err)
		outcomes = append(outcomes, orders.Failed(orders.ChannelBackend, err))
	} else {
		outcomes = append(outcomes, orders.Sent(orders.ChannelBackend, brc.Reference))
	}

	return orders.Result{
		OK:       true,
		Message:  orders.MessageSentWithFollow,
		Outcomes: outcomes,
	}, nil
}

func (w *Workflow) followUp(ctx context.Context, in orders.Intent, cause error) {
	if w.followUps == nil {
		return
	}
	if err := w.followUps.Enqueue(ctx, in, cause.Error()); err != nil {
		w.logger.Error("enqueue follow-up failed",
			intentFields(in, orders.ChannelBackend, err)...)
	}
}

// settle records the resolved dispatch. None of it changes the result.
func (w *Workflow) settle(ctx context.Context, in orders.Intent, res orders.Result, dispatchErr error) {
	w.record(ctx, in, res, dispatchErr)

	if w.metrics != nil {
		if err := w.metrics.RecordOutcomes(ctx, w.policy, res.Outcomes); err != nil {
			w.logger.Warn("record outcome metrics failed", zap.String("request_id", in.RequestID), zap.Error(err))
		}
	}

	if w.events != nil {
		ev := events.OrderSubmittedEvent{
			EventID:     w.newID(),
			RequestID:   in.RequestID,
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			Policy:      w.policy,
			OK:          res.OK,
			Outcomes:    res.Outcomes,
			Timestamp:   w.now().UTC(),
		}
		// The result is already decided; the publish must not hold the response.
		pubCtx := context.WithoutCancel(ctx)
		w.pending.Add(1)
		go func() {
			defer w.pending.Done()
			w.publish(pubCtx, ev)
		}()
	}

	w.logger.Info("order dispatched",
		zap.String("request_id", in.RequestID),
		zap.Int64("product_id", in.ProductID),
		zap.Int("quantity", in.Quantity),
		zap.Bool("ok", res.OK),
		zap.Any("outcomes", res.Outcomes))
}

func (w *Workflow) publish(ctx context.Context, ev events.OrderSubmittedEvent) {
	ctx, cancel := context.WithTimeout(ctx, eventTimeout)
	defer cancel()
	if err := w.events.PublishOrderSubmitted(ctx, ev); err != nil {
		w.logger.Warn("publish order submitted event failed", zap.String("request_id", ev.RequestID), zap.Error(err))
	}
}

// Drain waits for background event publishes to finish.
func (w *Workflow) Drain() {
	w.pending.Wait()
}

func intentFields(in orders.Intent, ch orders.Channel, err error) []zap.Field {
	return []zap.Field{
		zap.String("request_id", in.RequestID),
		zap.Int64("product_id", in.ProductID),
		zap.String("channel", string(ch)),
		zap.String("error_kind", apperr.Kind(err)),
		zap.Error(err),
	}
}
