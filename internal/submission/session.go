package submission

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
	"github.com/imrishuroy/go-storefront-orderflow/internal/validation"
)

// Session is one open order form. While a submission is in flight the form
// is busy and further submits are refused without any network call.
type Session struct {
	wf   *Workflow
	busy atomic.Bool
	refs int // guarded by Registry.mu
}

func (w *Workflow) NewSession() *Session {
	return &Session{wf: w}
}

func (s *Session) Busy() bool { return s.busy.Load() }

func (s *Session) Submit(ctx context.Context, form validation.OrderForm, product orders.ProductRef) (orders.Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return orders.Result{OK: false, Message: orders.MessageBusy}, apperr.ErrBusy
	}
	defer s.busy.Store(false)

	return s.wf.Submit(ctx, form, product)
}

// Registry tracks the sessions with a submission in flight, keyed by a
// caller-chosen form id. Entries are dropped as soon as they go idle.
type Registry struct {
	wf       *Workflow
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(w *Workflow) *Registry {
	return &Registry{wf: w, sessions: map[string]*Session{}}
}

// Submit runs the submission on the session for formID. An empty formID
// always gets a fresh session.
func (r *Registry) Submit(ctx context.Context, formID string, form validation.OrderForm, product orders.ProductRef) (orders.Result, error) {
	if formID == "" {
		return r.wf.NewSession().Submit(ctx, form, product)
	}
	s := r.acquire(formID)
	defer r.release(formID, s)
	return s.Submit(ctx, form, product)
}

// InFlight reports how many form ids currently hold a session.
func (r *Registry) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) acquire(formID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[formID]
	if !ok {
		s = r.wf.NewSession()
		r.sessions[formID] = s
	}
	s.refs++
	return s
}

func (r *Registry) release(formID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(r.sessions, formID)
	}
}

// Check validates the buyer fields without claiming a session.
func (r *Registry) Check(form validation.OrderForm) validation.FieldErrors {
	return r.wf.Check(form)
}
