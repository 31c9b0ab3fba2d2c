package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery channels.
type Channel string

const (
	ChannelBackend    Channel = "backend"
	ChannelEmailRelay Channel = "email_relay"
)

// Delivery statuses.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// ProductRef is the part of a catalog product an order reads.
type ProductRef struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Intent is one buyer's validated order. It is built once per submission
// and passed by value; a retry dispatches the same Intent again rather than
// rebuilding it from the form.
type Intent struct {
	RequestID    string          `json:"request_id"`
	BuyerName    string          `json:"buyer_name"`
	BuyerEmail   string          `json:"buyer_email"`
	BuyerPhone   string          `json:"buyer_phone"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	Comments     string          `json:"comments"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

// Outcome is what a single channel did with an Intent.
type Outcome struct {
	Channel Channel        `json:"channel"`
	Status  DeliveryStatus `json:"status"`
	Detail  string         `json:"detail"`
}

func Sent(ch Channel, detail string) Outcome {
	return Outcome{Channel: ch, Status: DeliverySent, Detail: detail}
}

func Failed(ch Channel, err error) Outcome {
	return Outcome{Channel: ch, Status: DeliveryFailed, Detail: err.Error()}
}

// Result is the single answer the storefront shows the buyer.
type Result struct {
	OK        bool              `json:"ok"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Outcomes  []Outcome         `json:"-"`
}

// Outcome returns the recorded outcome for ch, if any.
func (r Result) Outcome(ch Channel) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Channel == ch {
			return o, true
		}
	}
	return Outcome{}, false
}
