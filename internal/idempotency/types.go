package idempotency

import "time"

// Status values for ledger entries
const (
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
	StatusFailed     = "FAILED"
)

// SubmissionRecord is the shape persisted in the submissions DynamoDB table,
// one item per order intent request id.
type SubmissionRecord struct {
	RequestID      string    `dynamodbav:"request_id"` // PK
	Status         string    `dynamodbav:"status"`
	Policy         string    `dynamodbav:"policy,omitempty"`
	ResultBody     string    `dynamodbav:"result_body,omitempty"` // JSON of the buyer-facing result
	BackendOrderID string    `dynamodbav:"backend_order_id,omitempty"`
	Attempts       int       `dynamodbav:"attempts"`
	CreatedAt      time.Time `dynamodbav:"created_at"`
	UpdatedAt      time.Time `dynamodbav:"updated_at"`
	ExpiresAt      int64     `dynamodbav:"expires_at"` // TTL epoch seconds
	Note           string    `dynamodbav:"note,omitempty"`
}
