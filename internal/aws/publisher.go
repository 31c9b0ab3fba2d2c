package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
)

// FollowUp is the payload sent from API -> SQS -> worker when the backend
// side record of an intent could not be written inline.
type FollowUp struct {
	Intent     orders.Intent `json:"intent"`
	Policy     string        `json:"policy"`
	Reason     string        `json:"reason"`
	EnqueuedAt time.Time     `json:"enqueued_at"`
}

// Publisher wraps an SQS client and a queue URL.
type Publisher struct {
	SQS      SQSAPI
	QueueURL string
	policy   string
	nowFunc  func() time.Time
}

// NewPublisher returns a Publisher bound to a queue URL. policy is stamped
// on every follow-up so the worker can log which path produced it.
func NewPublisher(sqsClient SQSAPI, queueURL, policy string) *Publisher {
	return &Publisher{
		SQS:      sqsClient,
		QueueURL: queueURL,
		policy:   policy,
		nowFunc:  time.Now,
	}
}

// Enqueue sends the identical intent to the follow-up queue.
func (p *Publisher) Enqueue(ctx context.Context, in orders.Intent, reason string) error {
	body, err := json.Marshal(FollowUp{
		Intent:     in,
		Policy:     p.policy,
		Reason:     reason,
		EnqueuedAt: p.nowFunc().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal follow-up: %w", err)
	}
	return p.SendMessage(ctx, string(body), map[string]string{
		"request_id": in.RequestID,
		"policy":     p.policy,
	})
}

// SendMessage sends a message to SQS. messageBody should be a JSON string.
// attributes map[string]string -> sent as MessageAttributes.
func (p *Publisher) SendMessage(ctx context.Context, messageBody string, attributes map[string]string) error {
	input := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: &messageBody,
	}
	if len(attributes) > 0 {
		msgAttrs := map[string]sqstypes.MessageAttributeValue{}
		for k, v := range attributes {
			if v == "" {
				continue
			}
			msgAttrs[k] = sqstypes.MessageAttributeValue{
				DataType:    awsString("String"),
				StringValue: awsString(v),
			}
		}
		input.MessageAttributes = msgAttrs
	}

	_, err := p.SQS.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// DecodeFollowUp parses a follow-up message body.
func DecodeFollowUp(body string) (FollowUp, error) {
	var f FollowUp
	if err := json.Unmarshal([]byte(body), &f); err != nil {
		return FollowUp{}, fmt.Errorf("invalid follow-up body: %w", err)
	}
	if f.Intent.RequestID == "" {
		return FollowUp{}, fmt.Errorf("invalid follow-up body: missing request_id")
	}
	return f, nil
}

func awsString(s string) *string { return &s }
