// Package idempotency is the submission ledger: it remembers what happened
// to each order intent request id so a retry of the same intent returns the
// stored result instead of dispatching twice.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/go-storefront-orderflow/internal/aws"
)

// Store encapsulates ledger operations against DynamoDB.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	ttlWindow time.Duration
	nowFunc   func() time.Time
}

// NewStore returns a configured Store.
// ttlWindow: how long entries live before DynamoDB TTL removes them (e.g. 48h).
func NewStore(client aws.DynamoDBAPI, tableName string, ttlWindow time.Duration) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

// CreateIfNotExists records requestID as IN_PROGRESS if it is not yet known.
// Returns (true, nil) when created and (false, nil) when an entry already
// exists; the caller should Get it.
func (s *Store) CreateIfNotExists(ctx context.Context, requestID, policy string) (bool, error) {
	now := s.nowFunc()
	rec := SubmissionRecord{
		RequestID: requestID,
		Status:    StatusInProgress,
		Policy:    policy,
		Attempts:  1,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttlWindow).Unix(),
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return false, fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(request_id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("put item: %w", err)
	}
	return true, nil
}

// Reopen moves a FAILED entry back to IN_PROGRESS for another attempt.
// Returns false when the entry is not FAILED, i.e. another caller won.
func (s *Store) Reopen(ctx context.Context, requestID string) (bool, error) {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:           &s.tableName,
		Key:                 s.key(requestID),
		UpdateExpression:    awsString("SET #s = :inprogress, updated_at = :ua ADD attempts :one"),
		ConditionExpression: awsString("#s = :failed"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":inprogress": &types.AttributeValueMemberS{Value: StatusInProgress},
			":failed":     &types.AttributeValueMemberS{Value: StatusFailed},
			":one":        &types.AttributeValueMemberN{Value: "1"},
			":ua":         s.timestamp(),
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("update item (reopen): %w", err)
	}
	return true, nil
}

// Get retrieves an entry by request id. If not found, returns (nil, nil).
func (s *Store) Get(ctx context.Context, requestID string) (*SubmissionRecord, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName:      &s.tableName,
		Key:            s.key(requestID),
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var rec SubmissionRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &rec, nil
}

// MarkDone sets status to DONE and stores the buyer-facing result.
func (s *Store) MarkDone(ctx context.Context, requestID, resultBody string) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:        &s.tableName,
		Key:              s.key(requestID),
		UpdateExpression: awsString("SET #s = :done, result_body = :rb, updated_at = :ua"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":done": &types.AttributeValueMemberS{Value: StatusDone},
			":rb":   &types.AttributeValueMemberS{Value: resultBody},
			":ua":   s.timestamp(),
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return fmt.Errorf("update item (mark done): %w", err)
	}
	return nil
}

// MarkFailed marks the entry FAILED so the same intent may be dispatched again.
func (s *Store) MarkFailed(ctx context.Context, requestID, note string) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:        &s.tableName,
		Key:              s.key(requestID),
		UpdateExpression: awsString("SET #s = :failed, note = :n, updated_at = :ua"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed": &types.AttributeValueMemberS{Value: StatusFailed},
			":n":      &types.AttributeValueMemberS{Value: note},
			":ua":     s.timestamp(),
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return fmt.Errorf("update item (mark failed): %w", err)
	}
	return nil
}

// MarkBackendRecorded stores the backend order id once the side record
// exists, whether it was written inline or replayed by the worker.
func (s *Store) MarkBackendRecorded(ctx context.Context, requestID string, backendOrderID int64) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:           &s.tableName,
		Key:                 s.key(requestID),
		UpdateExpression:    awsString("SET backend_order_id = :oid, updated_at = :ua"),
		ConditionExpression: awsString("attribute_exists(request_id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: strconv.FormatInt(backendOrderID, 10)},
			":ua":  s.timestamp(),
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return fmt.Errorf("mark backend recorded: unknown request id %s", requestID)
		}
		return fmt.Errorf("update item (mark backend recorded): %w", err)
	}
	return nil
}

func (s *Store) key(requestID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"request_id": &types.AttributeValueMemberS{Value: requestID},
	}
}

func (s *Store) timestamp() types.AttributeValue {
	return &types.AttributeValueMemberS{Value: s.nowFunc().UTC().Format(time.RFC3339)}
}

func isConditionFailed(err error) bool {
	var sc smithy.APIError
	return errors.As(err, &sc) && sc.ErrorCode() == "ConditionalCheckFailedException"
}

// Helpers
func awsString(s string) *string { return &s }
func awsBool(b bool) *bool { return &b }
