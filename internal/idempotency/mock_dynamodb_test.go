package idempotency

import (
	"context"
	"errors"
	"strconv"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ledgerMock is a small in-memory stand-in for the ledger table. It
// understands only the expressions Store issues.
type ledgerMock struct {
	mu          sync.Mutex
	table       map[string]map[string]types.AttributeValue
	putCalls    int
	getCalls    int
	updateCalls int
	failNext    error
}

func newLedgerMock() *ledgerMock {
	return &ledgerMock{
		table: map[string]map[string]types.AttributeValue{},
	}
}

func (m *ledgerMock) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func keyOf(item map[string]types.AttributeValue) (string, error) {
	attr, ok := item["request_id"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("missing key")
	}
	return attr.Value, nil
}

func (m *ledgerMock) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	k, err := keyOf(params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(request_id)" {
		if _, ok := m.table[k]; ok {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.table[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *ledgerMock) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	k, err := keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.table[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *ledgerMock) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	k, err := keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.table[k]

	if cond := params.ConditionExpression; cond != nil {
		switch *cond {
		case "attribute_exists(request_id)":
			if !ok {
				return nil, &types.ConditionalCheckFailedException{}
			}
		case "#s = :failed":
			st, _ := item["status"].(*types.AttributeValueMemberS)
			if !ok || st == nil || st.Value != StatusFailed {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
	}
	if !ok {
		item = map[string]types.AttributeValue{"request_id": params.Key["request_id"]}
	}

	vals := params.ExpressionAttributeValues
	for placeholder, attr := range map[string]string{
		":rb":  "result_body",
		":n":   "note",
		":ua":  "updated_at",
		":oid": "backend_order_id",
	} {
		if v, found := vals[placeholder]; found {
			item[attr] = v
		}
	}
	switch {
	case vals[":done"] != nil:
		item["status"] = vals[":done"]
	case vals[":inprogress"] != nil:
		item["status"] = vals[":inprogress"]
	case vals[":failed"] != nil && params.ConditionExpression == nil:
		item["status"] = vals[":failed"]
	}
	if vals[":one"] != nil {
		n := 0
		if cur, isN := item["attempts"].(*types.AttributeValueMemberN); isN {
			n, _ = strconv.Atoi(cur.Value)
		}
		item["attempts"] = &types.AttributeValueMemberN{Value: strconv.Itoa(n + 1)}
	}
	m.table[k] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}
