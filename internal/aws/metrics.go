package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
)

const (
	MetricDeliverySent   = "DeliverySent"
	MetricDeliveryFailed = "DeliveryFailed"
)

// Metrics records per-channel delivery outcomes as CloudWatch counters.
type Metrics struct {
	CloudWatch CloudWatchAPI
	Namespace  string
	nowFunc    func() time.Time
}

func NewMetrics(cw CloudWatchAPI, namespace string) *Metrics {
	return &Metrics{CloudWatch: cw, Namespace: namespace, nowFunc: time.Now}
}

// RecordOutcomes emits one datum per outcome in a single PutMetricData call.
func (m *Metrics) RecordOutcomes(ctx context.Context, policy string, outcomes []orders.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	ts := m.nowFunc()
	data := make([]cwtypes.MetricDatum, 0, len(outcomes))
	for _, o := range outcomes {
		name := MetricDeliverySent
		if o.Status == orders.DeliveryFailed {
			name = MetricDeliveryFailed
		}
		data = append(data, cwtypes.MetricDatum{
			MetricName: awsString(name),
			Dimensions: []cwtypes.Dimension{
				{Name: awsString("Channel"), Value: awsString(string(o.Channel))},
				{Name: awsString("Policy"), Value: awsString(policy)},
			},
			Value:     awsFloat(1),
			Unit:      cwtypes.StandardUnitCount,
			Timestamp: &ts,
		})
	}

	_, err := m.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  awsString(m.Namespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

func awsFloat(f float64) *float64 { return &f }
