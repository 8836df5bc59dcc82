package awsutil

import (
	"context"
	"fmt"
	"os"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsPublisher counts service-level events in a metrics backend.
type MetricsPublisher interface {
	CountMetric(ctx context.Context, metricName string, dimensions map[string]string) error
}

// MetricsClient wraps AWS CloudWatch metric operations.
type MetricsClient struct {
	client    *cloudwatch.Client
	namespace string
	enabled   bool
}

// NewMetricsClient creates a new CloudWatch metrics client. Publishing is
// disabled unless CLOUDWATCH_ENABLED=true, so local runs stay offline.
func NewMetricsClient(cfg sdkaws.Config) *MetricsClient {
	namespace := os.Getenv("CLOUDWATCH_NAMESPACE")
	if namespace == "" {
		namespace = "Shipping"
	}

	return &MetricsClient{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
		enabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
	}
}

// CountMetric sends a single count data point to CloudWatch.
func (m *MetricsClient) CountMetric(ctx context.Context, metricName string, dimensions map[string]string) error {
	if !m.enabled {
		return nil
	}

	dims := make([]types.Dimension, 0, len(dimensions))
	for k, v := range dimensions {
		dims = append(dims, types.Dimension{
			Name:  sdkaws.String(k),
			Value: sdkaws.String(v),
		})
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: sdkaws.String(metricName),
				Value:      sdkaws.Float64(1),
				Unit:       types.StandardUnitCount,
				Timestamp:  sdkaws.Time(time.Now()),
				Dimensions: dims,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put metric: %w", err)
	}
	return nil
}
