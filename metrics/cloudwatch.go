// file: metrics/cloudwatch.go
package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"

	"cashplayzz-web/logger"
)

// NewCloudWatchClient builds a client from the default AWS credential chain.
func NewCloudWatchClient() (cloudwatchiface.CloudWatchAPI, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}
	return cloudwatch.New(sess), nil
}

// Publisher pushes live view counts to CloudWatch on a fixed period.
type Publisher struct {
	client    cloudwatchiface.CloudWatchAPI
	namespace string
	views     func() map[string]int
	now       func() time.Time
}

// NewPublisher creates a Publisher reading counts from views.
func NewPublisher(client cloudwatchiface.CloudWatchAPI, namespace string, views func() map[string]int) *Publisher {
	return &Publisher{client: client, namespace: namespace, views: views, now: time.Now}
}

// Run publishes every period until ctx is done. A non-positive period
// disables publishing.
func (p *Publisher) Run(ctx context.Context, period time.Duration) {
	if period <= 0 {
		logger.Error.Printf("[Publisher] invalid period %s, CloudWatch publishing disabled", period)
		return
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.PublishOnce(ctx); err != nil && ctx.Err() == nil {
				logger.Error.Printf("[Publisher] CloudWatch metric failed: %v", err)
			}
		}
	}
}

// PublishOnce sends one datum per view kind.
func (p *Publisher) PublishOnce(ctx context.Context) error {
	counts := p.views()
	if len(counts) == 0 {
		return nil
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	ts := p.now()
	data := make([]*cloudwatch.MetricDatum, 0, len(kinds))
	for _, k := range kinds {
		data = append(data, &cloudwatch.MetricDatum{
			MetricName: aws.String("LiveViewConnections"),
			Dimensions: []*cloudwatch.Dimension{
				{
					Name:  aws.String("View"),
					Value: aws.String(k),
				},
			},
			Timestamp: aws.Time(ts),
			Value:     aws.Float64(float64(counts[k])),
			Unit:      aws.String(cloudwatch.StandardUnitCount),
		})
	}

	_, err := p.client.PutMetricDataWithContext(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(p.namespace),
		MetricData: data,
	})
	return err
}
