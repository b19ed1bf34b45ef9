package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type sqsAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher sends batch events to an AWS SQS queue.
type SQSPublisher struct {
	client   sqsAPI
	queueURL string
}

// NewSQSPublisher loads the default AWS configuration for region and targets
// queueURL.
func NewSQSPublisher(ctx context.Context, region, queueURL string) (*SQSPublisher, error) {
	queueURL = strings.TrimSpace(queueURL)
	if queueURL == "" {
		return nil, errors.New("queue url is required")
	}
	var opts []func(*awsconfig.LoadOptions) error
	if region = strings.TrimSpace(region); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SQSPublisher{client: sqs.NewFromConfig(cfg), queueURL: queueURL}, nil
}

// Publish delivers evt with its result id as a message attribute.
func (p *SQSPublisher) Publish(ctx context.Context, evt BatchSubmitted) error {
	payload, err := Encode(evt)
	if err != nil {
		return fmt.Errorf("encode batch event: %w", err)
	}
	in := &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(payload)),
	}
	if evt.ResultID != "" {
		in.MessageAttributes = map[string]types.MessageAttributeValue{
			"resultId": {DataType: aws.String("String"), StringValue: aws.String(evt.ResultID)},
		}
	}
	if _, err := p.client.SendMessage(ctx, in); err != nil {
		return fmt.Errorf("sqs send message: %w", err)
	}
	return nil
}

var _ Publisher = (*SQSPublisher)(nil)
