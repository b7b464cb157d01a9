package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

const messageVersion = 1

// SQSClient enqueues enrichment notifications on AWS SQS instead of calling
// the worker endpoint directly. The SQS message id serves as the tracking
// token.
type SQSClient struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSClient constructs an SQS-backed dispatcher.
func NewSQSClient(ctx context.Context, queueURL string) (*SQSClient, error) {
	queueURL = strings.TrimSpace(queueURL)
	if queueURL == "" {
		return nil, fmt.Errorf("JG_SQS_QUEUE_URL is required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SQSClient{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}, nil
}

// Dispatch enqueues one notification for the owner.
func (s *SQSClient) Dispatch(ctx context.Context, owner string) (string, error) {
	payload, err := EncodeMessage(Message{
		Owner:      owner,
		EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    messageVersion,
	})
	if err != nil {
		return "", &DispatchError{Endpoint: s.queueURL, Err: fmt.Errorf("encode message: %w", err)}
	}

	out, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(payload)),
	})
	if err != nil {
		return "", &DispatchError{Endpoint: s.queueURL, Err: err}
	}
	if out.MessageId == nil || *out.MessageId == "" {
		return "", &DispatchError{Endpoint: s.queueURL, Err: fmt.Errorf("sqs response missing message id")}
	}
	return *out.MessageId, nil
}

var _ Dispatcher = (*SQSClient)(nil)
