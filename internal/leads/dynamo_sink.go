package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/DebasishDas1/HVAC-Lead/pkg/logging"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoSink persists qualified leads to a DynamoDB table keyed by session id.
// The conditional put makes the write idempotent: a retry after a timed-out
// but successful attempt is treated as success, not a duplicate.
type DynamoSink struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

var _ Sink = (*DynamoSink)(nil)

// NewDynamoSink builds a sink backed by the provided DynamoDB client.
func NewDynamoSink(client dynamoAPI, tableName string, logger *logging.Logger) *DynamoSink {
	if client == nil {
		panic("leads: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("leads: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &DynamoSink{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Record writes the lead if no lead for its session exists yet.
func (s *DynamoSink) Record(ctx context.Context, lead *Lead) error {
	if lead == nil {
		return errors.New("leads: lead cannot be nil")
	}
	if lead.SessionID == "" {
		return errors.New("leads: lead session id is required")
	}

	item, err := attributevalue.MarshalMap(lead)
	if err != nil {
		return fmt.Errorf("leads: failed to marshal lead: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(session_id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			s.logger.Info("lead already recorded for session, skipping",
				"session_id", lead.SessionID,
			)
			return nil
		}
		return fmt.Errorf("leads: failed to persist lead: %w", err)
	}
	return nil
}
