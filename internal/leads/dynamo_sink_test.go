package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/DebasishDas1/HVAC-Lead/pkg/logging"
)

type mockDynamo struct {
	putInput *dynamodb.PutItemInput
	putErr   error
	calls    int
}

func (m *mockDynamo) PutItem(ctx context.Context, input *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.calls++
	m.putInput = input
	if m.putErr != nil {
		return nil, m.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func testLead() *Lead {
	return New(Params{
		SessionID:   "sess-1",
		Name:        "Jordan",
		Email:       "jordan@example.com",
		Phone:       "555-0100",
		Transcript:  "user: my furnace is dead\nassistant: sorry to hear that",
		ServiceType: "repair",
		Urgency:     "high",
		Timestamp:   time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	})
}

func TestDynamoSinkRecord(t *testing.T) {
	mock := &mockDynamo{}
	sink := NewDynamoSink(mock, "hvac_leads", logging.Default())

	lead := testLead()
	if err := sink.Record(context.Background(), lead); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if mock.putInput == nil {
		t.Fatal("expected a PutItem call")
	}
	if got := *mock.putInput.TableName; got != "hvac_leads" {
		t.Fatalf("table name = %q, want hvac_leads", got)
	}
	if expr := mock.putInput.ConditionExpression; expr == nil || *expr != "attribute_not_exists(session_id)" {
		t.Fatalf("unexpected condition expression: %v", expr)
	}

	var stored Lead
	if err := attributevalue.UnmarshalMap(mock.putInput.Item, &stored); err != nil {
		t.Fatalf("failed to unmarshal stored item: %v", err)
	}
	if stored.SessionID != "sess-1" || stored.Status != StatusQualified {
		t.Fatalf("unexpected stored lead: %+v", stored)
	}
	if stored.ID != lead.ID {
		t.Fatalf("stored id = %q, want %q", stored.ID, lead.ID)
	}
}

func TestDynamoSinkDuplicateIsSuccess(t *testing.T) {
	mock := &mockDynamo{putErr: &types.ConditionalCheckFailedException{}}
	sink := NewDynamoSink(mock, "hvac_leads", logging.Default())

	if err := sink.Record(context.Background(), testLead()); err != nil {
		t.Fatalf("duplicate write should be idempotent, got: %v", err)
	}
}

func TestDynamoSinkPropagatesErrors(t *testing.T) {
	mock := &mockDynamo{putErr: errors.New("throughput exceeded")}
	sink := NewDynamoSink(mock, "hvac_leads", logging.Default())

	err := sink.Record(context.Background(), testLead())
	if err == nil {
		t.Fatal("expected error from failed put")
	}
}

func TestDynamoSinkRejectsInvalidLead(t *testing.T) {
	mock := &mockDynamo{}
	sink := NewDynamoSink(mock, "hvac_leads", logging.Default())

	if err := sink.Record(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil lead")
	}
	if err := sink.Record(context.Background(), &Lead{}); err == nil {
		t.Fatal("expected error for missing session id")
	}
	if mock.calls != 0 {
		t.Fatalf("expected no PutItem calls, got %d", mock.calls)
	}
}
