package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/DebasishDas1/HVAC-Lead/internal/leads"
	"github.com/DebasishDas1/HVAC-Lead/internal/observability/metrics"
	"github.com/DebasishDas1/HVAC-Lead/pkg/logging"
)

// node identifies a state in the qualification workflow.
type node int

const (
	nodeChat node = iota
	nodeSave
	nodeEnd
)

// Workflow drives one turn of conversation to completion: the chat node
// always runs, the router inspects the qualification flag, and the save node
// records the lead before the run terminates.
type Workflow struct {
	responder *Responder
	sink      leads.Sink
	logger    *logging.Logger
	metrics   *metrics.ChatMetrics
	now       func() time.Time
}

// NewWorkflow creates a qualification workflow. metrics may be nil.
func NewWorkflow(responder *Responder, sink leads.Sink, logger *logging.Logger, m *metrics.ChatMetrics) *Workflow {
	if responder == nil {
		panic("conversation: responder cannot be nil")
	}
	if sink == nil {
		panic("conversation: lead sink cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Workflow{
		responder: responder,
		sink:      sink,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// Run executes the workflow on the given state, mutating it in place.
// Callers must not re-run an already-qualified session; the service layer
// short-circuits those before reaching here.
func (w *Workflow) Run(ctx context.Context, state *State) error {
	for current := nodeChat; current != nodeEnd; {
		switch current {
		case nodeChat:
			if err := w.chat(ctx, state); err != nil {
				return err
			}
			current = w.route(state)
		case nodeSave:
			if err := w.saveLead(ctx, state); err != nil {
				return err
			}
			current = nodeEnd
		}
	}
	return nil
}

// chat invokes the structured responder and writes its decision into state.
func (w *Workflow) chat(ctx context.Context, state *State) error {
	started := w.now()
	decision, err := w.responder.Respond(ctx, state.User.Name, state.Messages)
	elapsed := w.now().Sub(started).Seconds()
	if err != nil {
		w.metrics.ObserveLLMLatency("error", elapsed)
		return fmt.Errorf("conversation: chat node failed: %w", err)
	}
	w.metrics.ObserveLLMLatency("ok", elapsed)

	state.AIResponse = decision.Response
	state.Qualified = decision.Qualified
	state.ServiceType = decision.ServiceType
	state.Urgency = decision.Urgency
	state.AppendAssistant(decision.Response)

	w.metrics.ObserveTurn(decision.Qualified)
	return nil
}

// route is the pure decision between saving the lead and ending the turn.
func (w *Workflow) route(state *State) node {
	if state.Qualified {
		return nodeSave
	}
	return nodeEnd
}

// saveLead builds the lead from the full transcript, including the assistant
// turn the chat node just appended, and hands it to the sink. Sink failure
// fails the turn; the closing notice is only appended after a successful
// handoff.
func (w *Workflow) saveLead(ctx context.Context, state *State) error {
	lead := leads.New(leads.Params{
		SessionID:   state.SessionID,
		Name:        state.User.Name,
		Email:       state.User.Email,
		Phone:       state.User.Phone,
		Transcript:  state.Transcript(),
		ServiceType: state.ServiceType,
		Urgency:     state.Urgency,
		Timestamp:   w.now().UTC(),
	})

	if err := w.sink.Record(ctx, lead); err != nil {
		w.metrics.ObserveLeadSave("error")
		return fmt.Errorf("conversation: save node failed: %w", err)
	}
	w.metrics.ObserveLeadSave("ok")

	w.logger.Info("lead recorded",
		"session_id", state.SessionID,
		"lead_id", lead.ID,
		"service_type", lead.ServiceType,
		"urgency", lead.Urgency,
	)

	state.AIResponse = state.AIResponse + "\n\n" + ClosingNotice
	return nil
}
