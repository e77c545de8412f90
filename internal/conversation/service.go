package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DebasishDas1/HVAC-Lead/pkg/logging"
)

// ChatResult is what a completed turn returns to the transport layer.
type ChatResult struct {
	Response  string `json:"response"`
	Qualified bool   `json:"qualified"`
}

// Service owns the request lifecycle for one inbound chat message: session
// lookup, short-circuit for qualified sessions, workflow execution, and the
// store round-trip. Access is serialized per session id so two concurrent
// requests for the same session cannot race on read-modify-write.
type Service struct {
	store    Store
	workflow *Workflow
	logger   *logging.Logger
	timeout  time.Duration

	locks sync.Map // session id -> *sync.Mutex
}

// NewService creates a conversation service. A timeout of zero disables the
// per-turn deadline.
func NewService(store Store, workflow *Workflow, timeout time.Duration, logger *logging.Logger) *Service {
	if store == nil {
		panic("conversation: session store cannot be nil")
	}
	if workflow == nil {
		panic("conversation: workflow cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:    store,
		workflow: workflow,
		logger:   logger,
		timeout:  timeout,
	}
}

// HandleMessage processes one user message for a session and returns the
// assistant response. A failed turn leaves the stored state untouched.
func (s *Service) HandleMessage(ctx context.Context, sessionID string, user UserInfo, message string) (*ChatResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("conversation: session id is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("conversation: message is required")
	}

	// One in-flight workflow per session. This only serializes within the
	// process; a multi-process deployment sharing a Redis store would need a
	// distributed lock instead.
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("conversation: load session: %w", err)
		}
		state = NewState(sessionID, user)
	}

	// The qualification flag is frozen per session: once a lead is recorded
	// the workflow never re-enters.
	if state.Qualified {
		return &ChatResult{Response: ClosingNotice, Qualified: true}, nil
	}

	state.AppendUser(message)

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.workflow.Run(runCtx, state); err != nil {
		s.logger.Error("workflow run failed", "session_id", sessionID, "error", err)
		return nil, err
	}

	if err := s.store.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("conversation: persist session: %w", err)
	}

	return &ChatResult{Response: state.AIResponse, Qualified: state.Qualified}, nil
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
