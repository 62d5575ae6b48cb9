package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/mock-interview-client/internal/config"
	"github.com/samvad-hq/mock-interview-client/internal/domain"
	"github.com/samvad-hq/mock-interview-client/internal/logger"
	"github.com/samvad-hq/mock-interview-client/internal/storage"
	"github.com/samvad-hq/mock-interview-client/pkg/auth"
	"github.com/samvad-hq/mock-interview-client/pkg/httpclient"
	"github.com/samvad-hq/mock-interview-client/pkg/interview"
)

// Coach wires the backend clients to the local session store and runs
// multi-turn interviews: ask, answer, get feedback, ask again, save.
type Coach struct {
	auth       *auth.Client
	interviews *interview.Client
	log        logger.Logger
	now        func() time.Time

	// The session store is opened on first use so plain backend calls never
	// touch the local database.
	storeType string
	storePath string
	storeOpts storage.Options
	storeOnce sync.Once
	store     storage.Store
	storeErr  error
}

// Turn is the outcome of answering one question.
type Turn struct {
	Feedback json.RawMessage `json:"feedback"`
	Question string          `json:"question"`
}

// NewCoach builds a coach runtime from config.
func NewCoach(cfg *config.Config, log logger.Logger) (*Coach, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	hc := httpclient.NewRestyClient(httpclient.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
		Debug:   cfg.HTTPDebug,
		Logger:  log,
	})

	log.DebugObj("coach initialized", "coach_config", map[string]any{
		"base_url":            cfg.BaseURL,
		"request_timeout_ms":  cfg.RequestTimeout.Milliseconds(),
		"session_store":       cfg.SessionStore,
		"session_db_path":     cfg.SessionDBPath,
		"session_ttl_seconds": int(cfg.SessionTTL.Seconds()),
	})

	return &Coach{
		auth:       auth.NewClient(hc),
		interviews: interview.NewClient(hc),
		log:        log,
		now:        time.Now,
		storeType:  cfg.SessionStore,
		storePath:  cfg.SessionDBPath,
		storeOpts: storage.Options{
			SessionTTL:      cfg.SessionTTL,
			CleanupInterval: cfg.SessionCleanupInterval,
		},
	}, nil
}

// Auth exposes the auth client.
func (c *Coach) Auth() *auth.Client { return c.auth }

// Interviews exposes the interview client.
func (c *Coach) Interviews() *interview.Client { return c.interviews }

// StartSession asks the first question for jobTitle and stores a new session holding it.
func (c *Coach) StartSession(ctx context.Context, jobTitle string) (domain.Session, error) {
	jobTitle = strings.TrimSpace(jobTitle)
	store, err := c.sessionStore()
	if err != nil {
		return domain.Session{}, err
	}
	question, err := c.nextQuestion(ctx, interview.ChatHistory{}, jobTitle)
	if err != nil {
		return domain.Session{}, err
	}

	now := c.now().UTC()
	s := domain.Session{
		ID:          uuid.NewString(),
		JobTitle:    jobTitle,
		ChatHistory: interview.ChatHistory{{Role: interview.RoleAssistant, Content: question}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.PutSession(s); err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}
	c.log.InfoObj("session started", "session", map[string]any{
		"id":        s.ID,
		"job_title": s.JobTitle,
	})
	return s, nil
}

// Answer records answer, fetches feedback on it and asks the next question.
// The stored session only changes once both requests succeed.
func (c *Coach) Answer(ctx context.Context, id, answer string) (Turn, error) {
	store, err := c.sessionStore()
	if err != nil {
		return Turn{}, err
	}
	s, err := store.Session(id)
	if err != nil {
		return Turn{}, fmt.Errorf("load session %s: %w", id, err)
	}

	history := s.ChatHistory.Append(interview.Message{Role: interview.RoleUser, Content: answer})

	feedback, err := c.interviews.GetFeedback(ctx, history)
	if err != nil {
		return Turn{}, fmt.Errorf("request feedback: %w", err)
	}

	question, err := c.nextQuestion(ctx, history, s.JobTitle)
	if err != nil {
		return Turn{}, err
	}

	s.ChatHistory = history.Append(interview.Message{Role: interview.RoleAssistant, Content: question})
	s.UpdatedAt = c.now().UTC()
	if err := store.PutSession(s); err != nil {
		return Turn{}, fmt.Errorf("store session: %w", err)
	}
	c.log.InfoObj("session answered", "session", map[string]any{
		"id":    s.ID,
		"turns": len(s.ChatHistory),
	})
	return Turn{Feedback: feedback, Question: question}, nil
}

// FinishSession saves the session on the backend and removes the local copy.
func (c *Coach) FinishSession(ctx context.Context, id string) (json.RawMessage, error) {
	store, err := c.sessionStore()
	if err != nil {
		return nil, err
	}
	s, err := store.Session(id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	resp, err := c.interviews.SaveInterview(ctx, s.JobTitle, s.ChatHistory)
	if err != nil {
		return nil, fmt.Errorf("save interview: %w", err)
	}
	if err := store.DeleteSession(id); err != nil {
		return nil, fmt.Errorf("delete session: %w", err)
	}
	c.log.InfoObj("session finished", "session", map[string]any{
		"id":    s.ID,
		"turns": len(s.ChatHistory),
	})
	return resp, nil
}

// Session returns a stored session.
func (c *Coach) Session(id string) (domain.Session, error) {
	store, err := c.sessionStore()
	if err != nil {
		return domain.Session{}, err
	}
	return store.Session(id)
}

// Sessions lists stored sessions, most recently updated first.
func (c *Coach) Sessions() ([]domain.Session, error) {
	store, err := c.sessionStore()
	if err != nil {
		return nil, err
	}
	return store.Sessions()
}

// DiscardSession drops a local session without saving it.
func (c *Coach) DiscardSession(id string) error {
	store, err := c.sessionStore()
	if err != nil {
		return err
	}
	if _, err := store.Session(id); err != nil {
		return err
	}
	return store.DeleteSession(id)
}

// sessionStore opens the configured store once and returns it.
func (c *Coach) sessionStore() (storage.Store, error) {
	c.storeOnce.Do(func() {
		store, err := storage.NewStore(c.storeType, c.storePath, c.storeOpts)
		if err != nil {
			c.storeErr = fmt.Errorf("init storage: %w", err)
			return
		}
		c.store = store
	})
	return c.store, c.storeErr
}

// Close releases the session store if it was opened.
func (c *Coach) Close() error {
	if c == nil || c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		c.log.ErrorObj("storage close failed", "error", err)
		return err
	}
	return nil
}

func (c *Coach) nextQuestion(ctx context.Context, history interview.ChatHistory, jobTitle string) (string, error) {
	raw, err := c.interviews.GetInterviewQuestion(ctx, history, jobTitle)
	if err != nil {
		return "", fmt.Errorf("request question: %w", err)
	}
	var q interview.QuestionResponse
	if err := json.Unmarshal(raw, &q); err != nil {
		return "", fmt.Errorf("decode question: %w", err)
	}
	if strings.TrimSpace(q.Question) == "" {
		return "", errors.New("decode question: response has no question")
	}
	return q.Question, nil
}
