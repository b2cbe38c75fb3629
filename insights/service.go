// ABOUTME: Audit orchestration over a Model with a single in-flight guard
// ABOUTME: Turns replies into AuditReports or one retryable AuditError
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/harperreed/kinetic/models"
)

var (
	ErrNoContacts      = errors.New("No contacts found to analyze.")
	ErrInvalidPeriod   = errors.New("invalid review period")
	ErrAuditInProgress = errors.New("an audit is already running")
	ErrNoModel         = errors.New("no AI model configured (set GEMINI_API_KEY)")
)

// AuditError is the user-facing failure of a model call. Every cause
// (transport, empty reply, bad JSON, schema violation) collapses into it.
type AuditError struct {
	Message string
	Err     error
}

func (e *AuditError) Error() string {
	return e.Message
}

func (e *AuditError) Unwrap() error {
	return e.Err
}

// Retryable is always true: the user may simply run the audit again.
func (e *AuditError) Retryable() bool {
	return true
}

// Service runs audits one at a time and remembers the latest report.
type Service struct {
	model   Model
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	running bool
	latest  *models.AuditReport
}

// NewService wraps a model. A nil model makes every audit fail with
// ErrNoModel; a zero timeout leaves the caller's context in charge.
func NewService(model Model, logger *zap.Logger, timeout time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		model:   model,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// SetClock overrides the report timestamp source.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Running reports whether an audit is in flight; surfaces use it to
// disable the run control.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Latest returns the most recent successful report, or nil.
func (s *Service) Latest() *models.AuditReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return nil
	}
	return s.latest.Clone()
}

// Audit analyzes contacts over a review period.
func (s *Service) Audit(ctx context.Context, contacts []models.Contact, period models.ReviewPeriod) (*models.AuditReport, error) {
	if len(contacts) == 0 {
		return nil, ErrNoContacts
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	if s.model == nil {
		return nil, ErrNoModel
	}

	if !s.begin() {
		return nil, ErrAuditInProgress
	}
	defer s.end()

	prompt, err := BuildPrompt(contacts, period)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Info("audit started",
		zap.String("period", string(period)),
		zap.Int("contacts", len(contacts)),
		zap.Int("prompt_bytes", len(prompt)))

	text, err := s.model.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("audit model call failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, &AuditError{Message: failureMessage(err), Err: err}
	}

	insight, err := ParseReply(text)
	if err != nil {
		s.logger.Warn("audit reply rejected", zap.Error(err))
		return nil, &AuditError{Message: failureMessage(err), Err: err}
	}

	s.mu.Lock()
	now := s.now()
	s.mu.Unlock()

	report := &models.AuditReport{
		ID:           newReportID(now),
		Period:       period,
		GeneratedAt:  now.UTC(),
		ContactCount: len(contacts),
		Insight:      *insight,
	}

	s.mu.Lock()
	s.latest = report.Clone()
	s.mu.Unlock()

	s.logger.Info("audit completed",
		zap.String("report_id", report.ID),
		zap.Duration("elapsed", time.Since(start)))

	return report, nil
}

func (s *Service) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Service) end() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

func failureMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return "Unknown API error during audit."
	}
	return msg
}

// ParseReply strips markdown fences, validates the reply against the
// response schema and decodes it.
func ParseReply(text string) (*models.Insight, error) {
	text = StripCodeFence(text)
	if text == "" {
		return nil, errors.New("Empty response from AI")
	}
	if err := ValidateReply(text); err != nil {
		return nil, err
	}

	var insight models.Insight
	if err := json.Unmarshal([]byte(text), &insight); err != nil {
		return nil, fmt.Errorf("failed to decode reply: %w", err)
	}
	insight.Normalize()
	return &insight, nil
}

// StripCodeFence removes a surrounding ```json ... ``` block if present.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func newReportID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
