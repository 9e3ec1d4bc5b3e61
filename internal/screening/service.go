// Package screening ties resume reading, the dialogue cascade and session storage together.
package screening

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/dialogue"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/session"
)

var (
	ErrEmptyMessage = errors.New("message must not be empty")
	ErrNoDecoder    = errors.New("document decoder is not configured")
)

type decoder interface {
	Decode(ctx context.Context, path string) (string, error)
}

// Service runs screening conversations.
type Service struct {
	store      session.Store
	decoder    decoder
	extractor  ai.Extractor
	vocabulary resume.Vocabulary
	cascade    dialogue.Cascade
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
	locks      *keyedMutex
}

type Option func(*Service)

func WithDecoder(d decoder) Option {
	return func(s *Service) { s.decoder = d }
}

// WithExtractor enables model-assisted extraction on top of the vocabulary scan.
func WithExtractor(e ai.Extractor) Option {
	return func(s *Service) { s.extractor = e }
}

func WithVocabulary(v resume.Vocabulary) Option {
	return func(s *Service) { s.vocabulary = v }
}

func WithCascade(c dialogue.Cascade) Option {
	return func(s *Service) { s.cascade = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func New(store session.Store, options ...Option) *Service {
	s := &Service{
		store:      store,
		vocabulary: resume.DefaultVocabulary(),
		cascade:    dialogue.DefaultCascade(),
		logger:     zap.NewNop(),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
		locks:      newKeyedMutex(),
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Ingest decodes the file at path and starts a session about it.
func (s *Service) Ingest(ctx context.Context, path string) (*session.Session, error) {
	if s.decoder == nil {
		return nil, ErrNoDecoder
	}

	text, err := s.decoder.Decode(ctx, path)
	if err != nil {
		return nil, err
	}

	return s.IngestText(ctx, path, text)
}

// IngestText reads facts out of text and starts a session about them.
// source names the document in errors and logs.
func (s *Service) IngestText(ctx context.Context, source, text string) (*session.Session, error) {
	facts, err := s.readFacts(ctx, source, text)
	if err != nil {
		return nil, err
	}

	sess := session.New(s.newID(), facts, s.now())
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	log := logger.WithSession(s.logger, sess.ID)
	log.Info("resume ingested",
		zap.String("source", source),
		zap.String("candidate", facts.CandidateName),
		zap.Int("skills", len(facts.Skills)),
		zap.Int("experience", len(facts.Experience)),
		zap.Int("education", len(facts.Education)),
	)
	if !facts.HasSkills() {
		log.Info("no skills detected", zap.String("source", source))
	}

	return sess, nil
}

func (s *Service) readFacts(ctx context.Context, source, text string) (*resume.Facts, error) {
	scanned, err := resume.Extract(text, s.vocabulary)
	if err != nil {
		var emptyErr *resume.EmptyDocumentError
		if errors.As(err, &emptyErr) {
			emptyErr.Source = source
		}
		return nil, err
	}

	if s.extractor == nil {
		return scanned, nil
	}

	assisted, err := s.extractor.ExtractFacts(ctx, text)
	if err != nil {
		s.logger.Warn("ai extraction failed, keeping scanned facts",
			zap.String("source", source),
			zap.Error(err),
		)
		return scanned, nil
	}

	return resume.Merge(assisted, scanned), nil
}

// Reply answers message within the session. Replies of one session are produced in arrival order.
func (s *Service) Reply(ctx context.Context, id, message string) (dialogue.Decision, error) {
	if strings.TrimSpace(message) == "" {
		return dialogue.Decision{}, ErrEmptyMessage
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return dialogue.Decision{}, err
	}

	decision := s.cascade.Select(sess.Facts, sess.Turns, message)
	turns := sess.AppendExchange(message, decision.Reply, s.now())

	if err := s.store.AppendTurns(ctx, id, turns...); err != nil {
		return dialogue.Decision{}, fmt.Errorf("store turns: %w", err)
	}

	s.logger.Info("reply selected",
		append(logger.SessionFields(id, decision.Rule), zap.Int("turns", len(sess.Turns)))...,
	)

	return decision, nil
}

// Facts returns the facts of the session.
func (s *Service) Facts(ctx context.Context, id string) (*resume.Facts, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.Facts, nil
}

// Session returns the whole session.
func (s *Service) Session(ctx context.Context, id string) (*session.Session, error) {
	return s.store.Get(ctx, id)
}

// Rules lists the cascade in priority order.
func (s *Service) Rules() []dialogue.Status {
	return s.cascade.Describe()
}
