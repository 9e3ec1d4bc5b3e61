// Package session keeps screening conversations: the facts read from a resume and the
// turns exchanged about it.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/spigell/resume-screener/internal/dialogue"
	"github.com/spigell/resume-screener/internal/resume"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrExists    = errors.New("session already exists")
	ErrInvalidID = errors.New("invalid session id")
)

// Session is a screening conversation about one resume.
type Session struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Facts     *resume.Facts   `json:"facts"`
	Turns     []dialogue.Turn `json:"turns"`
}

// Store persists sessions. Implementations are safe for concurrent use.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	AppendTurns(ctx context.Context, id string, turns ...dialogue.Turn) error
}

// New starts an empty conversation about facts.
func New(id string, facts *resume.Facts, at time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: at,
		UpdatedAt: at,
		Facts:     facts,
		Turns:     []dialogue.Turn{},
	}
}

// AppendExchange records the user message followed by the agent reply and returns
// the two new turns.
func (s *Session) AppendExchange(userText, agentText string, at time.Time) []dialogue.Turn {
	exchange := []dialogue.Turn{
		{Sender: dialogue.SenderUser, Text: userText, Timestamp: at},
		{Sender: dialogue.SenderAgent, Text: agentText, Timestamp: at},
	}
	s.appendTurns(exchange...)
	return exchange
}

func (s *Session) appendTurns(turns ...dialogue.Turn) {
	s.Turns = append(s.Turns, turns...)
	for _, turn := range turns {
		if turn.Timestamp.After(s.UpdatedAt) {
			s.UpdatedAt = turn.Timestamp
		}
	}
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	out := *s
	out.Facts = s.Facts.Clone()
	out.Turns = make([]dialogue.Turn, len(s.Turns))
	copy(out.Turns, s.Turns)
	return &out
}

func validateID(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return ErrInvalidID
		}
	}
	return nil
}
