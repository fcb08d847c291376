// Package events publishes ledger changes on NATS.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "grocery.ledger"

// Event describes one applied ledger operation.
type Event struct {
	Kind     string    `json:"kind"`
	Quantity float64   `json:"quantity,omitempty"`
	Unit     string    `json:"unit,omitempty"`
	Item     string    `json:"item,omitempty"`
	Target   string    `json:"target,omitempty"`
	Affected int       `json:"affected"`
	At       time.Time `json:"at"`
}

type natsPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

type Config struct {
	URL     string
	Subject string
	Logger  *slog.Logger
}

// Connect dials the NATS server at cfg.URL.
func Connect(cfg *Config) (Publisher, error) {
	if cfg == nil {
		return nil, errors.New("missing parameter: cfg")
	}

	if cfg.URL == "" {
		return nil, errors.New("missing parameter: cfg.URL")
	}

	subject := cfg.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("grocery-voice-ledger"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", slog.String("error", err.Error()))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &natsPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}, nil
}

func (p *natsPublisher) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subject+"."+event.Kind, data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}

func (p *natsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("NATS drain failed", slog.String("error", err.Error()))
		p.conn.Close()
	}
}

type nopPublisher struct{}

// Nop returns a publisher that drops every event.
func Nop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

func (nopPublisher) Close() {}
