// Package notify announces board recomputes to interested consumers.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/okian/kaizolist/pkg/metrics"
)

// BoardRecomputed is the event type published after every successful reload.
const BoardRecomputed = "board.recomputed"

// ErrClosed is returned when publishing on a closed notifier.
var ErrClosed = errors.New("notifier closed")

// Event describes a freshly built board.
type Event struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	Players    int       `json:"players"`
	Entries    int       `json:"entries"`
	Leader     string    `json:"leader,omitempty"`
	LeaderPLP  float64   `json:"leader_plp,omitempty"`
	Skipped    int       `json:"skipped"`
	Duplicates int       `json:"duplicates"`
	BuiltAt    time.Time `json:"built_at"`
}

// Notifier publishes board events.
type Notifier interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Noop drops every event.
type Noop struct{}

// Publish implements Notifier.
func (Noop) Publish(context.Context, Event) error { return nil }

// Close implements Notifier.
func (Noop) Close() error { return nil }

type conn interface {
	Publish(subj string, data []byte) error
	Close()
}

// NATSNotifier publishes events as JSON on a core NATS subject.
type NATSNotifier struct {
	mu      sync.Mutex
	nc      conn
	subject string
	closed  bool
}

// NewNATSNotifier connects to url and publishes on subject.
func NewNATSNotifier(url, subject string) (*NATSNotifier, error) {
	nc, err := nats.Connect(url, nats.Name("kaizolist"), nats.Timeout(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return newNATSNotifier(nc, subject), nil
}

func newNATSNotifier(nc conn, subject string) *NATSNotifier {
	return &NATSNotifier{nc: nc, subject: subject}
}

// Publish implements Notifier.
func (n *NATSNotifier) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return ErrClosed
	}
	if err := n.nc.Publish(n.subject, data); err != nil {
		metrics.RecordErrorByComponent("notify", "publish")
		return fmt.Errorf("publish %s: %w", n.subject, err)
	}
	metrics.RecordNotificationPublished()
	return nil
}

// Close implements Notifier. It is safe to call more than once.
func (n *NATSNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.closed {
		n.closed = true
		n.nc.Close()
	}
	return nil
}
