// Package events publishes lifecycle notifications to NATS. Publishing is
// fire-and-forget: a nil or disconnected publisher never fails a request.
package events

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
)

const (
	UserRegisteredTopic = "workshop.users.registered"
	ScriptCreatedTopic  = "workshop.scripts.created"
	ScriptDeletedTopic  = "workshop.scripts.deleted"
)

// Publisher wraps a NATS connection. The zero value (or nil) is a no-op.
type Publisher struct {
	conn *nats.Conn
}

// Connect dials the NATS endpoint. An empty URL disables publishing.
func Connect(url string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: nc}, nil
}

// Close drains the underlying connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

// PublishJSON encodes payload and publishes it to subject. Failures are
// dropped on the floor; events are advisory, never load-bearing.
func (p *Publisher) PublishJSON(subject string, payload map[string]any) {
	if p == nil || p.conn == nil || subject == "" {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = p.conn.Publish(subject, data)
}
