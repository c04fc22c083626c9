package cache

import (
	"context"

	"bulkdate/internal/platform/bus"
	"bulkdate/internal/platform/logger"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Event is the wire form of an invalidation shared between replicas
type Event struct {
	Origin string `json:"origin"`
	Op     string `json:"op"`
	Key    string `json:"key,omitempty"`
}

const (
	opInvalidate = "invalidate"
	opFlush      = "flush"
)

// Broadcast forwards Invalidate and Flush to other replicas over a bus
// and applies theirs locally; reads and writes stay local
type Broadcast struct {
	Cache
	bus     bus.Bus
	subject string
	origin  string
	log     logger.Logger
}

// NewBroadcast wraps inner; call Listen to receive remote events
func NewBroadcast(inner Cache, b bus.Bus, subject string, log logger.Logger) *Broadcast {
	return &Broadcast{Cache: inner, bus: b, subject: subject, origin: uuid.NewString(), log: log}
}

// Invalidate drops key here and on every replica
func (c *Broadcast) Invalidate(key string) {
	c.Cache.Invalidate(key)
	c.publish(Event{Op: opInvalidate, Key: key})
}

// Flush clears this cache and every replica's
func (c *Broadcast) Flush() {
	c.Cache.Flush()
	c.publish(Event{Op: opFlush})
}

// publish never fails the caller; cache fan-out is best effort
func (c *Broadcast) publish(ev Event) {
	ev.Origin = c.origin
	if err := c.bus.Publish(context.Background(), c.subject, ev); err != nil {
		c.log.Warn().Err(err).Str("op", ev.Op).Str("key", ev.Key).Msg("cache broadcast failed")
	}
}

// Listen applies invalidations published by other replicas
func (c *Broadcast) Listen() (stop func() error, err error) {
	return c.bus.Subscribe(c.subject, func(data []byte) {
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.log.Warn().Err(err).Msg("bad cache event")
			return
		}
		if ev.Origin == c.origin {
			return
		}
		switch ev.Op {
		case opInvalidate:
			c.Cache.Invalidate(ev.Key)
		case opFlush:
			c.Cache.Flush()
		}
	})
}
