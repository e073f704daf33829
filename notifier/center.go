package notifier

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Center is the in-memory notification inbox. Newest entries first; the
// unread count stays consistent with the read flags across every operation.
type Center struct {
	mu            sync.Mutex
	notifications []Notification
	unread        int
	log           *zap.Logger
}

// NewCenter creates an empty inbox.
func NewCenter(log *zap.Logger) *Center {
	if log == nil {
		log = zap.NewNop()
	}
	return &Center{log: log}
}

// Run consumes events from the channel until it closes or ctx is cancelled.
// Malformed events are logged and skipped, matching the consumer loop on the
// transport side.
func (c *Center) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			n, err := Map(e)
			if err != nil {
				c.log.Warn("dropping event", zap.String("kind", string(e.Kind)), zap.Error(err))
				continue
			}
			c.Add(n)
		}
	}
}

// Add prepends a notification and bumps the unread count.
func (c *Center) Add(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append([]Notification{n}, c.notifications...)
	if !n.Read {
		c.unread++
	}
}

// MarkRead flags one notification as read. Already-read entries are left
// alone so the unread count never goes negative.
func (c *Center) MarkRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID == id && !c.notifications[i].Read {
			c.notifications[i].Read = true
			c.unread--
			return
		}
	}
}

// MarkAllRead flags everything as read.
func (c *Center) MarkAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		c.notifications[i].Read = true
	}
	c.unread = 0
}

// Remove deletes a notification, adjusting the unread count if it was unread.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			if !c.notifications[i].Read {
				c.unread--
			}
			c.notifications = append(c.notifications[:i], c.notifications[i+1:]...)
			return
		}
	}
}

// Clear empties the inbox.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = nil
	c.unread = 0
}

// All returns a copy of the notifications, newest first.
func (c *Center) All() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// Unread returns the count of unread notifications.
func (c *Center) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}
