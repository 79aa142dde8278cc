package service

import (
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/models"
)

// DefaultNotificationBuffer is the number of notifications kept for a slow
// consumer before new ones are dropped.
const DefaultNotificationBuffer = 16

// Notifier delivers user-facing notices without ever blocking the sender.
// A nil *Notifier drops everything.
type Notifier struct {
	ch      chan models.Notification
	now     func() time.Time
	dropped atomic.Int64

	logger *logger.Logger
}

// NewNotifier returns a Notifier holding up to buffer undelivered notices.
func NewNotifier(buffer int, log *logger.Logger) *Notifier {
	if buffer < 1 {
		buffer = DefaultNotificationBuffer
	}
	return &Notifier{
		ch:     make(chan models.Notification, buffer),
		now:    time.Now,
		logger: log.WithComponent("notifier"),
	}
}

// Notify queues a notice or drops it when the buffer is full.
func (n *Notifier) Notify(level models.NotificationLevel, message string) {
	if n == nil {
		return
	}

	select {
	case n.ch <- models.Notification{Level: level, Message: message, At: n.now()}:
	default:
		n.dropped.Add(1)
		n.logger.Debug().Str("level", string(level)).Str("message", message).Msg("notification dropped")
	}
}

// C returns the delivery channel. It is never closed.
func (n *Notifier) C() <-chan models.Notification {
	return n.ch
}

// Drain returns every queued notice without waiting.
func (n *Notifier) Drain() []models.Notification {
	var out []models.Notification
	for {
		select {
		case note := <-n.ch:
			out = append(out, note)
		default:
			return out
		}
	}
}

// Dropped returns how many notices were discarded.
func (n *Notifier) Dropped() int64 {
	return n.dropped.Load()
}
