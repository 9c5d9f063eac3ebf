package app

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"

	"github.com/govindalabs/dairypos/internal/pos"
)

// Notification is a transient user-facing message. Only the latest one is
// kept; each new notification simply overwrites the previous text, which is
// also how the on-screen toast behaves.
type Notification struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Notifier holds the latest transient notification and feeds it from the
// event bus. It is not an error log; nothing is persisted.
type Notifier struct {
	mu     sync.RWMutex
	latest Notification
}

func NewNotifier(bus EventBus.Bus) *Notifier {
	n := &Notifier{}
	_ = bus.Subscribe(pos.TopicBillCreated, func(invoiceNo string, total float64) {
		n.Set("Invoice created: " + invoiceNo)
	})
	return n
}

func (n *Notifier) Set(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.latest = Notification{Text: text, At: time.Now()}
}

func (n *Notifier) Latest() Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.latest
}
