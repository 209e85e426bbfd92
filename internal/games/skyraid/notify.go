package skyraid

import (
	"sync"

	"github.com/vovakirdan/skyraid/internal/core"
)

const (
	maxNotifications = 4
	notificationLife = 180 // frames
)

// Notification is one line of the on-screen gift feed.
type Notification struct {
	Viewer  string
	Message string
	Color   core.Color
	Life    int
}

// Notifications is a short feed of viewer actions. Add may be called from
// any goroutine; Tick and Active run on the game loop.
type Notifications struct {
	mu    sync.Mutex
	items []Notification
}

// NewNotifications creates an empty feed.
func NewNotifications() *Notifications {
	return &Notifications{}
}

// Add appends a notification, dropping the oldest beyond the limit.
func (n *Notifications) Add(viewer, message string, color core.Color) {
	if viewer == "" {
		viewer = "???"
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notification{Viewer: viewer, Message: message, Color: color, Life: notificationLife})
	if over := len(n.items) - maxNotifications; over > 0 {
		n.items = append(n.items[:0], n.items[over:]...)
	}
}

// Tick ages every notification by one frame and drops expired ones.
func (n *Notifications) Tick() {
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.items[:0]
	for _, it := range n.items {
		it.Life--
		if it.Life > 0 {
			kept = append(kept, it)
		}
	}
	n.items = kept
}

// Active returns a copy of the live notifications, oldest first.
func (n *Notifications) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Clear drops every notification.
func (n *Notifications) Clear() {
	n.mu.Lock()
	n.items = nil
	n.mu.Unlock()
}
