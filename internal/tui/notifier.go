package tui

import (
	"sync"

	"github.com/sadopc/gameline/internal/achievement"
)

// Notifier queues achievement unlocks until the footer shows them, one at
// a time, in the order they were unlocked.
type Notifier struct {
	mu    sync.Mutex
	queue []achievement.Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(note achievement.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, note)
}

// Next pops the oldest pending notification.
func (n *Notifier) Next() (achievement.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.queue) == 0 {
		return achievement.Notification{}, false
	}
	note := n.queue[0]
	n.queue = n.queue[1:]
	return note, true
}

func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.queue)
}
