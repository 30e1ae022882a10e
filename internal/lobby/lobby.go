package lobby

import (
	"time"

	"github.com/DoyleJ11/battle-relay/internal/registry"
)

const DefaultLiveness = 5000 * time.Millisecond

// Roster is the slice of the registry the queue needs to judge and evict waiters.
type Roster interface {
	Get(id string) (*registry.Player, bool)
	Remove(id string)
}

// Queue is the matchmaking FIFO. Newest joiner is paired with the oldest waiter
// that is still polling; anything dead at the head is evicted on the way.
// Not safe for concurrent use.
type Queue struct {
	waiting  []string
	liveness time.Duration
}

func NewQueue(liveness time.Duration) *Queue {
	if liveness <= 0 {
		liveness = DefaultLiveness
	}
	return &Queue{liveness: liveness}
}

func (q *Queue) Enqueue(playerID string) {
	q.waiting = append(q.waiting, playerID)
}

// TryMatch pops the first live waiter. Stale or unknown heads are dropped and
// deregistered; the scan stops at the first live head. When nothing is left the
// caller should Enqueue the joiner instead.
func (q *Queue) TryMatch(roster Roster, now time.Time) (opponentID string, evicted []string, ok bool) {
	for len(q.waiting) > 0 {
		head := q.waiting[0]
		p, found := roster.Get(head)
		if found && now.Sub(p.LastSeen) <= q.liveness {
			q.waiting = q.waiting[1:]
			return head, evicted, true
		}
		// Waiter stopped polling (or left). Drop it.
		roster.Remove(head)
		q.waiting = q.waiting[1:]
		evicted = append(evicted, head)
	}
	return "", evicted, false
}

func (q *Queue) Len() int { return len(q.waiting) }

// Snapshot copies the waiting ids, head first.
func (q *Queue) Snapshot() []string {
	out := make([]string, len(q.waiting))
	copy(out, q.waiting)
	return out
}

func (q *Queue) Liveness() time.Duration { return q.liveness }
