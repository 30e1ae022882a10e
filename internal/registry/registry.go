// Package registry tracks connected players and when they were last heard from.
// It is not safe for concurrent use; the hub owns it from a single goroutine.
package registry

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("player not found")

const DefaultName = "Trainer"

type Player struct {
	ID       string
	Name     string
	Team     string // opaque, relayed to the opponent verbatim
	GameID   string
	LastSeen time.Time
}

type Registry struct {
	players map[string]*Player
	now     func() time.Time
	newID   func() string
}

func New(now func() time.Time, newID func() string) *Registry {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Registry{
		players: make(map[string]*Player),
		now:     now,
		newID:   newID,
	}
}

func (r *Registry) Register(name, team string) *Player {
	if name == "" {
		name = DefaultName
	}
	p := &Player{
		ID:       r.newID(),
		Name:     name,
		Team:     team,
		LastSeen: r.now(),
	}
	r.players[p.ID] = p
	return p
}

// Touch marks the player as alive. ErrNotFound means the client has to rejoin.
func (r *Registry) Touch(id string) (*Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.LastSeen = r.now()
	return p, nil
}

func (r *Registry) Get(id string) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

func (r *Registry) Remove(id string) {
	delete(r.players, id)
}

func (r *Registry) Len() int { return len(r.players) }
