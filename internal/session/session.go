// Package session tracks connected players across the SSH and web servers
// and provides the latest-wins outbox used to stream frames to them.
package session

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ID uniquely identifies a connected player.
type ID string

// Transport names the surface a player connected through.
type Transport string

const (
	TransportSSH Transport = "ssh"
	TransportWeb Transport = "web"
)

// Info describes one live session.
type Info struct {
	ID        ID
	Transport Transport
	User      string
	Remote    string
	StartedAt time.Time
}

// NewID returns a short random session identifier.
func NewID() ID {
	b := make([]byte, 5) // 5 bytes = 40 bits, base32 encodes to exactly 8 chars
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp-based
		return ID(fmt.Sprintf("%08X", time.Now().UnixNano()&0xFFFFFFFF))
	}
	return ID(strings.ToUpper(base32.StdEncoding.EncodeToString(b)))
}

// Registry tracks live sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ID]Info
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[ID]Info),
	}
}

// Register adds a session and returns the number of live sessions.
// A zero StartedAt is set to now.
func (r *Registry) Register(info Info) int {
	if info.StartedAt.IsZero() {
		info.StartedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[info.ID] = info
	return len(r.sessions)
}

// Unregister removes a session and returns the number still live.
func (r *Registry) Unregister(id ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return len(r.sessions)
}

// Get retrieves a session by ID.
func (r *Registry) Get(id ID) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns the live sessions, oldest first.
func (r *Registry) List() []Info {
	r.mu.RLock()
	list := make([]Info, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].StartedAt.Equal(list[j].StartedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartedAt.Before(list[j].StartedAt)
	})
	return list
}
