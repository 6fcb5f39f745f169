package flappy

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// ErrNotFound is returned by a ScoreStore when a key has never been written.
var ErrNotFound = errors.New("flappy: key not found")

// ScoreStore is the key-value slot the simulation persists its high score in.
// Values are base-10 integer strings. Several simulations may share one store,
// so Set keeps the greater of the stored and new score and never lowers it.
type ScoreStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// parseHighScore decodes a stored high score from its leading integer, so
// "12.5" reads as 12 and "7px" as 7. Leading whitespace and a sign are
// allowed. No digits, a negative value or an overflow count as no prior
// high score.
func parseHighScore(raw string) int {
	s := strings.TrimLeft(raw, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// formatHighScore encodes a high score for storage.
func formatHighScore(n int) string {
	return strconv.Itoa(n)
}

// MemoryStore is an in-process ScoreStore. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value for key or ErrNotFound.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key unless the stored value is already at least
// as high.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	if old, ok := m.values[key]; ok && parseHighScore(old) >= parseHighScore(value) {
		return nil
	}
	m.values[key] = value
	return nil
}

// Writes returns how many times Set has been called.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
