package flappy

import (
	"errors"
	"sync"
	"testing"
)

func TestParseHighScore(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"0", 0},
		{"42", 42},
		{"007", 7},
		{"", 0},
		{"abc", 0},
		{"12abc", 12},
		{"3.5", 3},
		{"12.5", 12},
		{"7px", 7},
		{"  9", 9},
		{"+4", 4},
		{"-", 0},
		{"-1", 0},
		{"99999999999999999999999", 0},
	}

	for _, tc := range tests {
		if got := parseHighScore(tc.raw); got != tc.expected {
			t.Errorf("parseHighScore(%q) = %d, expected %d", tc.raw, got, tc.expected)
		}
	}
}

func TestFormatHighScore(t *testing.T) {
	if got := formatHighScore(128); got != "128" {
		t.Errorf("formatHighScore(128) = %q, expected \"128\"", got)
	}
	if got := parseHighScore(formatHighScore(99)); got != 99 {
		t.Errorf("round trip = %d, expected 99", got)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	if _, err := m.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, expected ErrNotFound", err)
	}

	if err := m.Set("k", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := m.Set("k", "2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, err := m.Get("k")
	if err != nil || v != "2" {
		t.Errorf("Get(k) = %q, %v; expected \"2\", nil", v, err)
	}
	if m.Writes() != 2 {
		t.Errorf("Writes() = %d, expected 2", m.Writes())
	}
}

func TestMemoryStoreKeepsHigherScore(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		value    string
		expected string
	}{
		{"higher replaces", "5", "8", "8"},
		{"lower is ignored", "5", "2", "5"},
		{"tie is ignored", "5", "5", "5"},
		{"corrupt is replaced", "abc", "3", "3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMemoryStore()
			m.Set("k", tc.stored)
			if err := m.Set("k", tc.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if v, _ := m.Get("k"); v != tc.expected {
				t.Errorf("Get(k) = %q, expected %q", v, tc.expected)
			}
		})
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	m := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.Set("k", formatHighScore(n))
			m.Get("k")
		}(i)
	}
	wg.Wait()

	if m.Writes() != 50 {
		t.Errorf("Writes() = %d, expected 50", m.Writes())
	}
	if v, _ := m.Get("k"); v != "49" {
		t.Errorf("Get(k) = %q, expected the highest write \"49\"", v)
	}
}
