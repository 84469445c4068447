package faq

import (
	"encoding/json"
	"fmt"
	"os"
)

// Store exposes intent retrieval for the matcher and HTTP handlers. The
// store is loaded once at startup and never mutated afterwards.
type Store interface {
	List() []Intent
	FindByID(id int) (Intent, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Intent
}

// NewMemoryStore validates the supplied intents and returns a MemoryStore
// preserving their order. Duplicate ids and intents without example
// questions are rejected.
func NewMemoryStore(items []Intent) (*MemoryStore, error) {
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("duplicate intent id %d", item.ID)
		}
		seen[item.ID] = struct{}{}
		if len(item.Questions) == 0 {
			return nil, fmt.Errorf("intent %d has no example questions", item.ID)
		}
		if item.Answer == "" {
			return nil, fmt.Errorf("intent %d has no answer", item.ID)
		}
	}
	return &MemoryStore{items: append([]Intent(nil), items...)}, nil
}

// List returns the intents in store order.
func (s *MemoryStore) List() []Intent {
	return append([]Intent(nil), s.items...)
}

// FindByID looks up an intent by identifier.
func (s *MemoryStore) FindByID(id int) (Intent, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Intent{}, false
}

type document struct {
	Intents []Intent `json:"intents"`
}

// LoadFile reads intents from a JSON document of shape
// {"intents": [{"id": 1, "questions": [...], "answer": "..."}]}.
func LoadFile(path string) ([]Intent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read faq file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse faq file %s: %w", path, err)
	}
	if len(doc.Intents) == 0 {
		return nil, fmt.Errorf("faq file %s contains no intents", path)
	}
	return doc.Intents, nil
}
