package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Store. Contents are lost on Close.
//
// FailGet, FailSet and FailClear inject errors for the named key, which is
// how callers exercise their storage-failure paths.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
	regs []Registration

	FailGet   map[string]error
	FailSet   map[string]error
	FailClear map[string]error
}

func NewMemory() *Memory {
	return &Memory{
		data:      map[string][]byte{},
		FailGet:   map[string]error{},
		FailSet:   map[string]error{},
		FailClear: map[string]error{},
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.FailGet[key]; err != nil {
		return nil, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.FailSet[key]; err != nil {
		return err
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Clear(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.FailClear[key]; err != nil {
		return err
	}
	delete(m.data, key)
	return nil
}

// SetBatch applies all entries or none.
func (m *Memory) SetBatch(ctx context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		if err := m.FailSet[e.Key]; err != nil {
			return fmt.Errorf("batch %s: %w", e.Key, err)
		}
	}
	for _, e := range entries {
		m.data[e.Key] = append([]byte(nil), e.Value...)
	}
	return nil
}

func (m *Memory) RecordRegistration(ctx context.Context, r Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs = append(m.regs, r)
	return nil
}

func (m *Memory) ListRegistrations(ctx context.Context) ([]Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Registration(nil), m.regs...), nil
}

func (m *Memory) ClearRegistrations(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs = nil
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	m.regs = nil
	return nil
}
