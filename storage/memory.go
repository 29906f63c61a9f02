package storage

import (
	"context"
	"sync"
)

// Memory is an in-memory implementation of KV. Contents are lost on exit.
type Memory struct {
	data map[string]string
	lock sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]string),
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}

	return value, nil
}

func (m *Memory) Put(_ context.Context, key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.data[key] = value

	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.data, key)

	return nil
}

func (m *Memory) Close() error {
	return nil
}
