//go:build integration

// Package containers starts testcontainers fixtures for integration-tagged
// tests. Each fixture starts at most once per test binary and is shared by
// every suite; Ryuk reaps it when the binary exits.
package containers

import (
	"sync"
	"testing"
)

// Manager hands out the shared fixtures.
type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	kafka    *KafkaContainer
}

var manager = &Manager{}

func GetManager() *Manager {
	return manager
}

// GetPostgres returns the migrated PostgreSQL fixture.
func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.postgres == nil {
		m.postgres = NewPostgresContainer(t)
	}
	return m.postgres
}

// GetKafka returns the Redpanda broker used by the audit publisher tests.
func (m *Manager) GetKafka(t *testing.T) *KafkaContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.kafka == nil {
		m.kafka = NewKafkaContainer(t)
	}
	return m.kafka
}
