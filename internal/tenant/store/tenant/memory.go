package tenant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tenantadmin/internal/tenant/models"
	id "tenantadmin/pkg/domain"
	"tenantadmin/pkg/platform/sentinel"
)

// ErrNotFound is returned when a tenant is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores tenants in memory. Used when no DATABASE_URL is configured.
type InMemory struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]*models.Tenant
	nameIdx map[string]id.TenantID
}

func NewInMemory() *InMemory {
	return &InMemory{
		tenants: make(map[id.TenantID]*models.Tenant),
		nameIdx: make(map[string]id.TenantID),
	}
}

// CreateIfNameAvailable atomically creates the tenant if the name is not already taken (case-insensitive).
func (s *InMemory) CreateIfNameAvailable(_ context.Context, t *models.Tenant) error {
	if t == nil {
		return fmt.Errorf("tenant is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lower := strings.ToLower(t.Name)
	if _, exists := s.nameIdx[lower]; exists {
		return fmt.Errorf("tenant name must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	s.tenants[t.ID] = t.Clone()
	s.nameIdx[lower] = t.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tenants[tenantID]; ok {
		return t.Clone(), nil
	}
	return nil, ErrNotFound
}

// List returns all tenants ordered by creation time, oldest first.
func (s *InMemory) List(_ context.Context) ([]*models.Tenant, error) {
	s.mu.RLock()
	out := make([]*models.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		out = append(out, t.Clone())
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces a stored tenant. A rename onto another tenant's name fails with ErrAlreadyUsed.
func (s *InMemory) Update(_ context.Context, t *models.Tenant) error {
	if t == nil {
		return fmt.Errorf("tenant is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.tenants[t.ID]
	if !ok {
		return ErrNotFound
	}
	oldLower := strings.ToLower(current.Name)
	newLower := strings.ToLower(t.Name)
	if newLower != oldLower {
		if _, taken := s.nameIdx[newLower]; taken {
			return fmt.Errorf("tenant name must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		delete(s.nameIdx, oldLower)
		s.nameIdx[newLower] = t.ID
	}
	s.tenants[t.ID] = t.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, tenantID id.TenantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return ErrNotFound
	}
	delete(s.nameIdx, strings.ToLower(t.Name))
	delete(s.tenants, tenantID)
	return nil
}
