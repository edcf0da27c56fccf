package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenantadmin/internal/tenant/models"
	id "tenantadmin/pkg/domain"
	"tenantadmin/pkg/platform/sentinel"
	"tenantadmin/pkg/testutil"
)

func newTenant(name string, createdAt time.Time) *models.Tenant {
	return &models.Tenant{
		ID:            id.NewTenantID(),
		Name:          name,
		Status:        models.TenantStatusActive,
		Params:        map[string]any{},
		ProgramImages: []string{},
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestCreateIfNameAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("stores tenant", func(t *testing.T) {
		store := NewInMemory()
		tenant := newTenant("Test Tenant", time.Now())
		require.NoError(t, store.CreateIfNameAvailable(ctx, tenant))

		found, err := store.FindByID(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, tenant.Name, found.Name)
	})

	t.Run("duplicate name is rejected case-insensitively", func(t *testing.T) {
		store := NewInMemory()
		require.NoError(t, store.CreateIfNameAvailable(ctx, newTenant("MyTenant", time.Now())))

		err := store.CreateIfNameAvailable(ctx, newTenant("MYTENANT", time.Now()))
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	})

	t.Run("stored copy is isolated from caller", func(t *testing.T) {
		store := NewInMemory()
		tenant := newTenant("Isolated", time.Now())
		tenant.ProgramImages = []string{"a.png"}
		require.NoError(t, store.CreateIfNameAvailable(ctx, tenant))

		tenant.ProgramImages[0] = "mutated.png"
		found, err := store.FindByID(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.png"}, found.ProgramImages)
	})
}

func TestNamesCompareCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	require.NoError(t, store.CreateIfNameAvailable(ctx, newTenant("CaseSensitive", time.Now())))

	err := store.CreateIfNameAvailable(ctx, newTenant("casesensitive", time.Now()))
	assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
}

func TestListOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	third := newTenant("Third", base.Add(2*time.Minute))
	first := newTenant("First", base)
	second := newTenant("Second", base.Add(time.Minute))
	for _, tn := range []*models.Tenant{third, first, second} {
		require.NoError(t, store.CreateIfNameAvailable(ctx, tn))
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"First", "Second", "Third"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rename moves the name index", func(t *testing.T) {
		store := NewInMemory()
		tenant := newTenant("Old", time.Now())
		require.NoError(t, store.CreateIfNameAvailable(ctx, tenant))

		tenant.Name = "New"
		require.NoError(t, store.Update(ctx, tenant))

		assert.NoError(t, store.CreateIfNameAvailable(ctx, newTenant("old", time.Now())), "old name is released")
		assert.ErrorIs(t, store.CreateIfNameAvailable(ctx, newTenant("new", time.Now())), sentinel.ErrAlreadyUsed)
		found, err := store.FindByID(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", found.Name)
	})

	t.Run("rename onto taken name fails", func(t *testing.T) {
		store := NewInMemory()
		a := newTenant("Alpha", time.Now())
		b := newTenant("Beta", time.Now())
		require.NoError(t, store.CreateIfNameAvailable(ctx, a))
		require.NoError(t, store.CreateIfNameAvailable(ctx, b))

		b.Name = "ALPHA"
		assert.ErrorIs(t, store.Update(ctx, b), sentinel.ErrAlreadyUsed)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		store := NewInMemory()
		assert.ErrorIs(t, store.Update(ctx, newTenant("Ghost", time.Now())), ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	tenant := newTenant("Doomed", time.Now())
	require.NoError(t, store.CreateIfNameAvailable(ctx, tenant))

	require.NoError(t, store.Delete(ctx, tenant.ID))
	_, err := store.FindByID(ctx, tenant.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// name is free again
	require.NoError(t, store.CreateIfNameAvailable(ctx, newTenant("Doomed", time.Now())))

	assert.ErrorIs(t, store.Delete(ctx, tenant.ID), ErrNotFound)
}

func TestCreateIfNameAvailable_ConcurrentSameName(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	result := testutil.RunConcurrent(20, func(int) error {
		return store.CreateIfNameAvailable(ctx, newTenant("Racy", time.Now()))
	})

	assert.Equal(t, int32(1), result.Successes)
	assert.Equal(t, int32(19), result.Conflicts)
	assert.Zero(t, result.Errors)
}
