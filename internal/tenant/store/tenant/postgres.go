package tenant

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"tenantadmin/internal/tenant/models"
	id "tenantadmin/pkg/domain"
	"tenantadmin/pkg/platform/sentinel"
)

// PostgresStore persists tenants in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const tenantColumns = `id, name, domain, description, status, params, program_images, created_by, updated_by, created_at, updated_at`

// CreateIfNameAvailable inserts the tenant; the unique index on lower(name) enforces availability.
func (s *PostgresStore) CreateIfNameAvailable(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}
	params, images, err := encodeJSONColumns(tenant)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(tenant.ID),
		tenant.Name,
		tenant.Domain,
		tenant.Description,
		string(tenant.Status),
		params,
		images,
		tenant.CreatedBy,
		tenant.UpdatedBy,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant name must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	tenant, err := scanTenant(s.db.QueryRowContext(ctx, query, uuid.UUID(tenantID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find tenant by id: %w", err)
	}
	return tenant, nil
}

// List returns all tenants ordered by creation time, oldest first.
func (s *PostgresStore) List(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]*models.Tenant, 0)
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tenants rows: %w", err)
	}
	return tenants, nil
}

func (s *PostgresStore) Update(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}
	params, images, err := encodeJSONColumns(tenant)
	if err != nil {
		return err
	}
	query := `
		UPDATE tenants
		SET name = $2, domain = $3, description = $4, status = $5, params = $6,
		    program_images = $7, updated_by = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(tenant.ID),
		tenant.Name,
		tenant.Domain,
		tenant.Description,
		string(tenant.Status),
		params,
		images,
		tenant.UpdatedBy,
		tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant name must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("update tenant: %w", err)
	}
	return requireAffected(res, "update tenant")
}

func (s *PostgresStore) Delete(ctx context.Context, tenantID id.TenantID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, uuid.UUID(tenantID))
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return requireAffected(res, "delete tenant")
}

func requireAffected(res sql.Result, action string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", action, err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// encodeJSONColumns renders the JSONB columns as JSON text.
func encodeJSONColumns(tenant *models.Tenant) (string, string, error) {
	params := tenant.Params
	if params == nil {
		params = map[string]any{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", "", fmt.Errorf("encode tenant params: %w", err)
	}
	images := tenant.ProgramImages
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return "", "", fmt.Errorf("encode program images: %w", err)
	}
	return string(paramsJSON), string(imagesJSON), nil
}

type tenantRow interface {
	Scan(dest ...any) error
}

func scanTenant(row tenantRow) (*models.Tenant, error) {
	var (
		tenant     models.Tenant
		tenantID   uuid.UUID
		status     string
		paramsJSON []byte
		imagesJSON []byte
	)
	if err := row.Scan(
		&tenantID,
		&tenant.Name,
		&tenant.Domain,
		&tenant.Description,
		&status,
		&paramsJSON,
		&imagesJSON,
		&tenant.CreatedBy,
		&tenant.UpdatedBy,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	); err != nil {
		return nil, err
	}
	tenant.ID = id.TenantID(tenantID)
	tenant.Status = models.TenantStatus(status)
	if err := json.Unmarshal(paramsJSON, &tenant.Params); err != nil {
		return nil, fmt.Errorf("decode tenant params: %w", err)
	}
	if err := json.Unmarshal(imagesJSON, &tenant.ProgramImages); err != nil {
		return nil, fmt.Errorf("decode program images: %w", err)
	}
	if tenant.ProgramImages == nil {
		tenant.ProgramImages = []string{}
	}
	return &tenant, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
