package userdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Shad0wcrushers/IDGuides/internal/models"
)

// ProvisionedUser is an account row in the provisioning directory. IDs are
// database-assigned integers, unlike the portal's string-keyed demo
// accounts.
type ProvisionedUser struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Store handles all provisioned-user database operations.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store with the given database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const userColumns = "id, email, name, role, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (*ProvisionedUser, error) {
	u := &ProvisionedUser{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List returns all provisioned users ordered by creation date.
func (s *Store) List(ctx context.Context) ([]ProvisionedUser, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM provisioned_users ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []ProvisionedUser
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// FindByID retrieves a provisioned user. Returns nil if not found.
func (s *Store) FindByID(ctx context.Context, id int64) (*ProvisionedUser, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM provisioned_users WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// FindByEmail retrieves a provisioned user. Returns nil if not found.
func (s *Store) FindByEmail(ctx context.Context, email string) (*ProvisionedUser, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM provisioned_users WHERE email = $1
	`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// Create inserts a new provisioned user and returns the stored row.
func (s *Store) Create(ctx context.Context, email, name string, role models.Role) (*ProvisionedUser, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO provisioned_users (email, name, role)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns+`
	`, email, name, role))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateRole changes a provisioned user's role and returns the updated
// row. Returns nil if the id does not exist.
func (s *Store) UpdateRole(ctx context.Context, id int64, role models.Role) (*ProvisionedUser, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		UPDATE provisioned_users SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns+`
	`, role, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user role: %w", err)
	}
	return u, nil
}

// Delete removes a provisioned user. Reports whether a row was deleted.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM provisioned_users WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return n > 0, nil
}
