package identity

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gestionale/gestionale/internal/storage/postgres"
)

type Repository struct {
	db *postgres.Client
}

func NewRepository(db *postgres.Client) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, roles, is_admin, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, pq.Array(user.Roles), user.IsAdmin, user.Status,
	).Scan(&user.CreatedAt)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, password_hash, name, roles, is_admin, status, created_at FROM users WHERE email = $1`
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, email))
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT id, email, password_hash, name, roles, is_admin, status, created_at FROM users WHERE id = $1`
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, id))
}

// LookupMany resolves a batch of owner ids to display names in one query.
// Unknown ids are simply absent from the result map.
func (r *Repository) LookupMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Owner, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]Owner{}, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query := `SELECT id, name FROM users WHERE id = ANY($1)`
	rows, err := r.db.DB.QueryContext(ctx, query, pq.Array(strIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make(map[uuid.UUID]Owner, len(ids))
	for rows.Next() {
		var o Owner
		if err := rows.Scan(&o.ID, &o.DisplayName); err != nil {
			return nil, err
		}
		owners[o.ID] = o
	}
	return owners, rows.Err()
}

func (r *Repository) scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	var roles pq.StringArray
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&roles, &user.IsAdmin, &user.Status, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}
