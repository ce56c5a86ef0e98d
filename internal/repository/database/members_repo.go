package database

import (
	"context"
	"errors"
	"fmt"

	"clubadmin/internal/config/connections/postgres"
	"clubadmin/internal/models"

	"github.com/jackc/pgx/v5"
)

type MemberRepo struct {
	pg *postgres.Postgres
}

func NewMemberRepo(pg *postgres.Postgres) *MemberRepo {
	return &MemberRepo{pg: pg}
}

const selectMembersQuery = `
	SELECT id, full_name, active, created_at, updated_at
	FROM members
	ORDER BY full_name, id
`

func (r *MemberRepo) ListAll(ctx context.Context) ([]models.Member, error) {
	rows, err := r.pg.Pool.Query(ctx, selectMembersQuery)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]models.Member, 0)
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.FullName, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

const selectMemberByIDQuery = `
	SELECT id, full_name, active, created_at, updated_at
	FROM members
	WHERE id = $1::uuid
`

// ErrNotFound is returned when a row is absent; handlers map it onto the
// domain NotFoundError with the id they asked for.
var ErrNotFound = errors.New("not found")

func (r *MemberRepo) GetByID(ctx context.Context, id string) (models.Member, error) {
	var m models.Member
	err := r.pg.Pool.QueryRow(ctx, selectMemberByIDQuery, id).Scan(
		&m.ID, &m.FullName, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Member{}, ErrNotFound
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("get member %s: %w", id, err)
	}
	return m, nil
}
