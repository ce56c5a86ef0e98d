package repository

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubadmin/internal/config/connections/postgres"
)

// AdminToken is a bearer token issued to a club administrator. Only the
// SHA-256 of the secret is stored; the plain form is shown once at issue
// time and may be prefixed with "<id>|" the way the old console printed it.
type AdminToken struct {
	ID        int64
	TokenHash string
	AdminID   string
	Abilities string
	ExpiresAt *time.Time
}

type AdminTokenRepository struct {
	pg *postgres.Postgres
}

func NewAdminTokenRepository(pg *postgres.Postgres) *AdminTokenRepository {
	return &AdminTokenRepository{pg: pg}
}

const selectTokenByIDQuery = `
	SELECT id, token_hash, admin_id, abilities, expires_at
	FROM admin_tokens
	WHERE id = $1
	  AND (expires_at IS NULL OR expires_at > $2)
`

const selectTokenByHashQuery = `
	SELECT id, token_hash, admin_id, abilities, expires_at
	FROM admin_tokens
	WHERE token_hash = $1
	  AND (expires_at IS NULL OR expires_at > $2)
	ORDER BY created_at DESC
	LIMIT 1
`

func (r *AdminTokenRepository) FindByPlainToken(ctx context.Context, plainToken string) (*AdminToken, error) {
	plainToken = strings.TrimSpace(plainToken)
	if plainToken == "" {
		return nil, errors.New("empty token")
	}

	tokenID, tokenPart := splitTokenID(plainToken)

	sum := sha256.Sum256([]byte(tokenPart))
	hash := fmt.Sprintf("%x", sum)

	var tok AdminToken

	if tokenID != nil {
		err := r.pg.Pool.QueryRow(ctx, selectTokenByIDQuery, *tokenID, time.Now()).Scan(
			&tok.ID, &tok.TokenHash, &tok.AdminID, &tok.Abilities, &tok.ExpiresAt,
		)
		if err == nil && tok.TokenHash == hash {
			return &tok, nil
		}
	}

	err := r.pg.Pool.QueryRow(ctx, selectTokenByHashQuery, hash, time.Now()).Scan(
		&tok.ID, &tok.TokenHash, &tok.AdminID, &tok.Abilities, &tok.ExpiresAt,
	)
	if err != nil {
		return nil, errors.New("token not found")
	}
	return &tok, nil
}

func splitTokenID(plainToken string) (*int64, string) {
	idx := strings.Index(plainToken, "|")
	if idx <= 0 {
		return nil, plainToken
	}

	var id int64
	if _, err := fmt.Sscanf(plainToken[:idx], "%d", &id); err != nil {
		return nil, plainToken[idx+1:]
	}
	return &id, plainToken[idx+1:]
}
