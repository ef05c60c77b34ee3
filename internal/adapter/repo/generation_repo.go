package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"brandforge/internal/domain"
)

// GenerationRepositoryPG implements domain.GenerationRepository using
// PostgreSQL. Record inserts and the credit debit share one transaction so
// a failed debit never leaves an orphaned record, and a failed insert never
// consumes credits.
type GenerationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewGenerationRepository constructs a new generation repository instance.
func NewGenerationRepository(pool *pgxpool.Pool) *GenerationRepositoryPG {
	return &GenerationRepositoryPG{pool: pool}
}

// SaveAssetAndDebit records a generated image and debits its cost atomically.
func (r *GenerationRepositoryPG) SaveAssetAndDebit(ctx context.Context, asset *domain.GeneratedAsset, cost int) (*domain.CreditBalance, error) {
	if strings.TrimSpace(asset.UserID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
INSERT INTO generated_images (id, user_id, image_url, type, prompt)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at;
`, asset.ID, asset.UserID, asset.ImageURL, asset.Type, asset.Prompt).Scan(&asset.CreatedAt)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "insert image", Err: err}
	}

	balance, err := debitRow(ctx, tx, asset.UserID, cost)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, &domain.PersistenceError{Op: "commit", Err: err}
	}
	return balance, nil
}

// SaveTextAndDebit records a generated text artifact and debits its cost
// atomically.
func (r *GenerationRepositoryPG) SaveTextAndDebit(ctx context.Context, text *domain.GeneratedText, cost int) (*domain.CreditBalance, error) {
	if strings.TrimSpace(text.UserID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	if text.ID == "" {
		text.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
INSERT INTO generated_texts (id, user_id, content, type, prompt)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at;
`, text.ID, text.UserID, text.Text, text.Type, text.Prompt).Scan(&text.CreatedAt)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "insert text", Err: err}
	}

	balance, err := debitRow(ctx, tx, text.UserID, cost)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, &domain.PersistenceError{Op: "commit", Err: err}
	}
	return balance, nil
}

// ListAssetsByUser returns the user's generated images, newest first.
func (r *GenerationRepositoryPG) ListAssetsByUser(ctx context.Context, userID string, limit int) ([]domain.GeneratedAsset, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, image_url, type, prompt, created_at
FROM generated_images
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;
`, userID, limit)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list images", Err: err}
	}
	defer rows.Close()

	var assets []domain.GeneratedAsset
	for rows.Next() {
		var asset domain.GeneratedAsset
		if err := rows.Scan(&asset.ID, &asset.UserID, &asset.ImageURL, &asset.Type, &asset.Prompt, &asset.CreatedAt); err != nil {
			return nil, &domain.PersistenceError{Op: "scan image", Err: err}
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "list images", Err: err}
	}
	return assets, nil
}

var _ domain.GenerationRepository = (*GenerationRepositoryPG)(nil)
