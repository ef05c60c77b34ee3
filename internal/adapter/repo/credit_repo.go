package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"brandforge/internal/domain"
)

// CreditLedgerPG implements domain.CreditLedger using PostgreSQL.
type CreditLedgerPG struct {
	pool *pgxpool.Pool
}

// NewCreditLedger constructs a new credit ledger instance.
func NewCreditLedger(pool *pgxpool.Pool) *CreditLedgerPG {
	return &CreditLedgerPG{pool: pool}
}

// Balance returns the user's ledger row, creating it with the starting
// allowance on first touch.
func (r *CreditLedgerPG) Balance(ctx context.Context, userID string) (*domain.CreditBalance, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if _, err := r.pool.Exec(ctx, `
INSERT INTO user_credits (user_id, total_credits, used_credits)
VALUES ($1, $2, 0)
ON CONFLICT (user_id) DO NOTHING;
`, userID, domain.StartingCredits); err != nil {
		return nil, &domain.PersistenceError{Op: "ensure ledger", Err: err}
	}

	balance := &domain.CreditBalance{UserID: userID}
	err := r.pool.QueryRow(ctx, `
SELECT total_credits, used_credits
FROM user_credits
WHERE user_id = $1;
`, userID).Scan(&balance.TotalCredits, &balance.UsedCredits)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read ledger", Err: err}
	}
	return balance, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// debitRow runs the conditional decrement inside a save-and-debit
// transaction. The conditional UPDATE is the only writer of used_credits, so
// concurrent debits serialize on the row and the balance can never go
// negative.
func debitRow(ctx context.Context, q rowQuerier, userID string, cost int) (*domain.CreditBalance, error) {
	balance := &domain.CreditBalance{UserID: userID}
	err := q.QueryRow(ctx, `
UPDATE user_credits
SET used_credits = used_credits + $2
WHERE user_id = $1
  AND used_credits + $2 <= total_credits
RETURNING total_credits, used_credits;
`, userID, cost).Scan(&balance.TotalCredits, &balance.UsedCredits)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInsufficientCredits
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "debit ledger", Err: err}
	}
	return balance, nil
}

var _ domain.CreditLedger = (*CreditLedgerPG)(nil)
