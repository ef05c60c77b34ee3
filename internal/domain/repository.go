package domain

import "context"

// CreditLedger reads the per-user credit balance. Debits happen only inside
// the repository's save transactions, where a conditional update keeps
// concurrent requests from pushing used credits past the total.
type CreditLedger interface {
	// Balance returns the user's ledger row, creating it with the starting
	// allowance on first touch. ErrUnauthenticated when userID is empty.
	Balance(ctx context.Context, userID string) (*CreditBalance, error)
}

// GenerationRepository appends durable records of generated artifacts. The
// SaveAndDebit variants couple the record insert and the credit debit in a
// single transaction.
type GenerationRepository interface {
	SaveAssetAndDebit(ctx context.Context, asset *GeneratedAsset, cost int) (*CreditBalance, error)
	SaveTextAndDebit(ctx context.Context, text *GeneratedText, cost int) (*CreditBalance, error)
	ListAssetsByUser(ctx context.Context, userID string, limit int) ([]GeneratedAsset, error)
}

// BlobStore persists raw image bytes and resolves them to public URLs.
type BlobStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	PublicURL(key string) string
}
