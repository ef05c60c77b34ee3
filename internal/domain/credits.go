package domain

// CreditBalance is the per-user credit ledger row. Amounts are integer
// cent-equivalents. Invariant: UsedCredits <= TotalCredits after every debit.
type CreditBalance struct {
	UserID       string
	TotalCredits int
	UsedCredits  int
}

// Remaining returns the spendable credit amount.
func (b CreditBalance) Remaining() int {
	return b.TotalCredits - b.UsedCredits
}

// StartingCredits is the allowance granted when a ledger row is first created.
const StartingCredits = 500

var costTable = map[AssetType]int{
	AssetTypeBrandName: 15,
	AssetTypeLogo:      20,
	AssetTypeBanner:    30,
	AssetTypeTagline:   10,
}

// Cost returns the credit cost of generating one artifact of the given type.
func Cost(t AssetType) int {
	return costTable[t]
}
