package usecase

import "time"

const (
	// DefaultPageLimit is used when a list request asks for no explicit limit.
	DefaultPageLimit = 20

	// MaxPageLimit caps the size of a single page.
	MaxPageLimit = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// accountNumberAttempts bounds retries when a generated account number collides.
	accountNumberAttempts = 3
)

// Operation names used in logs and metrics.
const (
	OperationTransfer = "transfer"
	OperationWithdraw = "withdraw"
	OperationDeposit  = "deposit"
)
