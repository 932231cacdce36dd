package postgres

import (
	"github.com/oklog/ulid/v2"

	"github.com/iho/bankcore/internal/domain"
)

// accountNumberLength is the number of ULID entropy characters kept in an
// account number.
const accountNumberLength = 10

// ULIDGenerator generates ULID-based IDs and account numbers.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// GenerateAccountNumber returns "ACCT" followed by ten random Crockford
// base32 characters.
func (g *ULIDGenerator) GenerateAccountNumber() string {
	id := ulid.Make().String()
	return domain.AccountNumberPrefix + id[len(id)-accountNumberLength:]
}
