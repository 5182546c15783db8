package services

import (
	"fmt"

	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
	"github.com/campbellchri/clara-backend/internal/utils"
)

const (
	// ClaimIDPrefix starts every claim identifier.
	ClaimIDPrefix = "CLM-"
	// claimIDRandomBytes gives a 12 character hex suffix.
	claimIDRandomBytes = 6
)

type claimIDGenerator struct{}

// NewClaimIDGenerator returns a generator of random, non-sequential claim IDs
// such as CLM-3FA94C0B12DE.
func NewClaimIDGenerator() portssvc.ClaimIDGenerator {
	return claimIDGenerator{}
}

func (claimIDGenerator) NextIdentifier() (string, error) {
	suffix, err := utils.RandomHex(claimIDRandomBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate claim id: %w", err)
	}
	return ClaimIDPrefix + suffix, nil
}
