package types

import (
	"fmt"
)

// OracleEntry pairs an oracle address with its proving key hash for
// genesis import/export.
type OracleEntry struct {
	Oracle  string `json:"oracle"`
	KeyHash string `json:"key_hash"`
}

// GenesisState is the vrf module genesis state.
type GenesisState struct {
	Params  Params        `json:"params"`
	Oracles []OracleEntry `json:"oracles"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	seen := make(map[string]bool)
	for _, entry := range gs.Oracles {
		if entry.Oracle == "" {
			return fmt.Errorf("oracle address cannot be empty")
		}
		if entry.KeyHash == "" {
			return fmt.Errorf("oracle %s has no key hash", entry.Oracle)
		}
		if seen[entry.Oracle] {
			return fmt.Errorf("duplicate oracle %s", entry.Oracle)
		}
		seen[entry.Oracle] = true
	}
	return nil
}
