package types

import (
	"fmt"
)

// GenesisState is the prepayment module genesis state.
type GenesisState struct {
	Params       Params    `json:"params"`
	Accounts     []Account `json:"accounts"`
	Coordinators []string  `json:"coordinators"`
	NextAccID    uint64    `json:"next_acc_id"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:    DefaultParams(),
		Accounts:  []Account{},
		NextAccID: 1,
	}
}

// Validate performs basic genesis state validation returning an error
// upon any failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	seen := make(map[uint64]bool)
	for i, acc := range gs.Accounts {
		if acc.AccID == 0 {
			return fmt.Errorf("account %d: id cannot be zero", i)
		}
		if seen[acc.AccID] {
			return fmt.Errorf("account %d: duplicate id %d", i, acc.AccID)
		}
		seen[acc.AccID] = true
		if acc.AccID >= gs.NextAccID {
			return fmt.Errorf("account id %d not below next id %d", acc.AccID, gs.NextAccID)
		}
		if err := acc.Validate(); err != nil {
			return err
		}
	}

	seenCoordinators := make(map[string]bool)
	for _, name := range gs.Coordinators {
		if name == "" {
			return fmt.Errorf("coordinator name cannot be empty")
		}
		if seenCoordinators[name] {
			return fmt.Errorf("duplicate coordinator %s", name)
		}
		seenCoordinators[name] = true
	}
	return nil
}
