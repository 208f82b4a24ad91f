package types

import (
	"fmt"
)

// GenesisState is the datafeed module genesis state.
type GenesisState struct {
	Jobs    []Job    `json:"jobs"`
	Oracles []string `json:"oracles"`
}

// DefaultGenesis returns the default genesis state with one job per
// supported response type.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Jobs: DefaultJobs(),
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	seenJobs := make(map[string]bool)
	for _, job := range gs.Jobs {
		if err := job.Validate(); err != nil {
			return err
		}
		if seenJobs[job.JobID] {
			return fmt.Errorf("duplicate job %s", job.JobID)
		}
		seenJobs[job.JobID] = true
	}
	seenOracles := make(map[string]bool)
	for _, oracle := range gs.Oracles {
		if oracle == "" {
			return fmt.Errorf("oracle address cannot be empty")
		}
		if seenOracles[oracle] {
			return fmt.Errorf("duplicate oracle %s", oracle)
		}
		seenOracles[oracle] = true
	}
	return nil
}
