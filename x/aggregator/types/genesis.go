package types

import (
	"fmt"
)

// GenesisState is the aggregator module genesis state.
type GenesisState struct {
	Config           Config            `json:"config"`
	Oracles          []Oracle          `json:"oracles"`
	Requesters       []Requester       `json:"requesters"`
	PhaseID          uint16            `json:"phase_id"`
	PhaseAggregators []PhaseAggregator `json:"phase_aggregators"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Config: DefaultConfig(),
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	enabled := uint32(0)
	seen := make(map[string]bool)
	for _, oracle := range gs.Oracles {
		if oracle.Address == "" {
			return fmt.Errorf("oracle address cannot be empty")
		}
		if seen[oracle.Address] {
			return fmt.Errorf("duplicate oracle %s", oracle.Address)
		}
		seen[oracle.Address] = true
		if oracle.Enabled {
			enabled++
		}
	}
	if enabled > MaxOracleCount {
		return fmt.Errorf("%d oracles exceed the limit of %d", enabled, MaxOracleCount)
	}
	if err := gs.Config.Validate(enabled); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	seenRequesters := make(map[string]bool)
	for _, requester := range gs.Requesters {
		if requester.Address == "" {
			return fmt.Errorf("requester address cannot be empty")
		}
		if seenRequesters[requester.Address] {
			return fmt.Errorf("duplicate requester %s", requester.Address)
		}
		seenRequesters[requester.Address] = true
	}

	seenPhases := make(map[uint16]bool)
	for _, phase := range gs.PhaseAggregators {
		if err := phase.Validate(); err != nil {
			return err
		}
		if phase.PhaseID > gs.PhaseID {
			return fmt.Errorf("phase %d beyond current phase %d", phase.PhaseID, gs.PhaseID)
		}
		if seenPhases[phase.PhaseID] {
			return fmt.Errorf("duplicate phase %d", phase.PhaseID)
		}
		seenPhases[phase.PhaseID] = true
	}
	return nil
}
