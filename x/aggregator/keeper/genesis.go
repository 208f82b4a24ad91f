package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/aggregator/types"
)

// InitGenesis initializes the aggregator module state from genesis.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	k.setConfigUnchecked(ctx, genState.Config)
	for _, oracle := range genState.Oracles {
		k.setOracle(ctx, oracle)
	}
	for _, requester := range genState.Requesters {
		k.setRequester(ctx, requester)
	}
	if genState.PhaseID > 0 {
		k.setPhaseID(ctx, genState.PhaseID)
	}
	for _, phase := range genState.PhaseAggregators {
		k.setPhaseAggregator(ctx, phase)
	}
	k.metrics.EnabledOracles.Set(float64(k.OracleCount(ctx)))
	return nil
}

// ExportGenesis returns the module state for a genesis export.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	oracles := []types.Oracle{}
	k.IterateOracles(ctx, func(oracle types.Oracle) bool {
		oracles = append(oracles, oracle)
		return false
	})
	requesters := []types.Requester{}
	k.IterateRequesters(ctx, func(requester types.Requester) bool {
		requesters = append(requesters, requester)
		return false
	})
	phases := []types.PhaseAggregator{}
	k.IteratePhaseAggregators(ctx, func(phase types.PhaseAggregator) bool {
		phases = append(phases, phase)
		return false
	})
	return &types.GenesisState{
		Config:           k.GetConfig(ctx),
		Oracles:          oracles,
		Requesters:       requesters,
		PhaseID:          k.CurrentPhaseID(ctx),
		PhaseAggregators: phases,
	}
}
