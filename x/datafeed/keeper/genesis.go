package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/datafeed/types"
)

// InitGenesis initializes the datafeed module state from genesis.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	for _, job := range genState.Jobs {
		if err := k.RegisterJob(ctx, job); err != nil {
			return err
		}
	}
	for _, oracle := range genState.Oracles {
		if err := k.RegisterOracle(ctx, oracle, ""); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis returns the module state for a genesis export.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	jobs := []types.Job{}
	k.IterateJobs(ctx, func(job types.Job) bool {
		jobs = append(jobs, job)
		return false
	})
	oracles := []string{}
	k.IterateOracles(ctx, func(oracle, _ string) bool {
		oracles = append(oracles, oracle)
		return false
	})
	return &types.GenesisState{
		Jobs:    jobs,
		Oracles: oracles,
	}
}
