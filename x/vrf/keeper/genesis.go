package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/vrf/types"
)

// InitGenesis initializes the vrf module state from genesis.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}
	for _, entry := range genState.Oracles {
		if err := k.RegisterOracle(ctx, entry.Oracle, entry.KeyHash); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis returns the module state for a genesis export.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	oracles := []types.OracleEntry{}
	k.IterateOracles(ctx, func(oracle, keyHash string) bool {
		oracles = append(oracles, types.OracleEntry{Oracle: oracle, KeyHash: keyHash})
		return false
	})
	return &types.GenesisState{
		Params:  k.GetParams(ctx),
		Oracles: oracles,
	}
}
