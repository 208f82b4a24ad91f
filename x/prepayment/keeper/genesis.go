package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/prepayment/types"
)

// InitGenesis initializes the prepayment module state from genesis.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}
	nm := k.nonceManager()
	for _, acc := range genState.Accounts {
		if err := k.SetAccount(ctx, acc); err != nil {
			return err
		}
		for _, consumer := range acc.Consumers {
			nm.Init(ctx, acc.AccID, consumer)
		}
	}
	for _, name := range genState.Coordinators {
		if err := k.AddCoordinator(ctx, name); err != nil {
			return err
		}
	}
	k.setNextAccID(ctx, genState.NextAccID)
	return nil
}

// ExportGenesis returns the module state for a genesis export.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	accounts := []types.Account{}
	k.IterateAccounts(ctx, func(acc types.Account) bool {
		accounts = append(accounts, acc)
		return false
	})
	return &types.GenesisState{
		Params:       k.GetParams(ctx),
		Accounts:     accounts,
		Coordinators: k.GetCoordinators(ctx),
		NextAccID:    k.GetNextAccID(ctx),
	}
}
