package keeper

import (
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/prepayment/types"
)

// AddCoordinator registers a coordinator module name. Only registered
// coordinators may charge fees, increase nonces or touch pending
// request counters.
func (k Keeper) AddCoordinator(ctx sdk.Context, name string) error {
	store := k.getStore(ctx)
	if store.Has(CoordinatorKey(name)) {
		return types.ErrCoordinatorExists.Wrap(name)
	}
	store.Set(CoordinatorKey(name), []byte{})

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCoordinatorAdded,
		sdk.NewAttribute(types.AttributeKeyCoordinator, name),
	))
	k.Logger(ctx).Info("coordinator added", "name", name)
	return nil
}

// RemoveCoordinator deregisters a coordinator module name.
func (k Keeper) RemoveCoordinator(ctx sdk.Context, name string) error {
	store := k.getStore(ctx)
	if !store.Has(CoordinatorKey(name)) {
		return types.ErrInvalidCoordinator.Wrap(name)
	}
	store.Delete(CoordinatorKey(name))

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCoordinatorRemoved,
		sdk.NewAttribute(types.AttributeKeyCoordinator, name),
	))
	k.Logger(ctx).Info("coordinator removed", "name", name)
	return nil
}

// IsCoordinator reports whether the module name is a registered
// coordinator.
func (k Keeper) IsCoordinator(ctx sdk.Context, name string) bool {
	return k.getStore(ctx).Has(CoordinatorKey(name))
}

// GetCoordinators returns every registered coordinator name.
func (k Keeper) GetCoordinators(ctx sdk.Context) []string {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), CoordinatorKeyPrefix)
	defer iterator.Close()
	names := []string{}
	for ; iterator.Valid(); iterator.Next() {
		names = append(names, string(iterator.Key()[len(CoordinatorKeyPrefix):]))
	}
	return names
}
