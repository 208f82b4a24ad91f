package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/prepayment/types"
)

// AddConsumer authorizes a consumer address to spend from the account
// and seeds its request nonce. Adding an already present consumer is a
// no-op so that replay protection is never reset.
func (k Keeper) AddConsumer(ctx sdk.Context, sender string, accID uint64, consumer string) error {
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	if acc.Owner != sender {
		return types.ErrMustBeAccountOwner.Wrapf("%s is not the owner of account %d", sender, accID)
	}
	if acc.HasConsumer(consumer) {
		return nil
	}
	if len(acc.Consumers) >= types.MaxConsumers {
		return types.ErrTooManyConsumers.Wrapf("account %d already has %d consumers", accID, len(acc.Consumers))
	}

	acc.Consumers = append(acc.Consumers, consumer)
	if err := k.SetAccount(ctx, acc); err != nil {
		return err
	}
	k.nonceManager().Init(ctx, accID, consumer)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeConsumerAdded,
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
		sdk.NewAttribute(types.AttributeKeyConsumer, consumer),
	))
	return nil
}

// RemoveConsumer deauthorizes a consumer and drops its nonce pair.
func (k Keeper) RemoveConsumer(ctx sdk.Context, sender string, accID uint64, consumer string) error {
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	if acc.Owner != sender {
		return types.ErrMustBeAccountOwner.Wrapf("%s is not the owner of account %d", sender, accID)
	}
	if !acc.HasConsumer(consumer) {
		return types.ErrInvalidConsumer.Wrapf("consumer %s not authorized for account %d", consumer, accID)
	}

	consumers := make([]string, 0, len(acc.Consumers)-1)
	for _, c := range acc.Consumers {
		if c != consumer {
			consumers = append(consumers, c)
		}
	}
	acc.Consumers = consumers
	if err := k.SetAccount(ctx, acc); err != nil {
		return err
	}
	k.nonceManager().Remove(ctx, accID, consumer)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeConsumerRemoved,
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
		sdk.NewAttribute(types.AttributeKeyConsumer, consumer),
	))
	return nil
}

// IsValidConsumer reports whether the consumer may spend from the
// account. Temporary accounts authorize their owner implicitly.
func (k Keeper) IsValidConsumer(ctx sdk.Context, accID uint64, consumer string) bool {
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return false
	}
	if acc.AccType == types.ACCOUNT_TEMPORARY {
		return acc.Owner == consumer
	}
	return acc.HasConsumer(consumer)
}

// IncreaseNonce consumes the next request nonce for the pair. Only
// registered coordinators may call it. Temporary accounts hand out
// nonces to their owner without prior authorization.
func (k Keeper) IncreaseNonce(ctx sdk.Context, coordinator string, accID uint64, consumer string) (uint64, error) {
	if !k.IsCoordinator(ctx, coordinator) {
		return 0, types.ErrInvalidCoordinator.Wrap(coordinator)
	}
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return 0, err
	}
	nm := k.nonceManager()
	if acc.AccType == types.ACCOUNT_TEMPORARY && acc.Owner == consumer {
		nm.Init(ctx, accID, consumer)
	}
	return nm.Next(ctx, accID, consumer)
}

// GetNonce returns the nonce the next request of the pair will consume.
func (k Keeper) GetNonce(ctx sdk.Context, accID uint64, consumer string) uint64 {
	return k.nonceManager().Current(ctx, accID, consumer)
}
