package keeper

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/aggregator/types"
)

// CurrentPhaseID returns the active proxy phase, zero before any
// aggregator has been confirmed.
func (k Keeper) CurrentPhaseID(ctx sdk.Context) uint16 {
	bz := k.getStore(ctx).Get(phaseIDKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint16(bz)
}

func (k Keeper) setPhaseID(ctx sdk.Context, phaseID uint16) {
	bz := make([]byte, 2)
	binary.BigEndian.PutUint16(bz, phaseID)
	k.getStore(ctx).Set(phaseIDKey, bz)
}

// GetProposedAggregator returns the staged aggregator, if any.
func (k Keeper) GetProposedAggregator(ctx sdk.Context) (string, bool) {
	bz := k.getStore(ctx).Get(proposedAggregatorKey)
	if bz == nil {
		return "", false
	}
	return string(bz), true
}

// ProposeAggregator stages an aggregator for the next phase,
// replacing any previous proposal.
func (k Keeper) ProposeAggregator(ctx sdk.Context, aggregator string) error {
	if aggregator == "" {
		return types.ErrInvalidProposedAggregator.Wrap("empty aggregator")
	}
	k.getStore(ctx).Set(proposedAggregatorKey, []byte(aggregator))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAggregatorProposed,
			sdk.NewAttribute(types.AttributeKeyAggregator, aggregator),
		),
	)
	return nil
}

// ConfirmAggregator promotes the proposed aggregator, opening a new
// phase. The confirmed aggregator must match the proposal. History is
// append-only: past phases never change.
func (k Keeper) ConfirmAggregator(ctx sdk.Context, aggregator string) (uint16, error) {
	proposed, found := k.GetProposedAggregator(ctx)
	if !found {
		return 0, types.ErrNoProposedAggregator
	}
	if proposed != aggregator {
		return 0, types.ErrInvalidProposedAggregator.Wrapf("proposed %s, got %s", proposed, aggregator)
	}

	phaseID := k.CurrentPhaseID(ctx) + 1
	k.setPhaseID(ctx, phaseID)
	k.setPhaseAggregator(ctx, types.PhaseAggregator{PhaseID: phaseID, Aggregator: aggregator})
	k.getStore(ctx).Delete(proposedAggregatorKey)

	k.Logger(ctx).Info("aggregator confirmed", "phase_id", phaseID, "aggregator", aggregator)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAggregatorConfirmed,
			sdk.NewAttribute(types.AttributeKeyPhaseID, fmt.Sprintf("%d", phaseID)),
			sdk.NewAttribute(types.AttributeKeyAggregator, aggregator),
		),
	)
	return phaseID, nil
}

func phaseAggregatorKey(phaseID uint16) []byte {
	bz := make([]byte, 2)
	binary.BigEndian.PutUint16(bz, phaseID)
	return append(phaseAggregatorsPrefix, bz...)
}

// GetPhaseAggregator returns the aggregator that served a phase.
func (k Keeper) GetPhaseAggregator(ctx sdk.Context, phaseID uint16) (types.PhaseAggregator, bool) {
	bz := k.getStore(ctx).Get(phaseAggregatorKey(phaseID))
	if bz == nil {
		return types.PhaseAggregator{}, false
	}
	var phase types.PhaseAggregator
	if err := json.Unmarshal(bz, &phase); err != nil {
		return types.PhaseAggregator{}, false
	}
	return phase, true
}

func (k Keeper) setPhaseAggregator(ctx sdk.Context, phase types.PhaseAggregator) {
	bz, err := json.Marshal(phase)
	if err != nil {
		panic(fmt.Errorf("failed to marshal phase aggregator: %w", err))
	}
	k.getStore(ctx).Set(phaseAggregatorKey(phase.PhaseID), bz)
}

// IteratePhaseAggregators walks the phase history in phase order.
func (k Keeper) IteratePhaseAggregators(ctx sdk.Context, cb func(phase types.PhaseAggregator) bool) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), phaseAggregatorsPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		var phase types.PhaseAggregator
		if err := json.Unmarshal(iterator.Value(), &phase); err != nil {
			continue
		}
		if cb(phase) {
			break
		}
	}
}
