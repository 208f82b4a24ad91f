package keeper

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/aggregator/types"
)

// ChangeOracles removes and adds oracles and installs the new
// submission counts in one transition. All validation happens before
// the first write.
func (k Keeper) ChangeOracles(
	ctx sdk.Context,
	removed []string,
	added []string,
	minSubmissionCount uint32,
	maxSubmissionCount uint32,
	restartDelay uint32,
) error {
	count := k.OracleCount(ctx)

	disabled := make([]types.Oracle, 0, len(removed))
	for _, address := range removed {
		oracle, found := k.GetOracle(ctx, address)
		if !found || !oracle.Enabled {
			return types.ErrOracleNotEnabled.Wrap(address)
		}
		oracle.Enabled = false
		disabled = append(disabled, oracle)
		count--
	}

	enabled := make([]types.Oracle, 0, len(added))
	for _, address := range added {
		oracle, found := k.GetOracle(ctx, address)
		if found && oracle.Enabled {
			return types.ErrOracleAlreadyEnabled.Wrap(address)
		}
		alreadyRemoved := false
		for i := range disabled {
			if disabled[i].Address == address {
				disabled[i].Enabled = true
				alreadyRemoved = true
				break
			}
		}
		if alreadyRemoved {
			count++
			continue
		}
		if !found {
			oracle = types.Oracle{Address: address}
		}
		oracle.Enabled = true
		enabled = append(enabled, oracle)
		count++
	}
	if count > types.MaxOracleCount {
		return types.ErrTooManyOracles.Wrapf("%d > %d", count, types.MaxOracleCount)
	}

	config := k.GetConfig(ctx)
	config.MinSubmissionCount = minSubmissionCount
	config.MaxSubmissionCount = maxSubmissionCount
	config.RestartDelay = restartDelay
	if err := config.Validate(count); err != nil {
		return err
	}

	for _, oracle := range disabled {
		k.setOracle(ctx, oracle)
	}
	for _, oracle := range enabled {
		k.setOracle(ctx, oracle)
	}
	k.setConfigUnchecked(ctx, config)
	k.metrics.EnabledOracles.Set(float64(count))

	k.Logger(ctx).Info("oracle set changed",
		"removed", len(removed), "added", len(added), "enabled", count)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOraclesChanged,
			sdk.NewAttribute(types.AttributeKeyOracle, strings.Join(added, ",")),
		),
	)
	return nil
}

// SetRequesterPermissions grants or revokes an address the right to
// force new rounds. Setting the same permissions again is a no-op.
func (k Keeper) SetRequesterPermissions(ctx sdk.Context, address string, authorized bool, delay uint32) error {
	requester, found := k.GetRequester(ctx, address)
	if found && requester.Authorized == authorized && requester.Delay == delay {
		return nil
	}
	if !found {
		requester = types.Requester{Address: address}
	}
	requester.Authorized = authorized
	requester.Delay = delay
	k.setRequester(ctx, requester)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRequesterPermissions,
			sdk.NewAttribute(types.AttributeKeyRequester, address),
			sdk.NewAttribute(types.AttributeKeyAuthorized, boolString(authorized)),
		),
	)
	return nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
