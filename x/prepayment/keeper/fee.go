package keeper

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/prepayment/types"
)

// RequestCount returns the number of settled requests the account has
// made, the input to fee tier selection.
func (k Keeper) RequestCount(ctx sdk.Context, accID uint64) (uint64, error) {
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return 0, err
	}
	return acc.ReqCount, nil
}

// FeeRatio returns the percentage of the computed service fee the
// account actually pays. 100 means no discount.
func (k Keeper) FeeRatio(ctx sdk.Context, accID uint64) (uint32, error) {
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return 0, err
	}
	if acc.AccType == types.ACCOUNT_NATIVE_DISCOUNT {
		return acc.FeeRatio, nil
	}
	return 100, nil
}

// subscriptionQuotaAvailable reports whether a paid subscription
// account still has quota in the current period, rolling the period
// window forward when it has lapsed.
func subscriptionQuotaAvailable(acc *types.Account, now int64) bool {
	if !acc.SubscriptionPaid || acc.Period <= 0 {
		return false
	}
	if now >= acc.StartTime+acc.Period {
		elapsed := (now - acc.StartTime) / acc.Period
		acc.StartTime += elapsed * acc.Period
		acc.PeriodReqCount = 0
	}
	return acc.PeriodReqCount < acc.ReqPeriodCount
}

// ChargeFee settles the service fee for a fulfilled request. Paid
// subscription accounts with remaining quota consume one period request
// instead of balance; every other account is debited and the amount is
// split between burn, protocol fee and the fulfilling operator. The
// returned amount is what was actually debited.
func (k Keeper) ChargeFee(ctx sdk.Context, coordinator string, accID uint64, amount sdkmath.Int, operator string) (sdkmath.Int, error) {
	if !k.IsCoordinator(ctx, coordinator) {
		return sdkmath.Int{}, types.ErrInvalidCoordinator.Wrap(coordinator)
	}
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return sdkmath.Int{}, err
	}

	switch acc.AccType {
	case types.ACCOUNT_FIAT_SUBSCRIPTION, types.ACCOUNT_NATIVE_SUBSCRIPTION:
		if subscriptionQuotaAvailable(&acc, ctx.BlockTime().Unix()) {
			acc.PeriodReqCount++
			acc.ReqCount++
			if err := k.SetAccount(ctx, acc); err != nil {
				return sdkmath.Int{}, err
			}
			ctx.EventManager().EmitEvent(sdk.NewEvent(
				types.EventTypePeriodReqIncreased,
				sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
				sdk.NewAttribute(types.AttributeKeyPeriodReqCount, fmt.Sprintf("%d", acc.PeriodReqCount)),
			))
			return sdkmath.ZeroInt(), nil
		}
		// quota exhausted or subscription unpaid, fall through to balance
	case types.ACCOUNT_TEMPORARY:
		return sdkmath.Int{}, types.ErrInvalidAccountType.Wrapf(
			"account %d is TEMPORARY, use ChargeFeeTemporary", accID)
	}

	return k.debitAndDistribute(ctx, acc, amount, operator)
}

// ChargeFeeTemporary consumes a temporary account in full: the whole
// escrowed balance is distributed and the account deleted. The returned
// amount is the consumed balance.
func (k Keeper) ChargeFeeTemporary(ctx sdk.Context, coordinator string, accID uint64, operator string) (sdkmath.Int, error) {
	if !k.IsCoordinator(ctx, coordinator) {
		return sdkmath.Int{}, types.ErrInvalidCoordinator.Wrap(coordinator)
	}
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if acc.AccType != types.ACCOUNT_TEMPORARY {
		return sdkmath.Int{}, types.ErrInvalidAccountType.Wrapf("account %d is %s", accID, acc.AccType)
	}

	amount := acc.Balance
	if _, err := k.debitAndDistribute(ctx, acc, amount, operator); err != nil {
		return sdkmath.Int{}, err
	}
	// the record was rewritten by the debit, reload before deletion
	acc, err = k.GetAccount(ctx, accID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	k.deleteAccount(ctx, acc)
	return amount, nil
}

// debitAndDistribute debits the account balance and splits the amount
// per module params: burn share burned, protocol share to the
// recipient, remainder to the fulfilling operator.
func (k Keeper) debitAndDistribute(ctx sdk.Context, acc types.Account, amount sdkmath.Int, operator string) (sdkmath.Int, error) {
	if amount.IsNil() || amount.IsNegative() {
		return sdkmath.Int{}, types.ErrInvalidAccount.Wrap("fee amount must not be negative")
	}
	if acc.Balance.LT(amount) {
		return sdkmath.Int{}, types.ErrInsufficientBalance.Wrapf(
			"account %d balance %s below fee %s", acc.AccID, acc.Balance, amount)
	}

	params := k.GetParams(ctx)
	burnAmount := amount.MulRaw(int64(params.BurnFeeRatio)).QuoRaw(100)
	protocolAmount := amount.MulRaw(int64(params.ProtocolFeeRatio)).QuoRaw(100)
	operatorAmount := amount.Sub(burnAmount).Sub(protocolAmount)

	if burnAmount.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(params.Denom, burnAmount))
		if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, coins); err != nil {
			return sdkmath.Int{}, err
		}
	}
	if protocolAmount.IsPositive() && params.ProtocolFeeRecipient != "" {
		recipient, err := sdk.AccAddressFromBech32(params.ProtocolFeeRecipient)
		if err != nil {
			return sdkmath.Int{}, err
		}
		coins := sdk.NewCoins(sdk.NewCoin(params.Denom, protocolAmount))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins); err != nil {
			return sdkmath.Int{}, err
		}
	}
	if operatorAmount.IsPositive() {
		operatorAddr, err := sdk.AccAddressFromBech32(operator)
		if err != nil {
			return sdkmath.Int{}, err
		}
		coins := sdk.NewCoins(sdk.NewCoin(params.Denom, operatorAmount))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, operatorAddr, coins); err != nil {
			return sdkmath.Int{}, err
		}
	}

	oldBalance := acc.Balance
	acc.Balance = acc.Balance.Sub(amount)
	acc.ReqCount++
	if err := k.SetAccount(ctx, acc); err != nil {
		return sdkmath.Int{}, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAccountBalanceDecreased,
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", acc.AccID)),
		sdk.NewAttribute(types.AttributeKeyOldBalance, oldBalance.String()),
		sdk.NewAttribute(types.AttributeKeyNewBalance, acc.Balance.String()),
		sdk.NewAttribute(types.AttributeKeyBurned, burnAmount.String()),
		sdk.NewAttribute(types.AttributeKeyProtocolFee, protocolAmount.String()),
		sdk.NewAttribute(types.AttributeKeyOperatorFee, operatorAmount.String()),
		sdk.NewAttribute(types.AttributeKeyOperator, operator),
	))
	k.Logger(ctx).Info("fee charged",
		"acc_id", acc.AccID, "amount", amount.String(),
		"burned", burnAmount.String(), "operator", operator)
	return amount, nil
}

// IncreasePendingRequest bumps the outstanding request counter.
// Withdraw and CancelAccount consult it so balances backing live
// commitments cannot be drained.
func (k Keeper) IncreasePendingRequest(ctx sdk.Context, coordinator string, accID uint64) error {
	if !k.IsCoordinator(ctx, coordinator) {
		return types.ErrInvalidCoordinator.Wrap(coordinator)
	}
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	acc.PendingReqCount++
	return k.SetAccount(ctx, acc)
}

// DecreasePendingRequest releases one outstanding request slot after a
// fulfillment or cancellation.
func (k Keeper) DecreasePendingRequest(ctx sdk.Context, coordinator string, accID uint64) error {
	if !k.IsCoordinator(ctx, coordinator) {
		return types.ErrInvalidCoordinator.Wrap(coordinator)
	}
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	if acc.PendingReqCount == 0 {
		return types.ErrInvalidAccount.Wrapf("account %d has no pending requests", accID)
	}
	acc.PendingReqCount--
	return k.SetAccount(ctx, acc)
}
