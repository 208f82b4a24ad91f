package keeper

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/prepayment/types"
)

// GetNextAccID returns the next account id to be assigned.
func (k Keeper) GetNextAccID(ctx sdk.Context) uint64 {
	bz := k.getStore(ctx).Get(NextAccIDKey)
	if len(bz) != 8 {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) setNextAccID(ctx sdk.Context, id uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	k.getStore(ctx).Set(NextAccIDKey, bz)
}

// GetAccount returns the account record for an id.
func (k Keeper) GetAccount(ctx sdk.Context, accID uint64) (types.Account, error) {
	bz := k.getStore(ctx).Get(AccountKey(accID))
	if bz == nil {
		return types.Account{}, types.ErrInvalidAccount.Wrapf("account %d not found", accID)
	}
	var acc types.Account
	if err := json.Unmarshal(bz, &acc); err != nil {
		return types.Account{}, types.ErrInvalidAccount.Wrapf("account %d corrupted: %v", accID, err)
	}
	return acc, nil
}

// SetAccount stores an account record.
func (k Keeper) SetAccount(ctx sdk.Context, acc types.Account) error {
	bz, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("failed to marshal account %d: %w", acc.AccID, err)
	}
	k.getStore(ctx).Set(AccountKey(acc.AccID), bz)
	return nil
}

func (k Keeper) deleteAccount(ctx sdk.Context, acc types.Account) {
	nm := k.nonceManager()
	for _, consumer := range acc.Consumers {
		nm.Remove(ctx, acc.AccID, consumer)
	}
	k.getStore(ctx).Delete(AccountKey(acc.AccID))
}

// IterateAccounts walks every stored account record in id order.
func (k Keeper) IterateAccounts(ctx sdk.Context, cb func(acc types.Account) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), AccountKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		var acc types.Account
		if err := json.Unmarshal(iterator.Value(), &acc); err != nil {
			continue
		}
		if cb(acc) {
			break
		}
	}
}

// createAccount assigns the next id, persists the record and emits the
// creation event shared by every account type.
func (k Keeper) createAccount(ctx sdk.Context, acc types.Account) (uint64, error) {
	acc.AccID = k.GetNextAccID(ctx)
	acc.Balance = sdkmath.ZeroInt()
	acc.Consumers = []string{}
	if err := acc.Validate(); err != nil {
		return 0, types.ErrInvalidAccount.Wrap(err.Error())
	}
	if err := k.SetAccount(ctx, acc); err != nil {
		return 0, err
	}
	k.setNextAccID(ctx, acc.AccID+1)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAccountCreated,
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", acc.AccID)),
		sdk.NewAttribute(types.AttributeKeyAccType, acc.AccType.String()),
		sdk.NewAttribute(types.AttributeKeyOwner, acc.Owner),
	))
	k.Logger(ctx).Info("account created",
		"acc_id", acc.AccID, "type", acc.AccType.String(), "owner", acc.Owner)
	return acc.AccID, nil
}

// CreateAccount creates a regular native-coin account for the owner.
func (k Keeper) CreateAccount(ctx sdk.Context, owner string) (uint64, error) {
	return k.createAccount(ctx, types.Account{
		Owner:   owner,
		AccType: types.ACCOUNT_NATIVE_REGULAR,
	})
}

// CreateFiatSubscriptionAccount creates a fiat subscription account.
// The subscription is settled off-chain, so it is marked paid from the
// start and requests draw from the period quota.
func (k Keeper) CreateFiatSubscriptionAccount(
	ctx sdk.Context, owner string, startTime, period int64, reqPeriodCount uint64,
) (uint64, error) {
	if period <= 0 || reqPeriodCount == 0 {
		return 0, types.ErrInvalidAccount.Wrap("subscription period and quota must be positive")
	}
	return k.createAccount(ctx, types.Account{
		Owner:            owner,
		AccType:          types.ACCOUNT_FIAT_SUBSCRIPTION,
		StartTime:        startTime,
		Period:           period,
		ReqPeriodCount:   reqPeriodCount,
		SubscriptionPaid: true,
	})
}

// CreateSubscriptionAccount creates a native-coin subscription account.
// The subscription activates once the owner deposits at least the
// subscription price.
func (k Keeper) CreateSubscriptionAccount(
	ctx sdk.Context, owner string, startTime, period int64, reqPeriodCount uint64, price sdkmath.Int,
) (uint64, error) {
	if period <= 0 || reqPeriodCount == 0 {
		return 0, types.ErrInvalidAccount.Wrap("subscription period and quota must be positive")
	}
	if price.IsNil() || !price.IsPositive() {
		return 0, types.ErrInvalidAccount.Wrap("subscription price must be positive")
	}
	return k.createAccount(ctx, types.Account{
		Owner:             owner,
		AccType:           types.ACCOUNT_NATIVE_SUBSCRIPTION,
		StartTime:         startTime,
		Period:            period,
		ReqPeriodCount:    reqPeriodCount,
		SubscriptionPrice: price,
	})
}

// CreateDiscountAccount creates an account charged at feeRatio percent
// of the computed service fee.
func (k Keeper) CreateDiscountAccount(ctx sdk.Context, owner string, feeRatio uint32) (uint64, error) {
	if feeRatio == 0 || feeRatio >= 100 {
		return 0, types.ErrRatioOutOfBounds.Wrapf("discount ratio %d not in 1..99", feeRatio)
	}
	return k.createAccount(ctx, types.Account{
		Owner:    owner,
		AccType:  types.ACCOUNT_NATIVE_DISCOUNT,
		FeeRatio: feeRatio,
	})
}

// CreateTemporaryAccount creates a single-use account for a direct
// payment request. Only registered coordinators may call it.
func (k Keeper) CreateTemporaryAccount(ctx sdk.Context, coordinator string, owner string) (uint64, error) {
	if !k.IsCoordinator(ctx, coordinator) {
		return 0, types.ErrInvalidCoordinator.Wrap(coordinator)
	}
	return k.createAccount(ctx, types.Account{
		Owner:   owner,
		AccType: types.ACCOUNT_TEMPORARY,
	})
}

// Deposit moves coins from the sender into the module account and
// credits the target account's balance. Depositing into an unpaid
// native subscription account first consumes the subscription price:
// the burn share is burned, the protocol share forwarded, the rest
// retained by the module account, and the subscription marked paid.
func (k Keeper) Deposit(ctx sdk.Context, sender string, accID uint64, amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAccount.Wrap("deposit amount must be positive")
	}
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	senderAddr, err := sdk.AccAddressFromBech32(sender)
	if err != nil {
		return err
	}

	params := k.GetParams(ctx)
	coins := sdk.NewCoins(sdk.NewCoin(params.Denom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, senderAddr, types.ModuleName, coins); err != nil {
		return err
	}

	credited := amount
	if acc.AccType == types.ACCOUNT_NATIVE_SUBSCRIPTION && !acc.SubscriptionPaid {
		if amount.LT(acc.SubscriptionPrice) {
			return types.ErrInsufficientBalance.Wrapf(
				"deposit %s below subscription price %s", amount, acc.SubscriptionPrice)
		}
		if err := k.settleSubscriptionPrice(ctx, params, acc.SubscriptionPrice); err != nil {
			return err
		}
		acc.SubscriptionPaid = true
		acc.StartTime = ctx.BlockTime().Unix()
		credited = amount.Sub(acc.SubscriptionPrice)
	}

	oldBalance := acc.Balance
	acc.Balance = acc.Balance.Add(credited)
	if err := k.SetAccount(ctx, acc); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAccountBalanceIncreased,
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
		sdk.NewAttribute(types.AttributeKeyOldBalance, oldBalance.String()),
		sdk.NewAttribute(types.AttributeKeyNewBalance, acc.Balance.String()),
	))
	return nil
}

// settleSubscriptionPrice distributes an activated subscription price.
// There is no fulfilling operator at activation time, so the operator
// share stays in the module account.
func (k Keeper) settleSubscriptionPrice(ctx sdk.Context, params types.Params, price sdkmath.Int) error {
	burnAmount := price.MulRaw(int64(params.BurnFeeRatio)).QuoRaw(100)
	protocolAmount := price.MulRaw(int64(params.ProtocolFeeRatio)).QuoRaw(100)

	if burnAmount.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(params.Denom, burnAmount))
		if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, coins); err != nil {
			return err
		}
	}
	if protocolAmount.IsPositive() && params.ProtocolFeeRecipient != "" {
		recipient, err := sdk.AccAddressFromBech32(params.ProtocolFeeRecipient)
		if err != nil {
			return err
		}
		coins := sdk.NewCoins(sdk.NewCoin(params.Denom, protocolAmount))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins); err != nil {
			return err
		}
	}
	return nil
}

// DepositTemporary escrows the direct payment for a temporary account.
// Only registered coordinators may call it.
func (k Keeper) DepositTemporary(ctx sdk.Context, coordinator string, accID uint64, from string, amount sdkmath.Int) error {
	if !k.IsCoordinator(ctx, coordinator) {
		return types.ErrInvalidCoordinator.Wrap(coordinator)
	}
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	if acc.AccType != types.ACCOUNT_TEMPORARY {
		return types.ErrInvalidAccountType.Wrapf("account %d is %s", accID, acc.AccType)
	}
	return k.Deposit(ctx, from, accID, amount)
}

// Withdraw moves coins from the account balance back to the owner. It
// refuses while requests are outstanding so that fulfillments cannot be
// left unpayable.
func (k Keeper) Withdraw(ctx sdk.Context, sender string, accID uint64, amount sdkmath.Int) error {
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	if acc.Owner != sender {
		return types.ErrMustBeAccountOwner.Wrapf("%s is not the owner of account %d", sender, accID)
	}
	if acc.PendingReqCount > 0 {
		return types.ErrPendingRequestExists.Wrapf("account %d has %d pending requests", accID, acc.PendingReqCount)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAccount.Wrap("withdraw amount must be positive")
	}
	if acc.Balance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("balance %s below %s", acc.Balance, amount)
	}

	ownerAddr, err := sdk.AccAddressFromBech32(acc.Owner)
	if err != nil {
		return err
	}
	params := k.GetParams(ctx)
	coins := sdk.NewCoins(sdk.NewCoin(params.Denom, amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, ownerAddr, coins); err != nil {
		return err
	}

	oldBalance := acc.Balance
	acc.Balance = acc.Balance.Sub(amount)
	if err := k.SetAccount(ctx, acc); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAccountBalanceDecreased,
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
		sdk.NewAttribute(types.AttributeKeyOldBalance, oldBalance.String()),
		sdk.NewAttribute(types.AttributeKeyNewBalance, acc.Balance.String()),
	))
	return nil
}

// RequestOwnerTransfer records the proposed new owner. The transfer
// completes only when the proposed owner accepts.
func (k Keeper) RequestOwnerTransfer(ctx sdk.Context, sender string, accID uint64, newOwner string) error {
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	if acc.Owner != sender {
		return types.ErrMustBeAccountOwner.Wrapf("%s is not the owner of account %d", sender, accID)
	}
	acc.RequestedOwner = newOwner
	if err := k.SetAccount(ctx, acc); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeOwnerTransferRequested,
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
		sdk.NewAttribute(types.AttributeKeyOwner, acc.Owner),
		sdk.NewAttribute(types.AttributeKeyRequestedOwner, newOwner),
	))
	return nil
}

// AcceptOwnerTransfer completes a pending owner transfer. Only the
// requested owner may accept.
func (k Keeper) AcceptOwnerTransfer(ctx sdk.Context, sender string, accID uint64) error {
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	if acc.RequestedOwner == "" || acc.RequestedOwner != sender {
		return types.ErrMustBeRequestedOwner.Wrapf("%s is not the requested owner of account %d", sender, accID)
	}
	oldOwner := acc.Owner
	acc.Owner = sender
	acc.RequestedOwner = ""
	if err := k.SetAccount(ctx, acc); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeOwnerTransferred,
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
		sdk.NewAttribute(types.AttributeKeyOwner, acc.Owner),
		sdk.NewAttribute("previous_owner", oldOwner),
	))
	return nil
}

// CancelAccount deletes the account and refunds the remaining balance
// to the given recipient. It refuses while requests are outstanding.
func (k Keeper) CancelAccount(ctx sdk.Context, sender string, accID uint64, to string) error {
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	if acc.Owner != sender {
		return types.ErrMustBeAccountOwner.Wrapf("%s is not the owner of account %d", sender, accID)
	}
	if acc.PendingReqCount > 0 {
		return types.ErrPendingRequestExists.Wrapf("account %d has %d pending requests", accID, acc.PendingReqCount)
	}

	if acc.Balance.IsPositive() {
		recipient, err := sdk.AccAddressFromBech32(to)
		if err != nil {
			return err
		}
		params := k.GetParams(ctx)
		coins := sdk.NewCoins(sdk.NewCoin(params.Denom, acc.Balance))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins); err != nil {
			return err
		}
	}

	k.deleteAccount(ctx, acc)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAccountCanceled,
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
		sdk.NewAttribute(types.AttributeKeyRecipient, to),
		sdk.NewAttribute(types.AttributeKeyOldBalance, acc.Balance.String()),
	))
	k.Logger(ctx).Info("account canceled", "acc_id", accID, "refund", acc.Balance.String())
	return nil
}

// RefundTemporaryAccount refunds and deletes a temporary account after
// its request was canceled. Only registered coordinators may call it.
func (k Keeper) RefundTemporaryAccount(ctx sdk.Context, coordinator string, accID uint64, to string) error {
	if !k.IsCoordinator(ctx, coordinator) {
		return types.ErrInvalidCoordinator.Wrap(coordinator)
	}
	acc, err := k.GetAccount(ctx, accID)
	if err != nil {
		return err
	}
	if acc.AccType != types.ACCOUNT_TEMPORARY {
		return types.ErrInvalidAccountType.Wrapf("account %d is %s", accID, acc.AccType)
	}
	return k.CancelAccount(ctx, acc.Owner, accID, to)
}
