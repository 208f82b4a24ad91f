package keeper_test

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/orakon-chain/orakon/testutil/keeper"
	"github.com/orakon-chain/orakon/x/prepayment/keeper"
	"github.com/orakon-chain/orakon/x/prepayment/types"
)

func testAddr(name string) string {
	return sdk.AccAddress([]byte(name + "____________________")[:20]).String()
}

func TestCreateAccountAssignsSequentialIDs(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")

	first, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	second, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, first+1, second)

	acc, err := k.GetAccount(ctx, first)
	require.NoError(t, err)
	require.Equal(t, owner, acc.Owner)
	require.Equal(t, types.ACCOUNT_NATIVE_REGULAR, acc.AccType)
	require.True(t, acc.Balance.IsZero())
}

func TestGetAccountNotFound(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	_, err := k.GetAccount(ctx, 42)
	require.ErrorIs(t, err, types.ErrInvalidAccount)
}

func TestDepositAndWithdraw(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)

	require.NoError(t, k.Deposit(ctx, owner, accID, sdkmath.NewInt(600)))
	acc, err := k.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(600), acc.Balance)

	require.NoError(t, k.Withdraw(ctx, owner, accID, sdkmath.NewInt(200)))
	acc, err = k.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(400), acc.Balance)

	balance := bk.GetBalance(ctx, ownerAddr, types.DefaultDenom)
	require.Equal(t, sdkmath.NewInt(600), balance.Amount)
}

func TestWithdrawRejectsNonOwnerAndOverdraft(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	stranger := testAddr("stranger")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(100))

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, k.Deposit(ctx, owner, accID, sdkmath.NewInt(100)))

	err = k.Withdraw(ctx, stranger, accID, sdkmath.NewInt(10))
	require.ErrorIs(t, err, types.ErrMustBeAccountOwner)

	err = k.Withdraw(ctx, owner, accID, sdkmath.NewInt(500))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestWithdrawBlockedByPendingRequest(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(100))

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, k.Deposit(ctx, owner, accID, sdkmath.NewInt(100)))
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))
	require.NoError(t, k.IncreasePendingRequest(ctx, "vrf", accID))

	err = k.Withdraw(ctx, owner, accID, sdkmath.NewInt(10))
	require.ErrorIs(t, err, types.ErrPendingRequestExists)

	err = k.CancelAccount(ctx, owner, accID, owner)
	require.ErrorIs(t, err, types.ErrPendingRequestExists)

	require.NoError(t, k.DecreasePendingRequest(ctx, "vrf", accID))
	require.NoError(t, k.Withdraw(ctx, owner, accID, sdkmath.NewInt(10)))
}

func TestConsumerLifecycleAndNonce(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	consumer := testAddr("consumer")

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))

	// nonce unavailable before authorization
	_, err = k.IncreaseNonce(ctx, "vrf", accID, consumer)
	require.ErrorIs(t, err, types.ErrInvalidConsumer)

	require.NoError(t, k.AddConsumer(ctx, owner, accID, consumer))
	require.True(t, k.IsValidConsumer(ctx, accID, consumer))

	nonce, err := k.IncreaseNonce(ctx, "vrf", accID, consumer)
	require.NoError(t, err)
	require.Equal(t, uint64(1), nonce)
	nonce, err = k.IncreaseNonce(ctx, "vrf", accID, consumer)
	require.NoError(t, err)
	require.Equal(t, uint64(2), nonce)

	// re-adding must not reset the nonce
	require.NoError(t, k.AddConsumer(ctx, owner, accID, consumer))
	nonce, err = k.IncreaseNonce(ctx, "vrf", accID, consumer)
	require.NoError(t, err)
	require.Equal(t, uint64(3), nonce)

	require.NoError(t, k.RemoveConsumer(ctx, owner, accID, consumer))
	require.False(t, k.IsValidConsumer(ctx, accID, consumer))
	_, err = k.IncreaseNonce(ctx, "vrf", accID, consumer)
	require.ErrorIs(t, err, types.ErrInvalidConsumer)
}

func TestIncreaseNonceRequiresCoordinator(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	consumer := testAddr("consumer")

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, k.AddConsumer(ctx, owner, accID, consumer))

	_, err = k.IncreaseNonce(ctx, "vrf", accID, consumer)
	require.ErrorIs(t, err, types.ErrInvalidCoordinator)
}

func TestConsumerLimit(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)

	acc, err := k.GetAccount(ctx, accID)
	require.NoError(t, err)
	for i := 0; i < types.MaxConsumers; i++ {
		acc.Consumers = append(acc.Consumers, testAddr(string(rune('a'+i%26))+string(rune('a'+i/26))))
	}
	require.NoError(t, k.SetAccount(ctx, acc))

	err = k.AddConsumer(ctx, owner, accID, testAddr("overflow"))
	require.ErrorIs(t, err, types.ErrTooManyConsumers)
}

func TestOwnerTransferTwoPhase(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	next := testAddr("next")
	stranger := testAddr("stranger")

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)

	err = k.RequestOwnerTransfer(ctx, stranger, accID, next)
	require.ErrorIs(t, err, types.ErrMustBeAccountOwner)

	require.NoError(t, k.RequestOwnerTransfer(ctx, owner, accID, next))

	// still owned by the original owner until accepted
	acc, err := k.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, owner, acc.Owner)

	err = k.AcceptOwnerTransfer(ctx, stranger, accID)
	require.ErrorIs(t, err, types.ErrMustBeRequestedOwner)

	require.NoError(t, k.AcceptOwnerTransfer(ctx, next, accID))
	acc, err = k.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, next, acc.Owner)
	require.Empty(t, acc.RequestedOwner)
}

func TestCancelAccountRefundsBalance(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	recipient := testAddr("recipient")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	recipientAddr, _ := sdk.AccAddressFromBech32(recipient)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(300))

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, k.Deposit(ctx, owner, accID, sdkmath.NewInt(300)))

	require.NoError(t, k.CancelAccount(ctx, owner, accID, recipient))

	_, err = k.GetAccount(ctx, accID)
	require.ErrorIs(t, err, types.ErrInvalidAccount)
	balance := bk.GetBalance(ctx, recipientAddr, types.DefaultDenom)
	require.Equal(t, sdkmath.NewInt(300), balance.Amount)
}

func TestChargeFeeSplitsBurnProtocolOperator(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	operator := testAddr("operator")
	protocol := testAddr("protocol")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	operatorAddr, _ := sdk.AccAddressFromBech32(operator)
	protocolAddr, _ := sdk.AccAddressFromBech32(protocol)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	params := types.DefaultParams()
	params.ProtocolFeeRecipient = protocol
	require.NoError(t, k.SetParams(ctx, params))

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, k.Deposit(ctx, owner, accID, sdkmath.NewInt(1000)))
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))

	charged, err := k.ChargeFee(ctx, "vrf", accID, sdkmath.NewInt(100), operator)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(100), charged)

	// 50% burned, 5% protocol, 45% operator
	require.Equal(t, sdkmath.NewInt(5), bk.GetBalance(ctx, protocolAddr, types.DefaultDenom).Amount)
	require.Equal(t, sdkmath.NewInt(45), bk.GetBalance(ctx, operatorAddr, types.DefaultDenom).Amount)

	acc, err := k.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(900), acc.Balance)
	require.Equal(t, uint64(1), acc.ReqCount)
}

func TestChargeFeeRequiresCoordinator(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)

	_, err = k.ChargeFee(ctx, "vrf", accID, sdkmath.NewInt(10), testAddr("operator"))
	require.ErrorIs(t, err, types.ErrInvalidCoordinator)
}

func TestChargeFeeInsufficientBalance(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))

	_, err = k.ChargeFee(ctx, "vrf", accID, sdkmath.NewInt(10), testAddr("operator"))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestFiatSubscriptionConsumesQuotaWithoutDebit(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	operator := testAddr("operator")

	accID, err := k.CreateFiatSubscriptionAccount(ctx, owner, ctx.BlockTime().Unix(), 3600, 2)
	require.NoError(t, err)
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))

	for i := 0; i < 2; i++ {
		charged, err := k.ChargeFee(ctx, "vrf", accID, sdkmath.NewInt(100), operator)
		require.NoError(t, err)
		require.True(t, charged.IsZero())
	}

	// quota exhausted, balance path kicks in with an empty balance
	_, err = k.ChargeFee(ctx, "vrf", accID, sdkmath.NewInt(100), operator)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)

	acc, err := k.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, uint64(2), acc.ReqCount)
	require.Equal(t, uint64(2), acc.PeriodReqCount)
}

func TestSubscriptionPeriodRollsOver(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	operator := testAddr("operator")

	start := ctx.BlockTime().Unix()
	accID, err := k.CreateFiatSubscriptionAccount(ctx, owner, start, 3600, 1)
	require.NoError(t, err)
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))

	charged, err := k.ChargeFee(ctx, "vrf", accID, sdkmath.NewInt(100), operator)
	require.NoError(t, err)
	require.True(t, charged.IsZero())

	// next period, quota resets
	ctx = ctx.WithBlockTime(ctx.BlockTime().Add(2 * time.Hour))
	charged, err = k.ChargeFee(ctx, "vrf", accID, sdkmath.NewInt(100), operator)
	require.NoError(t, err)
	require.True(t, charged.IsZero())

	acc, err := k.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), acc.PeriodReqCount)
}

func TestNativeSubscriptionActivatesOnDeposit(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	accID, err := k.CreateSubscriptionAccount(ctx, owner, 0, 3600, 10, sdkmath.NewInt(500))
	require.NoError(t, err)

	err = k.Deposit(ctx, owner, accID, sdkmath.NewInt(400))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)

	require.NoError(t, k.Deposit(ctx, owner, accID, sdkmath.NewInt(600)))
	acc, err := k.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.True(t, acc.SubscriptionPaid)
	require.Equal(t, sdkmath.NewInt(100), acc.Balance)
}

func TestTemporaryAccountChargeConsumesAndDeletes(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	consumer := testAddr("consumer")
	operator := testAddr("operator")
	consumerAddr, _ := sdk.AccAddressFromBech32(consumer)
	testkeeper.FundAccount(t, ctx, bk, consumerAddr, sdkmath.NewInt(500))
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))

	accID, err := k.CreateTemporaryAccount(ctx, "vrf", consumer)
	require.NoError(t, err)
	require.NoError(t, k.DepositTemporary(ctx, "vrf", accID, consumer, sdkmath.NewInt(500)))

	// the whole escrow is consumed
	charged, err := k.ChargeFeeTemporary(ctx, "vrf", accID, operator)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(500), charged)

	_, err = k.GetAccount(ctx, accID)
	require.ErrorIs(t, err, types.ErrInvalidAccount)
}

func TestChargeFeeTemporaryRejectsRegularAccount(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)

	_, err = k.ChargeFeeTemporary(ctx, "vrf", accID, testAddr("operator"))
	require.ErrorIs(t, err, types.ErrInvalidAccountType)
}

func TestRefundTemporaryAccount(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	consumer := testAddr("consumer")
	consumerAddr, _ := sdk.AccAddressFromBech32(consumer)
	testkeeper.FundAccount(t, ctx, bk, consumerAddr, sdkmath.NewInt(500))
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))

	accID, err := k.CreateTemporaryAccount(ctx, "vrf", consumer)
	require.NoError(t, err)
	require.NoError(t, k.DepositTemporary(ctx, "vrf", accID, consumer, sdkmath.NewInt(500)))

	require.NoError(t, k.RefundTemporaryAccount(ctx, "vrf", accID, consumer))
	require.Equal(t, sdkmath.NewInt(500), bk.GetBalance(ctx, consumerAddr, types.DefaultDenom).Amount)
	_, err = k.GetAccount(ctx, accID)
	require.ErrorIs(t, err, types.ErrInvalidAccount)
}

func TestDiscountAccountFeeRatio(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")

	accID, err := k.CreateDiscountAccount(ctx, owner, 30)
	require.NoError(t, err)

	ratio, err := k.FeeRatio(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, uint32(30), ratio)

	regularID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	ratio, err = k.FeeRatio(ctx, regularID)
	require.NoError(t, err)
	require.Equal(t, uint32(100), ratio)

	_, err = k.CreateDiscountAccount(ctx, owner, 100)
	require.ErrorIs(t, err, types.ErrRatioOutOfBounds)
}

func TestCoordinatorRegistry(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)

	require.False(t, k.IsCoordinator(ctx, "vrf"))
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))
	require.True(t, k.IsCoordinator(ctx, "vrf"))

	err := k.AddCoordinator(ctx, "vrf")
	require.ErrorIs(t, err, types.ErrCoordinatorExists)

	require.NoError(t, k.RemoveCoordinator(ctx, "vrf"))
	require.False(t, k.IsCoordinator(ctx, "vrf"))

	err = k.RemoveCoordinator(ctx, "vrf")
	require.ErrorIs(t, err, types.ErrInvalidCoordinator)
}

func TestParamsValidation(t *testing.T) {
	k, _, ctx := testkeeper.PrepaymentKeeper(t)

	params := types.DefaultParams()
	params.BurnFeeRatio = 101
	err := k.SetParams(ctx, params)
	require.ErrorIs(t, err, types.ErrTooHighFeeRatio)

	params = types.DefaultParams()
	params.BurnFeeRatio = 70
	params.ProtocolFeeRatio = 40
	err = k.SetParams(ctx, params)
	require.ErrorIs(t, err, types.ErrRatioOutOfBounds)
}

func TestGenesisRoundTrip(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	consumer := testAddr("consumer")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(100))

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, k.Deposit(ctx, owner, accID, sdkmath.NewInt(100)))
	require.NoError(t, k.AddConsumer(ctx, owner, accID, consumer))
	require.NoError(t, k.AddCoordinator(ctx, "vrf"))

	exported := k.ExportGenesis(ctx)
	require.NoError(t, exported.Validate())

	k2, _, ctx2 := testkeeper.PrepaymentKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	acc, err := k2.GetAccount(ctx2, accID)
	require.NoError(t, err)
	require.Equal(t, owner, acc.Owner)
	require.Equal(t, sdkmath.NewInt(100), acc.Balance)
	require.True(t, k2.IsCoordinator(ctx2, "vrf"))
	require.Equal(t, k.GetNextAccID(ctx), k2.GetNextAccID(ctx2))
}

func TestModuleBalanceInvariant(t *testing.T) {
	k, bk, ctx := testkeeper.PrepaymentKeeper(t)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(100))

	accID, err := k.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, k.Deposit(ctx, owner, accID, sdkmath.NewInt(100)))

	_, broken := keeper.ModuleBalanceInvariant(*k)(ctx)
	require.False(t, broken)

	// corrupt the record so it claims more than the module holds
	acc, err := k.GetAccount(ctx, accID)
	require.NoError(t, err)
	acc.Balance = sdkmath.NewInt(10_000)
	require.NoError(t, k.SetAccount(ctx, acc))

	_, broken = keeper.ModuleBalanceInvariant(*k)(ctx)
	require.True(t, broken)
}
