package keeper_test

import (
	"fmt"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/orakon-chain/orakon/testutil/keeper"
	datafeedkeeper "github.com/orakon-chain/orakon/x/datafeed/keeper"
	"github.com/orakon-chain/orakon/x/datafeed/types"
	prepaymenttypes "github.com/orakon-chain/orakon/x/prepayment/types"
	"github.com/orakon-chain/orakon/x/shared/coordinator"
)

func testAddr(name string) string {
	return sdk.AccAddress([]byte(name + "____________________")[:20]).String()
}

func setFeeConfig(t *testing.T, k *datafeedkeeper.Keeper, ctx sdk.Context, flatFee int64) {
	cfg := coordinator.DefaultConfig()
	cfg.FeeConfig.FulfillmentFlatFeeTier1 = sdkmath.NewInt(flatFee)
	cfg.FeeConfig.FulfillmentFlatFeeTier2 = sdkmath.NewInt(flatFee)
	cfg.FeeConfig.FulfillmentFlatFeeTier3 = sdkmath.NewInt(flatFee)
	cfg.FeeConfig.FulfillmentFlatFeeTier4 = sdkmath.NewInt(flatFee)
	cfg.FeeConfig.FulfillmentFlatFeeTier5 = sdkmath.NewInt(flatFee)
	require.NoError(t, k.SetConfig(ctx, cfg))
}

func registerOracles(t *testing.T, k *datafeedkeeper.Keeper, ctx sdk.Context, n int) []string {
	oracles := make([]string, n)
	for i := range oracles {
		oracles[i] = testAddr(fmt.Sprintf("oracle%02d", i))
		require.NoError(t, k.RegisterOracle(ctx, oracles[i], ""))
	}
	return oracles
}

func TestValidateNumSubmission(t *testing.T) {
	k, _, _, ctx := testkeeper.DatafeedKeeper(t)
	registerOracles(t, k, ctx, 8)

	require.ErrorIs(t, k.ValidateNumSubmission(ctx, "no-such-job", 1), types.ErrInvalidJobID)
	require.ErrorIs(t, k.ValidateNumSubmission(ctx, "uint128", 0), types.ErrInvalidNumSubmission)

	// numeric jobs capped at half the oracle count
	require.NoError(t, k.ValidateNumSubmission(ctx, "uint128", 4))
	require.ErrorIs(t, k.ValidateNumSubmission(ctx, "uint128", 5), types.ErrInvalidNumSubmission)

	// bool jobs need an even count
	require.NoError(t, k.ValidateNumSubmission(ctx, "bool", 4))
	require.ErrorIs(t, k.ValidateNumSubmission(ctx, "bool", 3), types.ErrInvalidNumSubmission)

	// opaque payloads have no oracle-count cap
	require.NoError(t, k.ValidateNumSubmission(ctx, "string", 7))
	require.NoError(t, k.ValidateNumSubmission(ctx, "bytes32", 7))
}

func TestRegisterJob(t *testing.T) {
	k, _, _, ctx := testkeeper.DatafeedKeeper(t)

	err := k.RegisterJob(ctx, types.Job{JobID: "uint128", ResponseType: types.ResponseUint128})
	require.ErrorIs(t, err, types.ErrJobExists)

	require.NoError(t, k.RegisterJob(ctx, types.Job{JobID: "btc-usd", ResponseType: types.ResponseUint128}))
	job, found := k.GetJob(ctx, "btc-usd")
	require.True(t, found)
	require.Equal(t, types.ResponseUint128, job.ResponseType)
}

func openRequest(t *testing.T, k *datafeedkeeper.Keeper, ledger interface {
	CreateAccount(ctx sdk.Context, owner string) (uint64, error)
	AddConsumer(ctx sdk.Context, sender string, accID uint64, consumer string) error
	Deposit(ctx sdk.Context, sender string, accID uint64, amount sdkmath.Int) error
}, ctx sdk.Context, owner, jobID string, numSubmission uint32) (uint64, string, coordinator.RequestCommitment) {
	t.Helper()
	accID, err := ledger.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, ledger.AddConsumer(ctx, owner, accID, owner))
	require.NoError(t, ledger.Deposit(ctx, owner, accID, sdkmath.NewInt(1000)))

	requestID, err := k.RequestData(ctx, owner, jobID, accID, 100_000, numSubmission, sdkmath.Int{})
	require.NoError(t, err)
	commitment, found := k.GetCommitment(ctx, requestID)
	require.True(t, found)
	return accID, requestID, commitment
}

func TestSubmitMedianAggregation(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	oracles := registerOracles(t, k, ctx, 6)
	setFeeConfig(t, k, ctx, 10)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	accID, requestID, commitment := openRequest(t, k, ledger, ctx, owner, "uint128", 3)

	values := []string{"100", "300", "200"}
	for i := 0; i < 2; i++ {
		fulfilled, err := k.SubmitData(ctx, oracles[i], requestID, values[i], commitment)
		require.NoError(t, err)
		require.False(t, fulfilled)
	}

	events := ctx.EventManager().Events()
	fulfilled, err := k.SubmitData(ctx, oracles[2], requestID, values[2], commitment)
	require.NoError(t, err)
	require.True(t, fulfilled)

	// median of {100, 200, 300}
	var value string
	for _, ev := range ctx.EventManager().Events()[len(events):] {
		if ev.Type == types.EventTypeDataRequestFulfilled {
			for _, attr := range ev.Attributes {
				if attr.Key == types.AttributeKeyValue {
					value = attr.Value
				}
			}
		}
	}
	require.Equal(t, "200", value)

	// fee settled: 10 per submission, 3 submissions
	acc, err := ledger.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(970), acc.Balance)
	require.Equal(t, uint64(0), acc.PendingReqCount)

	// commitment and submissions gone
	_, found := k.GetCommitment(ctx, requestID)
	require.False(t, found)
	require.Empty(t, k.GetSubmissions(ctx, requestID))
}

func TestSubmitBoolMajority(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	oracles := registerOracles(t, k, ctx, 8)
	setFeeConfig(t, k, ctx, 10)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	_, requestID, commitment := openRequest(t, k, ledger, ctx, owner, "bool", 4)

	votes := []string{"true", "true", "true", "false"}
	var fulfilled bool
	var err error
	for i, vote := range votes {
		fulfilled, err = k.SubmitData(ctx, oracles[i], requestID, vote, commitment)
		require.NoError(t, err)
	}
	require.True(t, fulfilled)

	var value string
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type == types.EventTypeDataRequestFulfilled {
			for _, attr := range ev.Attributes {
				if attr.Key == types.AttributeKeyValue {
					value = attr.Value
				}
			}
		}
	}
	require.Equal(t, "true", value)
}

func TestSubmitFirstWinsForOpaqueTypes(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	oracles := registerOracles(t, k, ctx, 4)
	setFeeConfig(t, k, ctx, 10)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	_, requestID, commitment := openRequest(t, k, ledger, ctx, owner, "string", 2)

	_, err := k.SubmitData(ctx, oracles[0], requestID, "alpha", commitment)
	require.NoError(t, err)
	fulfilled, err := k.SubmitData(ctx, oracles[1], requestID, "beta", commitment)
	require.NoError(t, err)
	require.True(t, fulfilled)

	var value string
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type == types.EventTypeDataRequestFulfilled {
			for _, attr := range ev.Attributes {
				if attr.Key == types.AttributeKeyValue {
					value = attr.Value
				}
			}
		}
	}
	require.Equal(t, "alpha", value)
}

func TestSubmitRejectsDuplicateOracle(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	oracles := registerOracles(t, k, ctx, 4)
	setFeeConfig(t, k, ctx, 10)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	_, requestID, commitment := openRequest(t, k, ledger, ctx, owner, "uint128", 2)

	_, err := k.SubmitData(ctx, oracles[0], requestID, "100", commitment)
	require.NoError(t, err)
	_, err = k.SubmitData(ctx, oracles[0], requestID, "200", commitment)
	require.ErrorIs(t, err, types.ErrOracleAlreadySubmitted)
}

func TestSubmitRejectsUnregisteredOracle(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	registerOracles(t, k, ctx, 4)
	setFeeConfig(t, k, ctx, 10)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	_, requestID, commitment := openRequest(t, k, ledger, ctx, owner, "uint128", 2)

	_, err := k.SubmitData(ctx, testAddr("stranger"), requestID, "100", commitment)
	require.ErrorIs(t, err, coordinator.ErrNoSuchOracle)
}

func TestSubmitRejectsBadValue(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	oracles := registerOracles(t, k, ctx, 4)
	setFeeConfig(t, k, ctx, 10)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	_, requestID, commitment := openRequest(t, k, ledger, ctx, owner, "uint128", 2)

	_, err := k.SubmitData(ctx, oracles[0], requestID, "not-a-number", commitment)
	require.ErrorIs(t, err, types.ErrInvalidResponseValue)
	_, err = k.SubmitData(ctx, oracles[0], requestID, "-5", commitment)
	require.ErrorIs(t, err, types.ErrInvalidResponseValue)
}

func TestSubmitRejectsTamperedCommitment(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	oracles := registerOracles(t, k, ctx, 4)
	setFeeConfig(t, k, ctx, 10)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	_, requestID, commitment := openRequest(t, k, ledger, ctx, owner, "uint128", 2)

	tampered := commitment
	tampered.AccID = commitment.AccID + 1
	_, err := k.SubmitData(ctx, oracles[0], requestID, "100", tampered)
	require.ErrorIs(t, err, coordinator.ErrIncorrectCommitment)

	_, err = k.SubmitData(ctx, oracles[0], requestID, "100", commitment)
	require.NoError(t, err)
}

func TestPendingRequestExists(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	oracles := registerOracles(t, k, ctx, 4)
	setFeeConfig(t, k, ctx, 10)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	accID, requestID, commitment := openRequest(t, k, ledger, ctx, owner, "uint128", 1)
	require.True(t, k.PendingRequestExists(ctx, owner, accID, 1))

	fulfilled, err := k.SubmitData(ctx, oracles[0], requestID, "100", commitment)
	require.NoError(t, err)
	require.True(t, fulfilled)
	require.False(t, k.PendingRequestExists(ctx, owner, accID, 1))
}

func TestCancelDataRequestDropsSubmissions(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	oracles := registerOracles(t, k, ctx, 4)
	setFeeConfig(t, k, ctx, 10)
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	_, requestID, commitment := openRequest(t, k, ledger, ctx, owner, "uint128", 2)

	_, err := k.SubmitData(ctx, oracles[0], requestID, "100", commitment)
	require.NoError(t, err)
	require.Len(t, k.GetSubmissions(ctx, requestID), 1)

	require.NoError(t, k.CancelDataRequest(ctx, owner, requestID))
	require.Empty(t, k.GetSubmissions(ctx, requestID))
	_, found := k.GetCommitment(ctx, requestID)
	require.False(t, found)
}

func TestDatafeedDirectPayment(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.DatafeedKeeper(t)
	oracles := registerOracles(t, k, ctx, 4)
	setFeeConfig(t, k, ctx, 10)
	sender := testAddr("sender")
	senderAddr, _ := sdk.AccAddressFromBech32(sender)
	testkeeper.FundAccount(t, ctx, bk, senderAddr, sdkmath.NewInt(1000))

	requestID, err := k.RequestData(ctx, sender, "uint128", 0, 100_000, 2, sdkmath.NewInt(50))
	require.NoError(t, err)

	// estimate 10 * 2 = 20 escrowed
	require.Equal(t, sdkmath.NewInt(980), bk.GetBalance(ctx, senderAddr, prepaymenttypes.DefaultDenom).Amount)

	commitment, found := k.GetCommitment(ctx, requestID)
	require.True(t, found)

	_, err = k.SubmitData(ctx, oracles[0], requestID, "100", commitment)
	require.NoError(t, err)
	fulfilled, err := k.SubmitData(ctx, oracles[1], requestID, "200", commitment)
	require.NoError(t, err)
	require.True(t, fulfilled)

	// temporary account fully consumed and deleted
	_, err = ledger.GetAccount(ctx, commitment.AccID)
	require.ErrorIs(t, err, prepaymenttypes.ErrInvalidAccount)
}

func TestAggregateMedianConvention(t *testing.T) {
	// odd count: middle element
	require.Equal(t, "11", types.ResponseUint128.Aggregate([]string{"10", "12", "11"}))
	// even count: floor of the average of the two middle values
	require.Equal(t, "10", types.ResponseUint128.Aggregate([]string{"10", "11"}))
}
