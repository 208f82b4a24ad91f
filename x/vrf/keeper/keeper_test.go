package keeper_test

import (
	"errors"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/orakon-chain/orakon/testutil/keeper"
	prepaymenttypes "github.com/orakon-chain/orakon/x/prepayment/types"
	"github.com/orakon-chain/orakon/x/shared/coordinator"
	vrfkeeper "github.com/orakon-chain/orakon/x/vrf/keeper"
	"github.com/orakon-chain/orakon/x/vrf/types"
)

const testKeyHash = "9f2353bde94264fe520dd6e0d9a5b5cbbf02b9435a1d6680ee60a1de39ba7265"

func testAddr(name string) string {
	return sdk.AccAddress([]byte(name + "____________________")[:20]).String()
}

func setFeeConfig(t *testing.T, k *vrfkeeper.Keeper, ctx sdk.Context, flatFee int64) {
	cfg := coordinator.DefaultConfig()
	cfg.FeeConfig.FulfillmentFlatFeeTier1 = sdkmath.NewInt(flatFee)
	cfg.FeeConfig.FulfillmentFlatFeeTier2 = sdkmath.NewInt(flatFee)
	cfg.FeeConfig.FulfillmentFlatFeeTier3 = sdkmath.NewInt(flatFee)
	cfg.FeeConfig.FulfillmentFlatFeeTier4 = sdkmath.NewInt(flatFee)
	cfg.FeeConfig.FulfillmentFlatFeeTier5 = sdkmath.NewInt(flatFee)
	require.NoError(t, k.SetConfig(ctx, cfg))
}

func TestRequestRandomWordsPrepaid(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	owner := testAddr("owner")
	consumer := testAddr("consumer")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))
	setFeeConfig(t, k, ctx, 100)

	accID, err := ledger.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, ledger.AddConsumer(ctx, owner, accID, consumer))
	require.NoError(t, ledger.Deposit(ctx, owner, accID, sdkmath.NewInt(500)))

	requestID, err := k.RequestRandomWords(ctx, consumer, testKeyHash, accID, 100_000, 3, sdkmath.Int{})
	require.NoError(t, err)
	require.NotEmpty(t, requestID)

	commitment, found := k.GetCommitment(ctx, requestID)
	require.True(t, found)
	require.Equal(t, accID, commitment.AccID)
	require.Equal(t, uint32(3), commitment.NumSubmission)
	require.Equal(t, testKeyHash, commitment.JobID)
	require.False(t, commitment.IsDirectPayment)

	preSeed, found := k.GetPreSeed(ctx, requestID)
	require.True(t, found)
	require.Equal(t, uint64(1), preSeed)

	acc, err := ledger.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), acc.PendingReqCount)
}

func TestRequestRandomWordsInvalidKeyHash(t *testing.T) {
	k, ledger, _, ctx := testkeeper.VRFKeeper(t)
	owner := testAddr("owner")

	accID, err := ledger.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, ledger.AddConsumer(ctx, owner, accID, owner))

	_, err = k.RequestRandomWords(ctx, owner, testKeyHash, accID, 100_000, 1, sdkmath.Int{})
	require.ErrorIs(t, err, types.ErrInvalidKeyHash)
}

func TestRequestRandomWordsNumWordsTooBig(t *testing.T) {
	k, _, _, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))

	maxWords := k.GetParams(ctx).MaxNumWords
	_, err := k.RequestRandomWords(ctx, testAddr("sender"), testKeyHash, 1, 100_000, maxWords+1, sdkmath.Int{})
	require.ErrorIs(t, err, types.ErrNumWordsTooBig)
}

func TestRequestRandomWordsGasLimitTooBig(t *testing.T) {
	k, ledger, _, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	owner := testAddr("owner")
	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))

	accID, err := ledger.CreateAccount(ctx, owner)
	require.NoError(t, err)

	maxGas := k.GetConfig(ctx).MaxGasLimit
	_, err = k.RequestRandomWords(ctx, owner, testKeyHash, accID, maxGas+1, 1, sdkmath.Int{})
	require.ErrorIs(t, err, coordinator.ErrGasLimitTooBig)
}

func TestRequestRandomWordsUnauthorizedConsumer(t *testing.T) {
	k, ledger, _, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	owner := testAddr("owner")
	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))

	accID, err := ledger.CreateAccount(ctx, owner)
	require.NoError(t, err)

	_, err = k.RequestRandomWords(ctx, testAddr("stranger"), testKeyHash, accID, 100_000, 1, sdkmath.Int{})
	require.ErrorIs(t, err, coordinator.ErrInvalidConsumer)
}

func TestRequestRandomWordsDirectPaymentTooLow(t *testing.T) {
	k, _, _, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))
	setFeeConfig(t, k, ctx, 100)

	_, err := k.RequestRandomWords(ctx, testAddr("sender"), testKeyHash, 0, 100_000, 1, sdkmath.NewInt(50))
	require.ErrorIs(t, err, coordinator.ErrInsufficientPayment)
}

func fulfillCommitment(requestID string, c coordinator.RequestCommitment, preSeed uint64, output string) (types.Proof, coordinator.RequestCommitment) {
	proof := types.Proof{
		KeyHash: c.JobID,
		PreSeed: preSeed,
		Output:  output,
	}
	return proof, c
}

func TestFulfillRandomWordsPrepaid(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	oracleAddr, _ := sdk.AccAddressFromBech32(oracle)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))
	setFeeConfig(t, k, ctx, 100)

	accID, err := ledger.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, ledger.AddConsumer(ctx, owner, accID, owner))
	require.NoError(t, ledger.Deposit(ctx, owner, accID, sdkmath.NewInt(500)))

	requestID, err := k.RequestRandomWords(ctx, owner, testKeyHash, accID, 100_000, 2, sdkmath.Int{})
	require.NoError(t, err)
	commitment, _ := k.GetCommitment(ctx, requestID)
	preSeed, _ := k.GetPreSeed(ctx, requestID)

	proof, provided := fulfillCommitment(requestID, commitment, preSeed, "deadbeef")
	payment, success, err := k.FulfillRandomWords(ctx, oracle, requestID, proof, provided)
	require.NoError(t, err)
	require.True(t, success)
	require.Equal(t, sdkmath.NewInt(100), payment)

	// commitment consumed exactly once
	_, _, err = k.FulfillRandomWords(ctx, oracle, requestID, proof, provided)
	require.ErrorIs(t, err, coordinator.ErrNoCorrespondingRequest)

	acc, err := ledger.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(400), acc.Balance)
	require.Equal(t, uint64(0), acc.PendingReqCount)
	require.Equal(t, uint64(1), acc.ReqCount)

	// operator received the 45% remainder of the 100 fee
	require.Equal(t, sdkmath.NewInt(45), bk.GetBalance(ctx, oracleAddr, prepaymenttypes.DefaultDenom).Amount)
}

func TestFulfillRandomWordsWrongOracle(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	other := testAddr("other")
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))
	require.NoError(t, k.RegisterProvingOracle(ctx, other, "another-key-hash"))
	setFeeConfig(t, k, ctx, 100)

	accID, err := ledger.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, ledger.AddConsumer(ctx, owner, accID, owner))
	require.NoError(t, ledger.Deposit(ctx, owner, accID, sdkmath.NewInt(500)))

	requestID, err := k.RequestRandomWords(ctx, owner, testKeyHash, accID, 100_000, 1, sdkmath.Int{})
	require.NoError(t, err)
	commitment, _ := k.GetCommitment(ctx, requestID)
	preSeed, _ := k.GetPreSeed(ctx, requestID)

	proof, provided := fulfillCommitment(requestID, commitment, preSeed, "deadbeef")

	// unregistered fulfiller
	_, _, err = k.FulfillRandomWords(ctx, testAddr("stranger"), requestID, proof, provided)
	require.ErrorIs(t, err, types.ErrNoSuchProvingKey)

	// registered but holding a different proving key
	_, _, err = k.FulfillRandomWords(ctx, other, requestID, proof, provided)
	require.ErrorIs(t, err, types.ErrNoSuchProvingKey)
}

func TestFulfillRandomWordsTamperedCommitment(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))
	setFeeConfig(t, k, ctx, 100)

	accID, err := ledger.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, ledger.AddConsumer(ctx, owner, accID, owner))
	require.NoError(t, ledger.Deposit(ctx, owner, accID, sdkmath.NewInt(500)))

	requestID, err := k.RequestRandomWords(ctx, owner, testKeyHash, accID, 100_000, 1, sdkmath.Int{})
	require.NoError(t, err)
	commitment, _ := k.GetCommitment(ctx, requestID)
	preSeed, _ := k.GetPreSeed(ctx, requestID)

	proof, provided := fulfillCommitment(requestID, commitment, preSeed, "deadbeef")
	provided.CallbackGasLimit = 999_999

	_, _, err = k.FulfillRandomWords(ctx, oracle, requestID, proof, provided)
	require.ErrorIs(t, err, coordinator.ErrIncorrectCommitment)

	// commitment still live after the failed attempt
	_, found := k.GetCommitment(ctx, requestID)
	require.True(t, found)
}

func TestDirectPaymentRoundTrip(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	sender := testAddr("sender")
	senderAddr, _ := sdk.AccAddressFromBech32(sender)
	testkeeper.FundAccount(t, ctx, bk, senderAddr, sdkmath.NewInt(1000))

	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))
	setFeeConfig(t, k, ctx, 100)

	requestID, err := k.RequestRandomWords(ctx, sender, testKeyHash, 0, 100_000, 1, sdkmath.NewInt(250))
	require.NoError(t, err)

	// only the estimate escrowed, the excess stays with the sender
	require.Equal(t, sdkmath.NewInt(900), bk.GetBalance(ctx, senderAddr, prepaymenttypes.DefaultDenom).Amount)

	commitment, found := k.GetCommitment(ctx, requestID)
	require.True(t, found)
	require.True(t, commitment.IsDirectPayment)
	preSeed, _ := k.GetPreSeed(ctx, requestID)

	proof, provided := fulfillCommitment(requestID, commitment, preSeed, "deadbeef")
	payment, success, err := k.FulfillRandomWords(ctx, oracle, requestID, proof, provided)
	require.NoError(t, err)
	require.True(t, success)
	require.Equal(t, sdkmath.NewInt(100), payment)

	// the temporary account is gone
	_, err = ledger.GetAccount(ctx, commitment.AccID)
	require.ErrorIs(t, err, prepaymenttypes.ErrInvalidAccount)
}

func TestCancelRequestRefundsDirectPayment(t *testing.T) {
	k, _, bk, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	sender := testAddr("sender")
	senderAddr, _ := sdk.AccAddressFromBech32(sender)
	testkeeper.FundAccount(t, ctx, bk, senderAddr, sdkmath.NewInt(1000))

	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))
	setFeeConfig(t, k, ctx, 100)

	requestID, err := k.RequestRandomWords(ctx, sender, testKeyHash, 0, 100_000, 1, sdkmath.NewInt(100))
	require.NoError(t, err)

	// only the original sender may cancel
	err = k.CancelRandomWordsRequest(ctx, testAddr("stranger"), requestID)
	require.ErrorIs(t, err, coordinator.ErrNotRequestOwner)

	require.NoError(t, k.CancelRandomWordsRequest(ctx, sender, requestID))
	require.Equal(t, sdkmath.NewInt(1000), bk.GetBalance(ctx, senderAddr, prepaymenttypes.DefaultDenom).Amount)

	_, found := k.GetCommitment(ctx, requestID)
	require.False(t, found)
}

type failingHooks struct{}

func (failingHooks) AfterRandomWordsFulfilled(ctx sdk.Context, requestID, consumer string, randomWords []uint64) error {
	return errors.New("consumer reverted")
}

func TestFulfillHookFailureKeepsSettlement(t *testing.T) {
	k, ledger, bk, ctx := testkeeper.VRFKeeper(t)
	k.SetHooks(failingHooks{})
	oracle := testAddr("oracle")
	owner := testAddr("owner")
	ownerAddr, _ := sdk.AccAddressFromBech32(owner)
	testkeeper.FundAccount(t, ctx, bk, ownerAddr, sdkmath.NewInt(1000))

	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))
	setFeeConfig(t, k, ctx, 100)

	accID, err := ledger.CreateAccount(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, ledger.AddConsumer(ctx, owner, accID, owner))
	require.NoError(t, ledger.Deposit(ctx, owner, accID, sdkmath.NewInt(500)))

	requestID, err := k.RequestRandomWords(ctx, owner, testKeyHash, accID, 100_000, 1, sdkmath.Int{})
	require.NoError(t, err)
	commitment, _ := k.GetCommitment(ctx, requestID)
	preSeed, _ := k.GetPreSeed(ctx, requestID)

	proof, provided := fulfillCommitment(requestID, commitment, preSeed, "deadbeef")
	payment, success, err := k.FulfillRandomWords(ctx, oracle, requestID, proof, provided)
	require.NoError(t, err)
	require.False(t, success)
	require.Equal(t, sdkmath.NewInt(100), payment)

	// fee settled despite the hook failure
	acc, err := ledger.GetAccount(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(400), acc.Balance)
}

func TestDeriveRandomWords(t *testing.T) {
	words, err := types.DeriveRandomWords("deadbeef", 4)
	require.NoError(t, err)
	require.Len(t, words, 4)

	// deterministic and index dependent
	again, err := types.DeriveRandomWords("deadbeef", 4)
	require.NoError(t, err)
	require.Equal(t, words, again)
	require.NotEqual(t, words[0], words[1])

	_, err = types.DeriveRandomWords("not-hex", 1)
	require.ErrorIs(t, err, types.ErrInvalidProof)
}

func TestVRFGenesisRoundTrip(t *testing.T) {
	k, _, _, ctx := testkeeper.VRFKeeper(t)
	oracle := testAddr("oracle")
	require.NoError(t, k.RegisterProvingOracle(ctx, oracle, testKeyHash))

	exported := k.ExportGenesis(ctx)
	require.NoError(t, exported.Validate())

	k2, _, _, ctx2 := testkeeper.VRFKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))
	require.True(t, k2.IsOracleRegistered(ctx2, oracle))
	kh, ok := k2.OracleKeyHash(ctx2, oracle)
	require.True(t, ok)
	require.Equal(t, testKeyHash, kh)
}
