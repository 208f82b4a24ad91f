package keeper_test

import (
	"fmt"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/orakon-chain/orakon/testutil/keeper"
	aggkeeper "github.com/orakon-chain/orakon/x/aggregator/keeper"
	"github.com/orakon-chain/orakon/x/aggregator/types"
)

func testAddr(name string) string {
	return sdk.AccAddress([]byte(name + "____________________")[:20]).String()
}

// setupOracles enables n oracles with the given submission counts and
// restart delay and returns their addresses.
func setupOracles(t *testing.T, k *aggkeeper.Keeper, ctx sdk.Context, n int, min, max, delay uint32) []string {
	oracles := make([]string, n)
	for i := range oracles {
		oracles[i] = testAddr(fmt.Sprintf("oracle%d", i))
	}
	require.NoError(t, k.ChangeOracles(ctx, nil, oracles, min, max, delay))
	return oracles
}

func TestChangeOracles(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 3, 2, 3, 0)
	require.Equal(t, uint32(3), k.OracleCount(ctx))

	config := k.GetConfig(ctx)
	require.Equal(t, uint32(2), config.MinSubmissionCount)
	require.Equal(t, uint32(3), config.MaxSubmissionCount)

	err := k.ChangeOracles(ctx, nil, []string{oracles[0]}, 2, 3, 0)
	require.ErrorIs(t, err, types.ErrOracleAlreadyEnabled)

	err = k.ChangeOracles(ctx, []string{testAddr("stranger")}, nil, 2, 3, 0)
	require.ErrorIs(t, err, types.ErrOracleNotEnabled)

	require.NoError(t, k.ChangeOracles(ctx, []string{oracles[2]}, nil, 2, 2, 0))
	require.Equal(t, uint32(2), k.OracleCount(ctx))

	oracle, found := k.GetOracle(ctx, oracles[2])
	require.True(t, found)
	require.False(t, oracle.Enabled)
}

func TestChangeOraclesConfigValidation(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := []string{testAddr("a"), testAddr("b")}

	err := k.ChangeOracles(ctx, nil, oracles, 3, 2, 0)
	require.ErrorIs(t, err, types.ErrMinSubmissionGtMaxSubmission)

	err = k.ChangeOracles(ctx, nil, oracles, 2, 3, 0)
	require.ErrorIs(t, err, types.ErrMaxSubmissionGtOracleNum)

	err = k.ChangeOracles(ctx, nil, oracles, 0, 0, 0)
	require.ErrorIs(t, err, types.ErrMinSubmissionZero)

	err = k.ChangeOracles(ctx, nil, oracles, 1, 2, 3)
	require.ErrorIs(t, err, types.ErrRestartDelayExceedOracleNum)

	// a delay equal to the oracle count is still valid
	require.NoError(t, k.ChangeOracles(ctx, nil, oracles, 1, 2, 2))
}

func TestChangeOraclesTooMany(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := make([]string, types.MaxOracleCount+1)
	for i := range oracles {
		oracles[i] = testAddr(fmt.Sprintf("o%03d", i))
	}
	err := k.ChangeOracles(ctx, nil, oracles, 1, 1, 0)
	require.ErrorIs(t, err, types.ErrTooManyOracles)

	require.NoError(t, k.ChangeOracles(ctx, nil, oracles[:types.MaxOracleCount], 1, 1, 0))
}

func TestSubmitMedianFlow(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 3, 2, 3, 0)

	// first submission opens the round but stays below min count
	answer, updated, err := k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(100))
	require.NoError(t, err)
	require.False(t, updated)
	require.Equal(t, uint64(1), k.LatestRoundID(ctx))

	round, found := k.GetRound(ctx, 1)
	require.True(t, found)
	require.False(t, round.Answered())
	require.Equal(t, oracles[0], round.StartedBy)

	// second submission reaches min count: floor((100+300)/2) = 200
	answer, updated, err = k.Submit(ctx, oracles[1], 1, sdkmath.NewInt(300))
	require.NoError(t, err)
	require.True(t, updated)
	require.Equal(t, sdkmath.NewInt(200), answer)

	// third submission recomputes: median(100, 300, 150) = 150
	answer, updated, err = k.Submit(ctx, oracles[2], 1, sdkmath.NewInt(150))
	require.NoError(t, err)
	require.True(t, updated)
	require.Equal(t, sdkmath.NewInt(150), answer)

	round, _ = k.GetRound(ctx, 1)
	require.True(t, round.Answered())
	require.Equal(t, uint32(3), round.SubmissionCount)

	latest, found := k.LatestRoundData(ctx)
	require.True(t, found)
	require.Equal(t, sdkmath.NewInt(150), latest.Answer)
}

func TestSubmitFloorMedianNegative(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 2, 2, 2, 0)

	config := k.GetConfig(ctx)
	config.MinSubmissionValue = sdkmath.NewInt(-1000)
	require.NoError(t, k.SetConfig(ctx, config))

	_, _, err := k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(-3))
	require.NoError(t, err)
	answer, updated, err := k.Submit(ctx, oracles[1], 1, sdkmath.NewInt(-2))
	require.NoError(t, err)
	require.True(t, updated)
	// floor(-2.5) = -3
	require.Equal(t, sdkmath.NewInt(-3), answer)
}

func TestSubmitDuplicateOracle(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 3, 2, 3, 0)

	_, _, err := k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(10))
	require.NoError(t, err)
	_, _, err = k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(20))
	require.ErrorIs(t, err, types.ErrOracleAlreadySubmitted)
}

func TestSubmitDisabledOracle(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 3, 2, 3, 0)
	require.NoError(t, k.ChangeOracles(ctx, []string{oracles[2]}, nil, 2, 2, 0))

	_, _, err := k.Submit(ctx, oracles[2], 1, sdkmath.NewInt(10))
	require.ErrorIs(t, err, types.ErrOracleNotEnabled)

	_, _, err = k.Submit(ctx, testAddr("stranger"), 1, sdkmath.NewInt(10))
	require.ErrorIs(t, err, types.ErrOracleNotEnabled)
}

func TestSubmitValueOutOfBounds(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 2, 1, 2, 0)

	config := k.GetConfig(ctx)
	config.MinSubmissionValue = sdkmath.ZeroInt()
	config.MaxSubmissionValue = sdkmath.NewInt(1000)
	require.NoError(t, k.SetConfig(ctx, config))

	_, _, err := k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(-1))
	require.ErrorIs(t, err, types.ErrInvalidSubmissionValue)
	_, _, err = k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(1001))
	require.ErrorIs(t, err, types.ErrInvalidSubmissionValue)
	_, _, err = k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(1000))
	require.NoError(t, err)
}

func TestSubmitStaleAndFutureRounds(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 3, 1, 3, 0)

	_, _, err := k.Submit(ctx, oracles[0], 2, sdkmath.NewInt(10))
	require.ErrorIs(t, err, types.ErrRoundNotAcceptingSubmission)

	_, _, err = k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(10))
	require.NoError(t, err)
	_, _, err = k.Submit(ctx, oracles[1], 2, sdkmath.NewInt(20))
	require.NoError(t, err)

	// round 1 superseded
	_, _, err = k.Submit(ctx, oracles[2], 1, sdkmath.NewInt(30))
	require.ErrorIs(t, err, types.ErrRoundNotAcceptingSubmission)
}

func TestSubmitPrevRoundNotSupersedable(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 3, 2, 3, 0)

	_, _, err := k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(10))
	require.NoError(t, err)

	// round 1 has one of two required submissions and has not timed out
	_, _, err = k.Submit(ctx, oracles[1], 2, sdkmath.NewInt(20))
	require.ErrorIs(t, err, types.ErrPrevRoundNotSupersedable)

	_, _, err = k.Submit(ctx, oracles[1], 1, sdkmath.NewInt(20))
	require.NoError(t, err)
	_, _, err = k.Submit(ctx, oracles[1], 2, sdkmath.NewInt(20))
	require.NoError(t, err)
}

func TestSubmitTimeoutSupersedesRound(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 3, 2, 3, 0)
	ctx = ctx.WithBlockTime(time.Unix(1_700_000_000, 0))

	_, _, err := k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(10))
	require.NoError(t, err)
	_, _, err = k.Submit(ctx, oracles[1], 2, sdkmath.NewInt(20))
	require.ErrorIs(t, err, types.ErrPrevRoundNotSupersedable)

	timeout := k.GetConfig(ctx).Timeout
	ctx = ctx.WithBlockTime(ctx.BlockTime().Add(time.Duration(timeout) * time.Second))
	_, _, err = k.Submit(ctx, oracles[1], 2, sdkmath.NewInt(20))
	require.NoError(t, err)
	require.Equal(t, uint64(2), k.LatestRoundID(ctx))
}

func TestSubmitRestartDelay(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 3, 1, 3, 1)

	_, _, err := k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(10))
	require.NoError(t, err)

	// oracle 0 started round 1 and must skip a round before starting again
	_, _, err = k.Submit(ctx, oracles[0], 2, sdkmath.NewInt(20))
	require.ErrorIs(t, err, types.ErrOracleNotEligible)

	_, _, err = k.Submit(ctx, oracles[1], 2, sdkmath.NewInt(20))
	require.NoError(t, err)
	_, _, err = k.Submit(ctx, oracles[2], 3, sdkmath.NewInt(30))
	require.NoError(t, err)

	// round 3 is past the delay window for oracle 0
	_, _, err = k.Submit(ctx, oracles[0], 4, sdkmath.NewInt(40))
	require.NoError(t, err)
}

func TestSubmitMaxSubmissionCount(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 3, 1, 2, 0)

	_, _, err := k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(10))
	require.NoError(t, err)
	_, _, err = k.Submit(ctx, oracles[1], 1, sdkmath.NewInt(20))
	require.NoError(t, err)
	_, _, err = k.Submit(ctx, oracles[2], 1, sdkmath.NewInt(30))
	require.ErrorIs(t, err, types.ErrRoundNotAcceptingSubmission)

	round, _ := k.GetRound(ctx, 1)
	require.Equal(t, uint32(2), round.SubmissionCount)
}

func TestRequestNewRound(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	oracles := setupOracles(t, k, ctx, 2, 1, 2, 0)
	requester := testAddr("requester")

	_, err := k.RequestNewRound(ctx, requester)
	require.ErrorIs(t, err, types.ErrUnauthorizedRequester)

	require.NoError(t, k.SetRequesterPermissions(ctx, requester, true, 1))

	roundID, err := k.RequestNewRound(ctx, requester)
	require.NoError(t, err)
	require.Equal(t, uint64(1), roundID)

	round, found := k.GetRound(ctx, 1)
	require.True(t, found)
	require.Equal(t, requester, round.StartedBy)

	// round 1 unanswered and not timed out
	_, err = k.RequestNewRound(ctx, requester)
	require.ErrorIs(t, err, types.ErrPrevRoundNotSupersedable)

	_, _, err = k.Submit(ctx, oracles[0], 1, sdkmath.NewInt(10))
	require.NoError(t, err)

	// answered now, but the requester delay still blocks round 2
	_, err = k.RequestNewRound(ctx, requester)
	require.ErrorIs(t, err, types.ErrUnauthorizedRequester)

	_, _, err = k.Submit(ctx, oracles[1], 2, sdkmath.NewInt(20))
	require.NoError(t, err)
	roundID, err = k.RequestNewRound(ctx, requester)
	require.NoError(t, err)
	require.Equal(t, uint64(3), roundID)
}

func TestSetRequesterPermissionsRevoke(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	setupOracles(t, k, ctx, 1, 1, 1, 0)
	requester := testAddr("requester")

	require.NoError(t, k.SetRequesterPermissions(ctx, requester, true, 0))
	// setting the same permissions again is a no-op
	require.NoError(t, k.SetRequesterPermissions(ctx, requester, true, 0))

	_, err := k.RequestNewRound(ctx, requester)
	require.NoError(t, err)

	require.NoError(t, k.SetRequesterPermissions(ctx, requester, false, 0))
	_, err = k.RequestNewRound(ctx, requester)
	require.ErrorIs(t, err, types.ErrUnauthorizedRequester)
}

func TestProxyPhases(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)

	_, err := k.ConfirmAggregator(ctx, "aggregator-v1")
	require.ErrorIs(t, err, types.ErrNoProposedAggregator)

	require.NoError(t, k.ProposeAggregator(ctx, "aggregator-v1"))
	_, err = k.ConfirmAggregator(ctx, "aggregator-v2")
	require.ErrorIs(t, err, types.ErrInvalidProposedAggregator)

	phaseID, err := k.ConfirmAggregator(ctx, "aggregator-v1")
	require.NoError(t, err)
	require.Equal(t, uint16(1), phaseID)

	// proposal is consumed
	_, found := k.GetProposedAggregator(ctx)
	require.False(t, found)

	require.NoError(t, k.ProposeAggregator(ctx, "aggregator-v2"))
	phaseID, err = k.ConfirmAggregator(ctx, "aggregator-v2")
	require.NoError(t, err)
	require.Equal(t, uint16(2), phaseID)

	// history stays immutable across phases
	phase1, found := k.GetPhaseAggregator(ctx, 1)
	require.True(t, found)
	require.Equal(t, "aggregator-v1", phase1.Aggregator)
	phase2, found := k.GetPhaseAggregator(ctx, 2)
	require.True(t, found)
	require.Equal(t, "aggregator-v2", phase2.Aggregator)
}

func TestAggregatorGenesisRoundTrip(t *testing.T) {
	k, ctx := testkeeper.AggregatorKeeper(t)
	setupOracles(t, k, ctx, 3, 2, 3, 1)
	require.NoError(t, k.SetRequesterPermissions(ctx, testAddr("requester"), true, 2))
	require.NoError(t, k.ProposeAggregator(ctx, "aggregator-v1"))
	_, err := k.ConfirmAggregator(ctx, "aggregator-v1")
	require.NoError(t, err)

	exported := k.ExportGenesis(ctx)
	require.NoError(t, exported.Validate())

	k2, ctx2 := testkeeper.AggregatorKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	require.Equal(t, uint32(3), k2.OracleCount(ctx2))
	require.Equal(t, uint16(1), k2.CurrentPhaseID(ctx2))
	config := k2.GetConfig(ctx2)
	require.Equal(t, uint32(2), config.MinSubmissionCount)
	requester, found := k2.GetRequester(ctx2, testAddr("requester"))
	require.True(t, found)
	require.True(t, requester.Authorized)
	require.Equal(t, uint32(2), requester.Delay)
}
