package keeper

import (
	"fmt"
	"math/big"
	"sort"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/aggregator/types"
)

// roundSubmission is one oracle's value inside a round.
type roundSubmission struct {
	Oracle string      `json:"oracle"`
	Value  sdkmath.Int `json:"value"`
}

// Submit records an oracle's value for a round. Submitting to
// latestRound+1 opens the new round, which is only allowed once the
// previous round is supersedable and the oracle is past its restart
// delay. Each accepted submission at or above the minimum count
// recomputes the round answer as the floor median.
func (k Keeper) Submit(ctx sdk.Context, oracleAddr string, roundID uint64, value sdkmath.Int) (sdkmath.Int, bool, error) {
	oracle, found := k.GetOracle(ctx, oracleAddr)
	if !found || !oracle.Enabled {
		return sdkmath.Int{}, false, types.ErrOracleNotEnabled.Wrap(oracleAddr)
	}

	config := k.GetConfig(ctx)
	if value.LT(config.MinSubmissionValue) || value.GT(config.MaxSubmissionValue) {
		return sdkmath.Int{}, false, types.ErrInvalidSubmissionValue.Wrapf(
			"%s outside [%s, %s]", value, config.MinSubmissionValue, config.MaxSubmissionValue)
	}

	latest := k.LatestRoundID(ctx)
	var round types.Round
	switch {
	case roundID == latest+1:
		if latest > 0 {
			prev, _ := k.GetRound(ctx, latest)
			if !k.supersedable(ctx, config, prev) {
				return sdkmath.Int{}, false, types.ErrPrevRoundNotSupersedable.Wrapf("round %d still open", latest)
			}
		}
		if oracle.LastStartedRound > 0 && roundID <= oracle.LastStartedRound+uint64(config.RestartDelay) {
			return sdkmath.Int{}, false, types.ErrOracleNotEligible.Wrapf(
				"last started round %d, restart delay %d", oracle.LastStartedRound, config.RestartDelay)
		}
		round = k.openRound(ctx, roundID, oracleAddr)
		oracle.LastStartedRound = roundID
	case roundID == latest && latest > 0:
		round, _ = k.GetRound(ctx, roundID)
	default:
		return sdkmath.Int{}, false, types.ErrRoundNotAcceptingSubmission.Wrapf(
			"round %d, latest %d", roundID, latest)
	}

	if oracle.LastReportedRound >= roundID {
		return sdkmath.Int{}, false, types.ErrOracleAlreadySubmitted.Wrapf("round %d", roundID)
	}
	if round.SubmissionCount >= config.MaxSubmissionCount {
		return sdkmath.Int{}, false, types.ErrRoundNotAcceptingSubmission.Wrapf(
			"round %d already has %d submissions", roundID, round.SubmissionCount)
	}

	submissions := append(k.getSubmissions(ctx, roundID), roundSubmission{Oracle: oracleAddr, Value: value})
	round.SubmissionCount = uint32(len(submissions))
	oracle.LastReportedRound = roundID

	answerUpdated := false
	if round.SubmissionCount >= config.MinSubmissionCount {
		round.Answer = floorMedian(submissions)
		round.UpdatedAt = ctx.BlockTime().Unix()
		round.AnsweredInRound = roundID
		answerUpdated = true
	}

	k.setSubmissions(ctx, roundID, submissions)
	k.setRound(ctx, round)
	k.setOracle(ctx, oracle)

	k.metrics.SubmissionsTotal.Inc()
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmissionReceived,
			sdk.NewAttribute(types.AttributeKeyRoundID, fmt.Sprintf("%d", roundID)),
			sdk.NewAttribute(types.AttributeKeyOracle, oracleAddr),
			sdk.NewAttribute(types.AttributeKeyValue, value.String()),
		),
	)
	if answerUpdated {
		answer, _ := new(big.Float).SetInt(round.Answer.BigInt()).Float64()
		k.metrics.LatestAnswer.Set(answer)
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAnswerUpdated,
				sdk.NewAttribute(types.AttributeKeyRoundID, fmt.Sprintf("%d", roundID)),
				sdk.NewAttribute(types.AttributeKeyAnswer, round.Answer.String()),
			),
		)
	}
	return round.Answer, answerUpdated, nil
}

// RequestNewRound opens the next round on behalf of an authorized
// requester without submitting a value.
func (k Keeper) RequestNewRound(ctx sdk.Context, address string) (uint64, error) {
	requester, found := k.GetRequester(ctx, address)
	if !found || !requester.Authorized {
		return 0, types.ErrUnauthorizedRequester.Wrap(address)
	}

	config := k.GetConfig(ctx)
	latest := k.LatestRoundID(ctx)
	roundID := latest + 1
	if latest > 0 {
		prev, _ := k.GetRound(ctx, latest)
		if !k.supersedable(ctx, config, prev) {
			return 0, types.ErrPrevRoundNotSupersedable.Wrapf("round %d still open", latest)
		}
	}
	if requester.LastStartedRound > 0 && roundID <= requester.LastStartedRound+uint64(requester.Delay) {
		return 0, types.ErrUnauthorizedRequester.Wrapf(
			"must wait %d rounds after round %d", requester.Delay, requester.LastStartedRound)
	}

	k.openRound(ctx, roundID, address)
	requester.LastStartedRound = roundID
	k.setRequester(ctx, requester)
	return roundID, nil
}

func (k Keeper) openRound(ctx sdk.Context, roundID uint64, startedBy string) types.Round {
	round := types.Round{
		RoundID:   roundID,
		Answer:    sdkmath.ZeroInt(),
		StartedAt: ctx.BlockTime().Unix(),
		StartedBy: startedBy,
	}
	k.setRound(ctx, round)
	k.setLatestRoundID(ctx, roundID)

	k.metrics.RoundsTotal.Inc()
	k.metrics.LatestRound.Set(float64(roundID))
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeNewRound,
			sdk.NewAttribute(types.AttributeKeyRoundID, fmt.Sprintf("%d", roundID)),
			sdk.NewAttribute(types.AttributeKeyStartedBy, startedBy),
		),
	)
	return round
}

// supersedable reports whether a round may be left behind: it has been
// answered, or it timed out.
func (k Keeper) supersedable(ctx sdk.Context, config types.Config, round types.Round) bool {
	if round.Answered() {
		return true
	}
	if config.Timeout > 0 && ctx.BlockTime().Unix() >= round.StartedAt+config.Timeout {
		return true
	}
	return false
}

// floorMedian sorts the submissions ascending and takes the middle
// value; with an even count it takes the floor of the average of the
// two middle values.
func floorMedian(submissions []roundSubmission) sdkmath.Int {
	values := make([]sdkmath.Int, len(submissions))
	for i, submission := range submissions {
		values[i] = submission.Value
	}
	sort.Slice(values, func(i, j int) bool { return values[i].LT(values[j]) })

	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	sum := new(big.Int).Add(values[mid-1].BigInt(), values[mid].BigInt())
	return sdkmath.NewIntFromBigInt(sum.Div(sum, big.NewInt(2)))
}
