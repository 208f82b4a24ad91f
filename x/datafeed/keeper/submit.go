package keeper

import (
	"strconv"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/datafeed/types"
	"github.com/orakon-chain/orakon/x/shared/coordinator"
)

// SubmitData records one oracle's response for a request. Each oracle
// may submit at most once per request. When the submission count named
// in the commitment is reached the responses are aggregated, the
// commitment consumed, the fee settled and the consumer hook invoked.
// The bool result reports whether this submission completed the
// request.
func (k Keeper) SubmitData(
	ctx sdk.Context,
	oracle, requestID, value string,
	provided coordinator.RequestCommitment,
) (bool, error) {
	if !k.IsOracleRegistered(ctx, oracle) {
		return false, coordinator.ErrNoSuchOracle.Wrap(oracle)
	}

	stored, found := k.GetCommitment(ctx, requestID)
	if !found {
		return false, coordinator.ErrNoCorrespondingRequest.Wrap(requestID)
	}
	if !stored.Equal(provided) {
		return false, coordinator.ErrIncorrectCommitment.Wrap(requestID)
	}

	job, found := k.GetJob(ctx, stored.JobID)
	if !found {
		return false, types.ErrInvalidJobID.Wrap(stored.JobID)
	}
	if err := job.ResponseType.ValidateValue(value); err != nil {
		return false, err
	}

	subs := k.GetSubmissions(ctx, requestID)
	for _, sub := range subs {
		if sub.Oracle == oracle {
			return false, types.ErrOracleAlreadySubmitted.Wrapf("oracle %s request %s", oracle, requestID)
		}
	}
	subs = append(subs, Submission{Oracle: oracle, Value: value})
	k.metrics.SubmissionsTotal.Inc()

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDataSubmitted,
		sdk.NewAttribute(types.AttributeKeyRequestID, requestID),
		sdk.NewAttribute(types.AttributeKeyOracle, oracle),
		sdk.NewAttribute(types.AttributeKeyValue, value),
	))

	if uint32(len(subs)) < stored.NumSubmission {
		if err := k.setSubmissions(ctx, requestID, subs); err != nil {
			return false, err
		}
		return false, nil
	}

	return true, k.fulfillDataRequest(ctx, oracle, requestID, job, stored, subs)
}

// fulfillDataRequest aggregates the collected responses and settles the
// request. The final submitter is paid as the operator.
func (k Keeper) fulfillDataRequest(
	ctx sdk.Context,
	operator, requestID string,
	job types.Job,
	stored coordinator.RequestCommitment,
	subs []Submission,
) error {
	if err := k.ConsumeCommitment(ctx, requestID, stored); err != nil {
		return err
	}
	k.deleteSubmissions(ctx, requestID)

	values := make([]string, 0, len(subs))
	for _, sub := range subs {
		values = append(values, sub.Value)
	}
	result := job.ResponseType.Aggregate(values)

	var payment sdkmath.Int
	var err error
	if stored.IsDirectPayment {
		payment, err = k.Ledger().ChargeFeeTemporary(ctx, types.ModuleName, stored.AccID, operator)
	} else {
		var fee sdkmath.Int
		fee, err = k.ComputeServiceFee(ctx, stored.AccID, stored.NumSubmission)
		if err == nil {
			payment, err = k.Ledger().ChargeFee(ctx, types.ModuleName, stored.AccID, fee, operator)
		}
	}
	if err != nil {
		return err
	}

	success := true
	if k.hooks != nil {
		if hookErr := k.hooks.AfterDataRequestFulfilled(ctx, requestID, stored.Sender, job.ResponseType, result); hookErr != nil {
			success = false
			k.Logger(ctx).Error("data request consumer hook failed",
				"request_id", requestID, "consumer", stored.Sender, "error", hookErr)
		}
	}

	k.metrics.FulfillmentsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDataRequestFulfilled,
		sdk.NewAttribute(types.AttributeKeyRequestID, requestID),
		sdk.NewAttribute(types.AttributeKeyResponseType, string(job.ResponseType)),
		sdk.NewAttribute(types.AttributeKeyValue, result),
		sdk.NewAttribute(types.AttributeKeyOracle, operator),
		sdk.NewAttribute(types.AttributeKeyPayment, payment.String()),
		sdk.NewAttribute(types.AttributeKeySuccess, strconv.FormatBool(success)),
	))
	k.Logger(ctx).Info("data request fulfilled",
		"request_id", requestID, "type", string(job.ResponseType),
		"value", result, "payment", payment.String(), "success", success)
	return nil
}
