package keeper

import (
	"strconv"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/shared/coordinator"
	"github.com/orakon-chain/orakon/x/vrf/types"
)

// FulfillRandomWords settles a randomness request. The oracle must hold
// the proving key the request named, the reconstructed commitment must
// match the stored one, and the pre-seed in the proof must be the one
// handed out at request time. Fee settlement always happens; a failing
// consumer hook only flips the success flag on the emitted event.
func (k Keeper) FulfillRandomWords(
	ctx sdk.Context,
	oracle, requestID string,
	proof types.Proof,
	provided coordinator.RequestCommitment,
) (sdkmath.Int, bool, error) {
	keyHash, registered := k.OracleKeyHash(ctx, oracle)
	if !registered || keyHash != proof.KeyHash {
		return sdkmath.Int{}, false, types.ErrNoSuchProvingKey.Wrapf("oracle %s key hash %s", oracle, proof.KeyHash)
	}

	if _, found := k.GetCommitment(ctx, requestID); !found {
		return sdkmath.Int{}, false, coordinator.ErrNoCorrespondingRequest.Wrap(requestID)
	}
	preSeed, found := k.GetPreSeed(ctx, requestID)
	if !found || preSeed != proof.PreSeed {
		return sdkmath.Int{}, false, types.ErrInvalidProof.Wrapf("pre-seed mismatch for request %s", requestID)
	}

	provided.JobID = proof.KeyHash
	if err := k.ConsumeCommitment(ctx, requestID, provided); err != nil {
		return sdkmath.Int{}, false, err
	}
	k.deletePreSeed(ctx, requestID)

	var payment sdkmath.Int
	var err error
	if provided.IsDirectPayment {
		payment, err = k.Ledger().ChargeFeeTemporary(ctx, types.ModuleName, provided.AccID, oracle)
	} else {
		var fee sdkmath.Int
		fee, err = k.ComputeServiceFee(ctx, provided.AccID, 1)
		if err == nil {
			payment, err = k.Ledger().ChargeFee(ctx, types.ModuleName, provided.AccID, fee, oracle)
		}
	}
	if err != nil {
		return sdkmath.Int{}, false, err
	}

	words, err := types.DeriveRandomWords(proof.Output, provided.NumSubmission)
	if err != nil {
		return sdkmath.Int{}, false, err
	}

	success := true
	if k.hooks != nil {
		if hookErr := k.hooks.AfterRandomWordsFulfilled(ctx, requestID, provided.Sender, words); hookErr != nil {
			success = false
			k.Logger(ctx).Error("random words consumer hook failed",
				"request_id", requestID, "consumer", provided.Sender, "error", hookErr)
		}
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRandomWordsFulfilled,
		sdk.NewAttribute(types.AttributeKeyRequestID, requestID),
		sdk.NewAttribute(types.AttributeKeyOracle, oracle),
		sdk.NewAttribute(types.AttributeKeyPayment, payment.String()),
		sdk.NewAttribute(types.AttributeKeySuccess, strconv.FormatBool(success)),
	))
	k.metrics.FulfillmentsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
	k.Logger(ctx).Info("random words fulfilled",
		"request_id", requestID, "oracle", oracle,
		"payment", payment.String(), "success", success)
	return payment, success, nil
}

// RegisterProvingOracle adds an oracle with its proving key and keeps
// the oracle gauge in step.
func (k Keeper) RegisterProvingOracle(ctx sdk.Context, oracle, keyHash string) error {
	if err := k.RegisterOracle(ctx, oracle, keyHash); err != nil {
		return err
	}
	k.metrics.RegisteredOracles.Set(float64(k.OracleCount(ctx)))

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeOracleRegistered,
		sdk.NewAttribute(types.AttributeKeyOracle, oracle),
		sdk.NewAttribute(types.AttributeKeyKeyHash, keyHash),
	))
	return nil
}

// DeregisterProvingOracle removes an oracle and keeps the oracle gauge
// in step.
func (k Keeper) DeregisterProvingOracle(ctx sdk.Context, oracle string) error {
	if err := k.DeregisterOracle(ctx, oracle); err != nil {
		return err
	}
	k.metrics.RegisteredOracles.Set(float64(k.OracleCount(ctx)))

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeOracleDeregistered,
		sdk.NewAttribute(types.AttributeKeyOracle, oracle),
	))
	return nil
}
