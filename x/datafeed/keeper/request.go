package keeper

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/datafeed/types"
	"github.com/orakon-chain/orakon/x/shared/coordinator"
)

// RequestData opens a typed data request against a registered job. With
// a positive payment the request bills directly through a temporary
// account, the fee estimate escrowed and any excess staying with the
// sender.
func (k Keeper) RequestData(
	ctx sdk.Context,
	sender, jobID string,
	accID uint64,
	callbackGasLimit uint64,
	numSubmission uint32,
	payment sdkmath.Int,
) (string, error) {
	if err := k.ValidateNumSubmission(ctx, jobID, numSubmission); err != nil {
		return "", err
	}

	isDirectPayment := !payment.IsNil() && payment.IsPositive()
	if isDirectPayment {
		estimate := k.EstimateFee(ctx, numSubmission)
		if payment.LT(estimate) {
			return "", coordinator.ErrInsufficientPayment.Wrapf("%s < %s", payment, estimate)
		}
		tempID, err := k.Ledger().CreateTemporaryAccount(ctx, types.ModuleName, sender)
		if err != nil {
			return "", err
		}
		// only the estimate is escrowed, the excess stays with the sender
		if err := k.Ledger().DepositTemporary(ctx, types.ModuleName, tempID, sender, estimate); err != nil {
			return "", err
		}
		accID = tempID
	}

	requestID, _, err := k.CreateRequest(ctx, coordinator.RequestSpec{
		AccID:            accID,
		Consumer:         sender,
		CallbackGasLimit: callbackGasLimit,
		NumSubmission:    numSubmission,
		JobID:            jobID,
		IsDirectPayment:  isDirectPayment,
	})
	if err != nil {
		return "", err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDataRequested,
		sdk.NewAttribute(types.AttributeKeyRequestID, requestID),
		sdk.NewAttribute(types.AttributeKeyJobID, jobID),
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
		sdk.NewAttribute(types.AttributeKeyNumSubmission, fmt.Sprintf("%d", numSubmission)),
		sdk.NewAttribute(types.AttributeKeySender, sender),
	))
	paymentLabel := "account"
	if isDirectPayment {
		paymentLabel = "direct"
	}
	k.metrics.RequestsTotal.WithLabelValues(paymentLabel).Inc()
	k.Logger(ctx).Info("data requested",
		"request_id", requestID, "job_id", jobID, "acc_id", accID, "num_submission", numSubmission)
	return requestID, nil
}

// CancelDataRequest withdraws a pending request and drops any partial
// submissions. Direct payment escrow is refunded to the sender.
func (k Keeper) CancelDataRequest(ctx sdk.Context, sender, requestID string) error {
	commitment, err := k.CancelRequest(ctx, requestID, sender)
	if err != nil {
		return err
	}
	k.deleteSubmissions(ctx, requestID)

	if commitment.IsDirectPayment {
		if err := k.Ledger().RefundTemporaryAccount(ctx, types.ModuleName, commitment.AccID, sender); err != nil {
			return err
		}
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRequestCanceled,
		sdk.NewAttribute(types.AttributeKeyRequestID, requestID),
		sdk.NewAttribute(types.AttributeKeySender, sender),
	))
	return nil
}
