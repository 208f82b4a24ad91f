package keeper

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/shared/coordinator"
	"github.com/orakon-chain/orakon/x/vrf/types"
)

// RequestRandomWords opens a randomness request. With a positive
// payment the request bills directly: a temporary account is created
// and the fee estimate escrowed, any excess staying with the sender.
// Otherwise the prepayment account identified by accID pays at
// fulfillment time.
func (k Keeper) RequestRandomWords(
	ctx sdk.Context,
	sender, keyHash string,
	accID uint64,
	callbackGasLimit uint64,
	numWords uint32,
	payment sdkmath.Int,
) (string, error) {
	params := k.GetParams(ctx)
	if numWords > params.MaxNumWords {
		return "", types.ErrNumWordsTooBig.Wrapf("%d > %d", numWords, params.MaxNumWords)
	}
	if !k.HasKeyHash(ctx, keyHash) {
		return "", types.ErrInvalidKeyHash.Wrap(keyHash)
	}

	isDirectPayment := !payment.IsNil() && payment.IsPositive()
	if isDirectPayment {
		estimate := k.EstimateFee(ctx, 1)
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

	preSeed := k.NextRequestCounter(ctx)
	requestID, commitment, err := k.CreateRequest(ctx, coordinator.RequestSpec{
		AccID:            accID,
		Consumer:         sender,
		CallbackGasLimit: callbackGasLimit,
		NumSubmission:    numWords,
		JobID:            keyHash,
		IsDirectPayment:  isDirectPayment,
	})
	if err != nil {
		return "", err
	}
	k.setPreSeed(ctx, requestID, preSeed)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRandomWordsRequested,
		sdk.NewAttribute(types.AttributeKeyRequestID, requestID),
		sdk.NewAttribute(types.AttributeKeyKeyHash, keyHash),
		sdk.NewAttribute(types.AttributeKeyAccID, fmt.Sprintf("%d", accID)),
		sdk.NewAttribute(types.AttributeKeyPreSeed, fmt.Sprintf("%d", preSeed)),
		sdk.NewAttribute(types.AttributeKeyNumWords, fmt.Sprintf("%d", numWords)),
		sdk.NewAttribute(types.AttributeKeySender, sender),
		sdk.NewAttribute(types.AttributeKeyBlockNumber, fmt.Sprintf("%d", commitment.BlockNum)),
	))

	paymentLabel := "account"
	if isDirectPayment {
		paymentLabel = "direct"
	}
	k.metrics.RequestsTotal.WithLabelValues(paymentLabel).Inc()
	k.Logger(ctx).Info("random words requested",
		"request_id", requestID, "key_hash", keyHash, "acc_id", accID, "num_words", numWords)
	return requestID, nil
}

// CancelRandomWordsRequest withdraws a pending request. Direct payment
// escrow is refunded to the sender.
func (k Keeper) CancelRandomWordsRequest(ctx sdk.Context, sender, requestID string) error {
	commitment, err := k.CancelRequest(ctx, requestID, sender)
	if err != nil {
		return err
	}
	k.deletePreSeed(ctx, requestID)

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
	k.metrics.CancellationsTotal.Inc()
	return nil
}
