package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// VRFHooks defines the consumer callback surface of the vrf module.
// Fulfillment never reverts on hook failure; a failing hook only flips
// the success flag on the fulfillment event.
type VRFHooks interface {
	// AfterRandomWordsFulfilled is called once per fulfilled request
	// with the derived random words.
	AfterRandomWordsFulfilled(ctx sdk.Context, requestID, consumer string, randomWords []uint64) error
}

// MultiVRFHooks combines multiple vrf hooks into one.
type MultiVRFHooks []VRFHooks

// NewMultiVRFHooks creates a MultiVRFHooks from a list of hooks.
func NewMultiVRFHooks(hooks ...VRFHooks) MultiVRFHooks {
	return hooks
}

// AfterRandomWordsFulfilled calls the hook on all registered hooks,
// stopping at the first error.
func (h MultiVRFHooks) AfterRandomWordsFulfilled(ctx sdk.Context, requestID, consumer string, randomWords []uint64) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterRandomWordsFulfilled(ctx, requestID, consumer, randomWords); err != nil {
			return err
		}
	}
	return nil
}
