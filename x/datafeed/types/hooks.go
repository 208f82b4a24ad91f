package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DatafeedHooks defines the consumer callback surface of the datafeed
// module. A failing hook never reverts fulfillment; it only flips the
// success flag on the fulfillment event.
type DatafeedHooks interface {
	// AfterDataRequestFulfilled is called once per fulfilled request
	// with the aggregated response.
	AfterDataRequestFulfilled(ctx sdk.Context, requestID, consumer string, responseType ResponseType, value string) error
}

// MultiDatafeedHooks combines multiple datafeed hooks into one.
type MultiDatafeedHooks []DatafeedHooks

// NewMultiDatafeedHooks creates a MultiDatafeedHooks from a list of
// hooks.
func NewMultiDatafeedHooks(hooks ...DatafeedHooks) MultiDatafeedHooks {
	return hooks
}

// AfterDataRequestFulfilled calls the hook on all registered hooks,
// stopping at the first error.
func (h MultiDatafeedHooks) AfterDataRequestFulfilled(ctx sdk.Context, requestID, consumer string, responseType ResponseType, value string) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterDataRequestFulfilled(ctx, requestID, consumer, responseType, value); err != nil {
			return err
		}
	}
	return nil
}
