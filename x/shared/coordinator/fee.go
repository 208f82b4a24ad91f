package coordinator

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// FeeConfig is the five-tier flat fee schedule shared by every
// coordinator. Tier selection is driven by an account's cumulative
// fulfilled-request count: tier N applies while the count is at most
// ReqsForTierN+1, and tier 5 applies beyond ReqsForTier5.
type FeeConfig struct {
	FulfillmentFlatFeeTier1 sdkmath.Int `json:"fulfillment_flat_fee_tier1"`
	FulfillmentFlatFeeTier2 sdkmath.Int `json:"fulfillment_flat_fee_tier2"`
	FulfillmentFlatFeeTier3 sdkmath.Int `json:"fulfillment_flat_fee_tier3"`
	FulfillmentFlatFeeTier4 sdkmath.Int `json:"fulfillment_flat_fee_tier4"`
	FulfillmentFlatFeeTier5 sdkmath.Int `json:"fulfillment_flat_fee_tier5"`
	ReqsForTier2            uint64      `json:"reqs_for_tier2"`
	ReqsForTier3            uint64      `json:"reqs_for_tier3"`
	ReqsForTier4            uint64      `json:"reqs_for_tier4"`
	ReqsForTier5            uint64      `json:"reqs_for_tier5"`
}

// DefaultFeeConfig returns a flat single-tier schedule. Chains are
// expected to replace it through SetConfig before opening requests.
func DefaultFeeConfig() FeeConfig {
	flat := sdkmath.NewInt(0)
	return FeeConfig{
		FulfillmentFlatFeeTier1: flat,
		FulfillmentFlatFeeTier2: flat,
		FulfillmentFlatFeeTier3: flat,
		FulfillmentFlatFeeTier4: flat,
		FulfillmentFlatFeeTier5: flat,
	}
}

// Validate checks structural validity of the schedule. Monotonically
// non-increasing fees across tiers are conventional but deliberately
// not enforced.
func (fc FeeConfig) Validate() error {
	fees := []sdkmath.Int{
		fc.FulfillmentFlatFeeTier1,
		fc.FulfillmentFlatFeeTier2,
		fc.FulfillmentFlatFeeTier3,
		fc.FulfillmentFlatFeeTier4,
		fc.FulfillmentFlatFeeTier5,
	}
	for i, fee := range fees {
		if fee.IsNil() {
			return fmt.Errorf("tier %d fee is nil", i+1)
		}
		if fee.IsNegative() {
			return fmt.Errorf("tier %d fee is negative: %s", i+1, fee)
		}
	}
	if fc.ReqsForTier2 > fc.ReqsForTier3 && fc.ReqsForTier3 != 0 {
		return fmt.Errorf("tier2 threshold %d exceeds tier3 threshold %d", fc.ReqsForTier2, fc.ReqsForTier3)
	}
	if fc.ReqsForTier3 > fc.ReqsForTier4 && fc.ReqsForTier4 != 0 {
		return fmt.Errorf("tier3 threshold %d exceeds tier4 threshold %d", fc.ReqsForTier3, fc.ReqsForTier4)
	}
	if fc.ReqsForTier4 > fc.ReqsForTier5 && fc.ReqsForTier5 != 0 {
		return fmt.Errorf("tier4 threshold %d exceeds tier5 threshold %d", fc.ReqsForTier4, fc.ReqsForTier5)
	}
	return nil
}

// TierFee returns the flat fee bracket for a cumulative fulfilled
// request count. Thresholds are inclusive on the upper bound of each
// tier: reqCount == ReqsForTier2 still pays the tier 1 fee.
func (fc FeeConfig) TierFee(reqCount uint64) sdkmath.Int {
	switch {
	case reqCount <= fc.ReqsForTier2:
		return fc.FulfillmentFlatFeeTier1
	case reqCount <= fc.ReqsForTier3:
		return fc.FulfillmentFlatFeeTier2
	case reqCount <= fc.ReqsForTier4:
		return fc.FulfillmentFlatFeeTier3
	case reqCount <= fc.ReqsForTier5:
		return fc.FulfillmentFlatFeeTier4
	default:
		return fc.FulfillmentFlatFeeTier5
	}
}

// ComputeFee returns the total service fee for a fulfillment: the tier
// flat fee multiplied by the number of oracle submissions the request
// asked for.
func (fc FeeConfig) ComputeFee(reqCount uint64, numSubmission uint32) sdkmath.Int {
	if numSubmission == 0 {
		numSubmission = 1
	}
	return fc.TierFee(reqCount).MulRaw(int64(numSubmission))
}
