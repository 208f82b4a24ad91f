package coordinator_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/orakon-chain/orakon/x/shared/coordinator"
)

func tieredFeeConfig() coordinator.FeeConfig {
	return coordinator.FeeConfig{
		FulfillmentFlatFeeTier1: sdkmath.NewInt(500),
		FulfillmentFlatFeeTier2: sdkmath.NewInt(400),
		FulfillmentFlatFeeTier3: sdkmath.NewInt(300),
		FulfillmentFlatFeeTier4: sdkmath.NewInt(200),
		FulfillmentFlatFeeTier5: sdkmath.NewInt(100),
		ReqsForTier2:            10,
		ReqsForTier3:            20,
		ReqsForTier4:            30,
		ReqsForTier5:            40,
	}
}

func TestTierFeeThresholdsInclusive(t *testing.T) {
	fc := tieredFeeConfig()

	require.Equal(t, sdkmath.NewInt(500), fc.TierFee(0))
	require.Equal(t, sdkmath.NewInt(500), fc.TierFee(10))
	require.Equal(t, sdkmath.NewInt(400), fc.TierFee(11))
	require.Equal(t, sdkmath.NewInt(400), fc.TierFee(20))
	require.Equal(t, sdkmath.NewInt(300), fc.TierFee(21))
	require.Equal(t, sdkmath.NewInt(300), fc.TierFee(30))
	require.Equal(t, sdkmath.NewInt(200), fc.TierFee(31))
	require.Equal(t, sdkmath.NewInt(200), fc.TierFee(40))
	require.Equal(t, sdkmath.NewInt(100), fc.TierFee(41))
	require.Equal(t, sdkmath.NewInt(100), fc.TierFee(1_000_000))
}

func TestComputeFeeScalesWithSubmissions(t *testing.T) {
	fc := tieredFeeConfig()

	require.Equal(t, sdkmath.NewInt(1500), fc.ComputeFee(0, 3))
	require.Equal(t, sdkmath.NewInt(400), fc.ComputeFee(15, 1))
	// zero submissions bill as one
	require.Equal(t, sdkmath.NewInt(500), fc.ComputeFee(0, 0))
}

func TestFeeConfigValidate(t *testing.T) {
	fc := tieredFeeConfig()
	require.NoError(t, fc.Validate())

	bad := fc
	bad.FulfillmentFlatFeeTier3 = sdkmath.Int{}
	require.Error(t, bad.Validate())

	bad = fc
	bad.FulfillmentFlatFeeTier1 = sdkmath.NewInt(-1)
	require.Error(t, bad.Validate())

	bad = fc
	bad.ReqsForTier2 = 25
	require.Error(t, bad.Validate())
}

func TestTierFeeMonotonicBrackets(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fc := tieredFeeConfig()
		reqCount := rapid.Uint64Range(0, 100).Draw(t, "reqCount")

		fee := fc.TierFee(reqCount)
		var want sdkmath.Int
		switch {
		case reqCount <= fc.ReqsForTier2:
			want = fc.FulfillmentFlatFeeTier1
		case reqCount <= fc.ReqsForTier3:
			want = fc.FulfillmentFlatFeeTier2
		case reqCount <= fc.ReqsForTier4:
			want = fc.FulfillmentFlatFeeTier3
		case reqCount <= fc.ReqsForTier5:
			want = fc.FulfillmentFlatFeeTier4
		default:
			want = fc.FulfillmentFlatFeeTier5
		}
		require.Equal(t, want, fee)

		// fees never increase with request history
		if reqCount > 0 {
			require.True(t, fc.TierFee(reqCount).LTE(fc.TierFee(reqCount-1)))
		}
	})
}
