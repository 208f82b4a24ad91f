package types_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orakon-chain/orakon/x/datafeed/types"
)

func TestValidateValueBytes32(t *testing.T) {
	rt := types.ResponseBytes32
	hash := strings.Repeat("ab", 32)

	require.NoError(t, rt.ValidateValue(hash))
	require.NoError(t, rt.ValidateValue("0x"+hash))

	// right length but not hex
	err := rt.ValidateValue(strings.Repeat("Z", 64))
	require.ErrorIs(t, err, types.ErrInvalidResponseValue)

	err = rt.ValidateValue(hash[:62])
	require.ErrorIs(t, err, types.ErrInvalidResponseValue)
	err = rt.ValidateValue("0x" + hash + "ff")
	require.ErrorIs(t, err, types.ErrInvalidResponseValue)
}
