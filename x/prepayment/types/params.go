package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Params are the ledger-wide billing parameters.
type Params struct {
	// BurnFeeRatio is the percentage of every charged fee that is
	// burned, 0..100.
	BurnFeeRatio uint32 `json:"burn_fee_ratio"`
	// ProtocolFeeRatio is the percentage routed to the protocol fee
	// recipient, 0..100.
	ProtocolFeeRatio uint32 `json:"protocol_fee_ratio"`
	// ProtocolFeeRecipient receives the protocol share. Empty means the
	// share stays with the module account.
	ProtocolFeeRecipient string `json:"protocol_fee_recipient"`
	// Denom is the fee denom accounts are funded with.
	Denom string `json:"denom"`
}

// DefaultParams returns the default billing split: 50% burned, 5%
// protocol, remainder to the fulfilling oracle.
func DefaultParams() Params {
	return Params{
		BurnFeeRatio:     50,
		ProtocolFeeRatio: 5,
		Denom:            DefaultDenom,
	}
}

// Validate checks parameter bounds.
func (p Params) Validate() error {
	if p.BurnFeeRatio > 100 {
		return ErrTooHighFeeRatio.Wrapf("burn ratio %d", p.BurnFeeRatio)
	}
	if p.ProtocolFeeRatio > 100 {
		return ErrTooHighFeeRatio.Wrapf("protocol ratio %d", p.ProtocolFeeRatio)
	}
	if p.BurnFeeRatio+p.ProtocolFeeRatio > 100 {
		return ErrRatioOutOfBounds.Wrapf("burn %d + protocol %d", p.BurnFeeRatio, p.ProtocolFeeRatio)
	}
	if p.Denom == "" {
		return fmt.Errorf("denom must be set")
	}
	if p.ProtocolFeeRecipient != "" {
		if _, err := sdk.AccAddressFromBech32(p.ProtocolFeeRecipient); err != nil {
			return fmt.Errorf("invalid protocol fee recipient: %w", err)
		}
	}
	return nil
}
