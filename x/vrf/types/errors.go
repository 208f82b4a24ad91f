package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// x/vrf module sentinel errors
var (
	ErrInvalidKeyHash   = sdkerrors.Register(ModuleName, 2, "no oracle registered for key hash")
	ErrNumWordsTooBig   = sdkerrors.Register(ModuleName, 3, "requested number of random words too big")
	ErrNoSuchProvingKey = sdkerrors.Register(ModuleName, 4, "oracle does not hold the proving key")
	ErrInvalidProof     = sdkerrors.Register(ModuleName, 5, "malformed randomness proof")
)
