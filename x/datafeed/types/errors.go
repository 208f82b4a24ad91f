package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// x/datafeed module sentinel errors
var (
	ErrInvalidJobID           = sdkerrors.Register(ModuleName, 2, "unknown job id")
	ErrInvalidNumSubmission   = sdkerrors.Register(ModuleName, 3, "invalid number of submissions")
	ErrOracleAlreadySubmitted = sdkerrors.Register(ModuleName, 4, "oracle already submitted for this request")
	ErrInvalidResponseValue   = sdkerrors.Register(ModuleName, 5, "response value does not match the job response type")
	ErrJobExists              = sdkerrors.Register(ModuleName, 6, "job already registered")
)
