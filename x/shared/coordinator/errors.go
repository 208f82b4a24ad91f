package coordinator

import (
	sdkerrors "cosmossdk.io/errors"
)

// Codespace for errors shared by every coordinator module.
const Codespace = "coordinator"

var (
	ErrGasLimitTooBig          = sdkerrors.Register(Codespace, 2, "callback gas limit exceeds maximum")
	ErrInvalidConsumer         = sdkerrors.Register(Codespace, 3, "consumer not authorized for account")
	ErrInsufficientPayment     = sdkerrors.Register(Codespace, 4, "attached payment below estimated fee")
	ErrNoCorrespondingRequest  = sdkerrors.Register(Codespace, 5, "no commitment for request id")
	ErrIncorrectCommitment     = sdkerrors.Register(Codespace, 6, "commitment does not match stored request")
	ErrNotRequestOwner         = sdkerrors.Register(Codespace, 7, "caller is not the request owner")
	ErrOracleAlreadyRegistered = sdkerrors.Register(Codespace, 8, "oracle already registered")
	ErrNoSuchOracle            = sdkerrors.Register(Codespace, 9, "oracle not registered")
	ErrInvalidConfig           = sdkerrors.Register(Codespace, 10, "invalid coordinator config")
)
