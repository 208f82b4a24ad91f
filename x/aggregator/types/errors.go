package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// x/aggregator module sentinel errors
var (
	ErrMinSubmissionGtMaxSubmission = sdkerrors.Register(ModuleName, 2, "min submission count exceeds max submission count")
	ErrMaxSubmissionGtOracleNum     = sdkerrors.Register(ModuleName, 3, "max submission count exceeds oracle count")
	ErrRestartDelayExceedOracleNum  = sdkerrors.Register(ModuleName, 4, "restart delay must be below oracle count")
	ErrMinSubmissionZero            = sdkerrors.Register(ModuleName, 5, "min submission count cannot be zero")
	ErrTooManyOracles               = sdkerrors.Register(ModuleName, 6, "oracle count limit reached")
	ErrOracleNotEnabled             = sdkerrors.Register(ModuleName, 7, "oracle not enabled")
	ErrOracleAlreadyEnabled         = sdkerrors.Register(ModuleName, 8, "oracle already enabled")
	ErrOracleAlreadySubmitted       = sdkerrors.Register(ModuleName, 9, "oracle already submitted for this round")
	ErrRoundNotAcceptingSubmission  = sdkerrors.Register(ModuleName, 10, "round not accepting submissions")
	ErrOracleNotEligible            = sdkerrors.Register(ModuleName, 11, "oracle not yet eligible to start a round")
	ErrPrevRoundNotSupersedable     = sdkerrors.Register(ModuleName, 12, "previous round not supersedable")
	ErrUnauthorizedRequester        = sdkerrors.Register(ModuleName, 13, "requester not authorized")
	ErrInvalidProposedAggregator    = sdkerrors.Register(ModuleName, 14, "aggregator does not match the proposal")
	ErrNoProposedAggregator         = sdkerrors.Register(ModuleName, 15, "no aggregator proposed")
	ErrInvalidSubmissionValue       = sdkerrors.Register(ModuleName, 16, "submission value out of bounds")
	ErrInvalidConfig                = sdkerrors.Register(ModuleName, 18, "invalid aggregator config")
)
