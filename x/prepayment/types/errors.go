package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Prepayment module sentinel errors
var (
	ErrMustBeAccountOwner   = sdkerrors.Register(ModuleName, 2, "caller must be account owner")
	ErrMustBeRequestedOwner = sdkerrors.Register(ModuleName, 3, "caller must be requested owner")
	ErrInvalidCoordinator   = sdkerrors.Register(ModuleName, 4, "coordinator not registered")
	ErrInvalidConsumer      = sdkerrors.Register(ModuleName, 5, "consumer not authorized for account")
	ErrInvalidAccount       = sdkerrors.Register(ModuleName, 6, "account does not exist")
	ErrTooManyConsumers     = sdkerrors.Register(ModuleName, 7, "consumer limit reached")
	ErrPendingRequestExists = sdkerrors.Register(ModuleName, 8, "account has outstanding requests")
	ErrInsufficientBalance  = sdkerrors.Register(ModuleName, 9, "insufficient account balance")
	ErrTooHighFeeRatio      = sdkerrors.Register(ModuleName, 10, "fee ratio exceeds 100 percent")
	ErrRatioOutOfBounds     = sdkerrors.Register(ModuleName, 11, "combined fee ratios exceed 100 percent")
	ErrInvalidAccountType   = sdkerrors.Register(ModuleName, 12, "operation not valid for account type")
	ErrCoordinatorExists    = sdkerrors.Register(ModuleName, 14, "coordinator already registered")
)
