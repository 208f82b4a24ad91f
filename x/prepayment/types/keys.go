package types

const (
	// ModuleName defines the module name
	ModuleName = "prepayment"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

const (
	// DefaultDenom is the native fee denom accounts are funded with.
	DefaultDenom = "uorak"

	// MaxConsumers bounds the authorized consumer set per account.
	MaxConsumers = 100
)
