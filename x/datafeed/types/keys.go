package types

const (
	// ModuleName defines the module name
	ModuleName = "datafeed"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)
