package types

const (
	// ModuleName defines the module name
	ModuleName = "aggregator"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// MaxOracleCount bounds the oracle set of a single aggregator.
const MaxOracleCount = 77
