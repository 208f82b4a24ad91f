package keeper

import (
	"encoding/binary"
)

var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x01}

	// AccountKeyPrefix is the prefix for account storage
	AccountKeyPrefix = []byte{0x02}

	// NextAccIDKey is the key for the next account ID counter
	NextAccIDKey = []byte{0x03}

	// CoordinatorKeyPrefix is the prefix for the registered coordinator
	// set
	CoordinatorKeyPrefix = []byte{0x04}
)

// AccountKey returns the store key for an account record
func AccountKey(accID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, accID)
	return append(AccountKeyPrefix, bz...)
}

// CoordinatorKey returns the store key for a coordinator entry
func CoordinatorKey(name string) []byte {
	return append(CoordinatorKeyPrefix, []byte(name)...)
}
