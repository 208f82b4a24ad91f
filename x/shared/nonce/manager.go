// Package nonce provides per-(account, consumer) request nonce
// management for replay prevention. Request ids are derived from these
// nonces, so a nonce is handed out exactly once and only to consumers
// the account owner authorized.
package nonce

import (
	"encoding/binary"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// NoncePrefix is the prefix for consumer nonce entries.
const NoncePrefix = "nonce"

// InitialNonce is the value a consumer starts at when authorized.
const InitialNonce = uint64(1)

// ErrorProvider allows the owning module to supply its own error types
// while using the shared nonce logic.
type ErrorProvider interface {
	// InvalidConsumerError returns an error for an unauthorized consumer
	// with the given message.
	InvalidConsumerError(msg string) error
}

// Manager hands out strictly increasing nonces per (account, consumer)
// pair. A pair exists only between authorization and removal of the
// consumer; asking for a nonce outside that window is an error.
type Manager struct {
	storeKey      storetypes.StoreKey
	errorProvider ErrorProvider
	moduleName    string
}

// NewManager creates a nonce manager backed by the owning module's
// store.
func NewManager(storeKey storetypes.StoreKey, errorProvider ErrorProvider, moduleName string) *Manager {
	return &Manager{
		storeKey:      storeKey,
		errorProvider: errorProvider,
		moduleName:    moduleName,
	}
}

func encodeNonce(n uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, n)
	return bz
}

func decodeNonce(bz []byte) uint64 {
	if len(bz) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (m *Manager) nonceKey(accID uint64, consumer string) []byte {
	return []byte(fmt.Sprintf("%s/%d/%s", NoncePrefix, accID, consumer))
}

// Init seeds the nonce for a newly authorized consumer. A no-op when
// the pair already exists, so re-adding a consumer never resets replay
// protection.
func (m *Manager) Init(ctx sdk.Context, accID uint64, consumer string) {
	store := ctx.KVStore(m.storeKey)
	key := m.nonceKey(accID, consumer)
	if store.Has(key) {
		return
	}
	store.Set(key, encodeNonce(InitialNonce))
}

// Exists reports whether the (account, consumer) pair is tracked.
func (m *Manager) Exists(ctx sdk.Context, accID uint64, consumer string) bool {
	return ctx.KVStore(m.storeKey).Has(m.nonceKey(accID, consumer))
}

// Current returns the nonce the next request will consume, zero when
// the consumer is not authorized.
func (m *Manager) Current(ctx sdk.Context, accID uint64, consumer string) uint64 {
	return decodeNonce(ctx.KVStore(m.storeKey).Get(m.nonceKey(accID, consumer)))
}

// Next consumes and returns the current nonce for the pair, advancing
// the stored value. The returned sequence is 1, 2, 3, ... per pair.
func (m *Manager) Next(ctx sdk.Context, accID uint64, consumer string) (uint64, error) {
	store := ctx.KVStore(m.storeKey)
	key := m.nonceKey(accID, consumer)
	bz := store.Get(key)
	if bz == nil {
		return 0, m.errorProvider.InvalidConsumerError(fmt.Sprintf(
			"consumer %s not authorized for account %d", consumer, accID))
	}
	current := decodeNonce(bz)
	store.Set(key, encodeNonce(current+1))
	return current, nil
}

// Remove drops the pair when a consumer is deauthorized.
func (m *Manager) Remove(ctx sdk.Context, accID uint64, consumer string) {
	ctx.KVStore(m.storeKey).Delete(m.nonceKey(accID, consumer))
}
