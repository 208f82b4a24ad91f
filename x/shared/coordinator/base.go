// Package coordinator provides the request/fulfillment bookkeeping
// shared by the vrf and datafeed coordinator modules: the registered
// oracle set, the fee configuration, and commitment storage with
// exactly-once consumption. It consolidates logic that would otherwise
// be duplicated across both keepers, the same way x/shared/nonce does
// for nonce management.
package coordinator

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Store prefixes used inside the consuming module's store. Consuming
// modules must keep their own prefixes below 0xC0.
var (
	configKey           = []byte{0xC0}
	oracleKeyPrefix     = []byte{0xC1}
	keyHashIndexPrefix  = []byte{0xC2}
	commitmentKeyPrefix = []byte{0xC3}
	requestCounterKey   = []byte{0xC4}
)

// Ledger is the prepayment surface a coordinator needs. Implemented by
// the prepayment keeper; the coordinator name passed on mutating calls
// is checked against the ledger's registered coordinator set.
type Ledger interface {
	IsValidConsumer(ctx sdk.Context, accID uint64, consumer string) bool
	IncreaseNonce(ctx sdk.Context, coordinator string, accID uint64, consumer string) (uint64, error)
	RequestCount(ctx sdk.Context, accID uint64) (uint64, error)
	FeeRatio(ctx sdk.Context, accID uint64) (uint32, error)
	ChargeFee(ctx sdk.Context, coordinator string, accID uint64, amount sdkmath.Int, operator string) (sdkmath.Int, error)
	ChargeFeeTemporary(ctx sdk.Context, coordinator string, accID uint64, operator string) (sdkmath.Int, error)
	CreateTemporaryAccount(ctx sdk.Context, coordinator string, owner string) (uint64, error)
	DepositTemporary(ctx sdk.Context, coordinator string, accID uint64, from string, amount sdkmath.Int) error
	RefundTemporaryAccount(ctx sdk.Context, coordinator string, accID uint64, to string) error
	IncreasePendingRequest(ctx sdk.Context, coordinator string, accID uint64) error
	DecreasePendingRequest(ctx sdk.Context, coordinator string, accID uint64) error
}

// Config is the shared coordinator configuration replaced wholesale by
// SetConfig.
type Config struct {
	MaxGasLimit                uint64    `json:"max_gas_limit"`
	GasAfterPaymentCalculation uint64    `json:"gas_after_payment_calculation"`
	FeeConfig                  FeeConfig `json:"fee_config"`
}

// DefaultConfig returns a permissive config suitable for tests and
// local nets.
func DefaultConfig() Config {
	return Config{
		MaxGasLimit:                2_500_000,
		GasAfterPaymentCalculation: 0,
		FeeConfig:                  DefaultFeeConfig(),
	}
}

// Validate checks the config.
func (c Config) Validate() error {
	if c.MaxGasLimit == 0 {
		return fmt.Errorf("max gas limit must be positive")
	}
	return c.FeeConfig.Validate()
}

// Base carries the coordinator bookkeeping for one module. It is a
// component, not a keeper: the consuming keeper owns the store key and
// module name and embeds a Base.
type Base struct {
	storeKey   storetypes.StoreKey
	moduleName string
	ledger     Ledger
}

// NewBase creates the shared coordinator component for a module.
func NewBase(storeKey storetypes.StoreKey, moduleName string, ledger Ledger) Base {
	return Base{
		storeKey:   storeKey,
		moduleName: moduleName,
		ledger:     ledger,
	}
}

// ModuleName returns the consuming module's name, used as the
// coordinator identity against the ledger.
func (b Base) ModuleName() string {
	return b.moduleName
}

// Ledger exposes the prepayment surface to the consuming keeper.
func (b Base) Ledger() Ledger {
	return b.ledger
}

func (b Base) store(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(b.storeKey)
}

// GetConfig returns the current coordinator config, or the default when
// none was set.
func (b Base) GetConfig(ctx sdk.Context) Config {
	bz := b.store(ctx).Get(configKey)
	if bz == nil {
		return DefaultConfig()
	}
	var cfg Config
	if err := json.Unmarshal(bz, &cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}

// SetConfig replaces the coordinator config, fee schedule included.
func (b Base) SetConfig(ctx sdk.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return ErrInvalidConfig.Wrap(err.Error())
	}
	bz, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	b.store(ctx).Set(configKey, bz)
	return nil
}

func oracleKey(oracle string) []byte {
	return append(oracleKeyPrefix, []byte(oracle)...)
}

func keyHashIndexKey(keyHash, oracle string) []byte {
	key := append(keyHashIndexPrefix, []byte(keyHash)...)
	key = append(key, '/')
	return append(key, []byte(oracle)...)
}

// RegisterOracle adds an oracle to the authorized fulfiller set. The
// keyHash may be empty for coordinators without proving keys. An oracle
// holds at most one keyHash at a time, while a keyHash may be shared by
// several oracles.
func (b Base) RegisterOracle(ctx sdk.Context, oracle, keyHash string) error {
	store := b.store(ctx)
	if store.Has(oracleKey(oracle)) {
		return ErrOracleAlreadyRegistered.Wrap(oracle)
	}
	store.Set(oracleKey(oracle), []byte(keyHash))
	if keyHash != "" {
		store.Set(keyHashIndexKey(keyHash, oracle), []byte{})
	}
	return nil
}

// DeregisterOracle removes an oracle and its keyHash binding.
func (b Base) DeregisterOracle(ctx sdk.Context, oracle string) error {
	store := b.store(ctx)
	if !store.Has(oracleKey(oracle)) {
		return ErrNoSuchOracle.Wrap(oracle)
	}
	if keyHash := string(store.Get(oracleKey(oracle))); keyHash != "" {
		store.Delete(keyHashIndexKey(keyHash, oracle))
	}
	store.Delete(oracleKey(oracle))
	return nil
}

// IsOracleRegistered reports whether the address may fulfill requests.
func (b Base) IsOracleRegistered(ctx sdk.Context, oracle string) bool {
	return b.store(ctx).Has(oracleKey(oracle))
}

// OracleKeyHash returns the proving key hash bound to an oracle.
func (b Base) OracleKeyHash(ctx sdk.Context, oracle string) (string, bool) {
	store := b.store(ctx)
	if !store.Has(oracleKey(oracle)) {
		return "", false
	}
	return string(store.Get(oracleKey(oracle))), true
}

// HasKeyHash reports whether at least one registered oracle holds the
// given proving key hash.
func (b Base) HasKeyHash(ctx sdk.Context, keyHash string) bool {
	prefix := append(append([]byte{}, keyHashIndexPrefix...), []byte(keyHash)...)
	prefix = append(prefix, '/')
	iterator := storetypes.KVStorePrefixIterator(b.store(ctx), prefix)
	defer iterator.Close()
	return iterator.Valid()
}

// OracleCount returns the number of registered oracles.
func (b Base) OracleCount(ctx sdk.Context) uint32 {
	iterator := storetypes.KVStorePrefixIterator(b.store(ctx), oracleKeyPrefix)
	defer iterator.Close()
	count := uint32(0)
	for ; iterator.Valid(); iterator.Next() {
		count++
	}
	return count
}

// IterateOracles walks the registered oracle set.
func (b Base) IterateOracles(ctx sdk.Context, cb func(oracle, keyHash string) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(b.store(ctx), oracleKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		oracle := string(iterator.Key()[len(oracleKeyPrefix):])
		if cb(oracle, string(iterator.Value())) {
			break
		}
	}
}

func commitmentKey(requestID string) []byte {
	return append(commitmentKeyPrefix, []byte(requestID)...)
}

// RequestSpec bundles the validated inputs of a new request.
type RequestSpec struct {
	AccID            uint64
	Consumer         string
	CallbackGasLimit uint64
	NumSubmission    uint32
	JobID            string
	IsDirectPayment  bool
}

// CreateRequest performs the shared request path: gas limit and
// consumer validation, nonce increase, commitment creation and pending
// request accounting. It returns the derived request id and the stored
// commitment. Direct payment escrow is the caller's responsibility
// since it involves the caller's funds.
func (b Base) CreateRequest(ctx sdk.Context, spec RequestSpec) (string, RequestCommitment, error) {
	cfg := b.GetConfig(ctx)
	if spec.CallbackGasLimit > cfg.MaxGasLimit {
		return "", RequestCommitment{}, ErrGasLimitTooBig.Wrapf("%d > %d", spec.CallbackGasLimit, cfg.MaxGasLimit)
	}
	if !spec.IsDirectPayment && !b.ledger.IsValidConsumer(ctx, spec.AccID, spec.Consumer) {
		return "", RequestCommitment{}, ErrInvalidConsumer.Wrapf("account %d consumer %s", spec.AccID, spec.Consumer)
	}

	nonce, err := b.ledger.IncreaseNonce(ctx, b.moduleName, spec.AccID, spec.Consumer)
	if err != nil {
		return "", RequestCommitment{}, err
	}
	requestID := DeriveRequestID(spec.Consumer, spec.AccID, nonce)

	commitment := RequestCommitment{
		BlockNum:         ctx.BlockHeight(),
		AccID:            spec.AccID,
		CallbackGasLimit: spec.CallbackGasLimit,
		NumSubmission:    spec.NumSubmission,
		Sender:           spec.Consumer,
		IsDirectPayment:  spec.IsDirectPayment,
		JobID:            spec.JobID,
	}

	bz, err := json.Marshal(commitment)
	if err != nil {
		return "", RequestCommitment{}, err
	}
	b.store(ctx).Set(commitmentKey(requestID), bz)

	if err := b.ledger.IncreasePendingRequest(ctx, b.moduleName, spec.AccID); err != nil {
		return "", RequestCommitment{}, err
	}
	return requestID, commitment, nil
}

// GetCommitment returns the live commitment for a request id.
func (b Base) GetCommitment(ctx sdk.Context, requestID string) (RequestCommitment, bool) {
	bz := b.store(ctx).Get(commitmentKey(requestID))
	if bz == nil {
		return RequestCommitment{}, false
	}
	var commitment RequestCommitment
	if err := json.Unmarshal(bz, &commitment); err != nil {
		return RequestCommitment{}, false
	}
	return commitment, true
}

// ConsumeCommitment verifies the caller-reconstructed commitment
// against the stored one and deletes it. A second consumption of the
// same request id fails with ErrNoCorrespondingRequest, any field
// mismatch with ErrIncorrectCommitment; no state is touched on either
// failure.
func (b Base) ConsumeCommitment(ctx sdk.Context, requestID string, provided RequestCommitment) error {
	stored, found := b.GetCommitment(ctx, requestID)
	if !found {
		return ErrNoCorrespondingRequest.Wrap(requestID)
	}
	if !stored.Equal(provided) {
		return ErrIncorrectCommitment.Wrap(requestID)
	}
	b.store(ctx).Delete(commitmentKey(requestID))
	return b.ledger.DecreasePendingRequest(ctx, b.moduleName, stored.AccID)
}

// CancelRequest removes a live commitment on behalf of its original
// sender and returns it so the caller can refund direct payments.
func (b Base) CancelRequest(ctx sdk.Context, requestID, sender string) (RequestCommitment, error) {
	stored, found := b.GetCommitment(ctx, requestID)
	if !found {
		return RequestCommitment{}, ErrNoCorrespondingRequest.Wrap(requestID)
	}
	if stored.Sender != sender {
		return RequestCommitment{}, ErrNotRequestOwner.Wrapf("%s is not %s", sender, stored.Sender)
	}
	b.store(ctx).Delete(commitmentKey(requestID))
	if err := b.ledger.DecreasePendingRequest(ctx, b.moduleName, stored.AccID); err != nil {
		return RequestCommitment{}, err
	}
	return stored, nil
}

// PendingRequestExists reports whether the commitment created for a
// (consumer, account, nonce) triple is still outstanding.
func (b Base) PendingRequestExists(ctx sdk.Context, consumer string, accID, nonce uint64) bool {
	_, found := b.GetCommitment(ctx, DeriveRequestID(consumer, accID, nonce))
	return found
}

// ComputeServiceFee derives the final service fee for an account:
// tier flat fee times submissions, scaled by the account's fee ratio
// (100 means no discount).
func (b Base) ComputeServiceFee(ctx sdk.Context, accID uint64, numSubmission uint32) (sdkmath.Int, error) {
	reqCount, err := b.ledger.RequestCount(ctx, accID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	ratio, err := b.ledger.FeeRatio(ctx, accID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	fee := b.GetConfig(ctx).FeeConfig.ComputeFee(reqCount, numSubmission)
	if ratio < 100 {
		fee = fee.MulRaw(int64(ratio)).QuoRaw(100)
	}
	return fee, nil
}

// EstimateFee returns the up-front fee estimate for a direct payment
// request. Direct payments always bill at tier 1 since a temporary
// account has no request history.
func (b Base) EstimateFee(ctx sdk.Context, numSubmission uint32) sdkmath.Int {
	return b.GetConfig(ctx).FeeConfig.ComputeFee(0, numSubmission)
}

// NextRequestCounter atomically increments the monotonic request
// counter used to derive randomness pre-seeds.
func (b Base) NextRequestCounter(ctx sdk.Context) uint64 {
	store := b.store(ctx)
	var counter uint64
	if bz := store.Get(requestCounterKey); len(bz) == 8 {
		counter = binary.BigEndian.Uint64(bz)
	}
	counter++
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, counter)
	store.Set(requestCounterKey, bz)
	return counter
}
