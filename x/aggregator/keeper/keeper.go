package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/aggregator/types"
)

// Store keys local to the aggregator module.
var (
	configKey              = []byte{0x01}
	oracleKeyPrefix        = []byte{0x02}
	roundKeyPrefix         = []byte{0x03}
	submissionKeyPrefix    = []byte{0x04}
	latestRoundIDKey       = []byte{0x05}
	requesterKeyPrefix     = []byte{0x06}
	proposedAggregatorKey  = []byte{0x07}
	phaseIDKey             = []byte{0x08}
	phaseAggregatorsPrefix = []byte{0x09}
)

// Keeper of the aggregator store. Holds the oracle set, round history
// and the proxy phase bookkeeping.
type Keeper struct {
	storeKey  storetypes.StoreKey
	authority string
	metrics   *AggregatorMetrics
}

// NewKeeper creates a new aggregator Keeper instance.
func NewKeeper(key storetypes.StoreKey, authority string) *Keeper {
	return &Keeper{
		storeKey:  key,
		authority: authority,
		metrics:   NewAggregatorMetrics(),
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetAuthority returns the module's authority (governance account).
func (k Keeper) GetAuthority() string {
	return k.authority
}

func (k Keeper) getStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// GetConfig returns the aggregator config.
func (k Keeper) GetConfig(ctx sdk.Context) types.Config {
	bz := k.getStore(ctx).Get(configKey)
	if bz == nil {
		return types.DefaultConfig()
	}
	var config types.Config
	if err := json.Unmarshal(bz, &config); err != nil {
		return types.DefaultConfig()
	}
	return config
}

// SetConfig validates the config against the current oracle count and
// stores it.
func (k Keeper) SetConfig(ctx sdk.Context, config types.Config) error {
	if err := config.Validate(k.OracleCount(ctx)); err != nil {
		return err
	}
	k.setConfigUnchecked(ctx, config)
	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeConfigUpdated))
	return nil
}

func (k Keeper) setConfigUnchecked(ctx sdk.Context, config types.Config) {
	bz, err := json.Marshal(config)
	if err != nil {
		panic(fmt.Errorf("failed to marshal aggregator config: %w", err))
	}
	k.getStore(ctx).Set(configKey, bz)
}

func oracleKey(address string) []byte {
	return append(oracleKeyPrefix, []byte(address)...)
}

// GetOracle returns the oracle record for an address.
func (k Keeper) GetOracle(ctx sdk.Context, address string) (types.Oracle, bool) {
	bz := k.getStore(ctx).Get(oracleKey(address))
	if bz == nil {
		return types.Oracle{}, false
	}
	var oracle types.Oracle
	if err := json.Unmarshal(bz, &oracle); err != nil {
		return types.Oracle{}, false
	}
	return oracle, true
}

func (k Keeper) setOracle(ctx sdk.Context, oracle types.Oracle) {
	bz, err := json.Marshal(oracle)
	if err != nil {
		panic(fmt.Errorf("failed to marshal oracle: %w", err))
	}
	k.getStore(ctx).Set(oracleKey(oracle.Address), bz)
}

// IterateOracles walks all oracle records, enabled or not.
func (k Keeper) IterateOracles(ctx sdk.Context, cb func(oracle types.Oracle) bool) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), oracleKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		var oracle types.Oracle
		if err := json.Unmarshal(iterator.Value(), &oracle); err != nil {
			continue
		}
		if cb(oracle) {
			break
		}
	}
}

// OracleCount returns the number of enabled oracles.
func (k Keeper) OracleCount(ctx sdk.Context) uint32 {
	count := uint32(0)
	k.IterateOracles(ctx, func(oracle types.Oracle) bool {
		if oracle.Enabled {
			count++
		}
		return false
	})
	return count
}

func roundKey(roundID uint64) []byte {
	return append(roundKeyPrefix, sdk.Uint64ToBigEndian(roundID)...)
}

// GetRound returns a round by id.
func (k Keeper) GetRound(ctx sdk.Context, roundID uint64) (types.Round, bool) {
	bz := k.getStore(ctx).Get(roundKey(roundID))
	if bz == nil {
		return types.Round{}, false
	}
	var round types.Round
	if err := json.Unmarshal(bz, &round); err != nil {
		return types.Round{}, false
	}
	return round, true
}

func (k Keeper) setRound(ctx sdk.Context, round types.Round) {
	bz, err := json.Marshal(round)
	if err != nil {
		panic(fmt.Errorf("failed to marshal round: %w", err))
	}
	k.getStore(ctx).Set(roundKey(round.RoundID), bz)
}

// LatestRoundID returns the newest opened round id, zero before any
// round exists.
func (k Keeper) LatestRoundID(ctx sdk.Context) uint64 {
	bz := k.getStore(ctx).Get(latestRoundIDKey)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func (k Keeper) setLatestRoundID(ctx sdk.Context, roundID uint64) {
	k.getStore(ctx).Set(latestRoundIDKey, sdk.Uint64ToBigEndian(roundID))
}

// LatestRoundData returns the newest answered round. Falls back to the
// latest opened round when nothing has been answered yet.
func (k Keeper) LatestRoundData(ctx sdk.Context) (types.Round, bool) {
	latest := k.LatestRoundID(ctx)
	for roundID := latest; roundID > 0; roundID-- {
		round, found := k.GetRound(ctx, roundID)
		if found && round.Answered() {
			return round, true
		}
	}
	return k.GetRound(ctx, latest)
}

func submissionsKey(roundID uint64) []byte {
	return append(submissionKeyPrefix, sdk.Uint64ToBigEndian(roundID)...)
}

func (k Keeper) getSubmissions(ctx sdk.Context, roundID uint64) []roundSubmission {
	bz := k.getStore(ctx).Get(submissionsKey(roundID))
	if bz == nil {
		return nil
	}
	var submissions []roundSubmission
	if err := json.Unmarshal(bz, &submissions); err != nil {
		return nil
	}
	return submissions
}

func (k Keeper) setSubmissions(ctx sdk.Context, roundID uint64, submissions []roundSubmission) {
	bz, err := json.Marshal(submissions)
	if err != nil {
		panic(fmt.Errorf("failed to marshal submissions: %w", err))
	}
	k.getStore(ctx).Set(submissionsKey(roundID), bz)
}

func requesterKey(address string) []byte {
	return append(requesterKeyPrefix, []byte(address)...)
}

// GetRequester returns the requester record for an address.
func (k Keeper) GetRequester(ctx sdk.Context, address string) (types.Requester, bool) {
	bz := k.getStore(ctx).Get(requesterKey(address))
	if bz == nil {
		return types.Requester{}, false
	}
	var requester types.Requester
	if err := json.Unmarshal(bz, &requester); err != nil {
		return types.Requester{}, false
	}
	return requester, true
}

func (k Keeper) setRequester(ctx sdk.Context, requester types.Requester) {
	bz, err := json.Marshal(requester)
	if err != nil {
		panic(fmt.Errorf("failed to marshal requester: %w", err))
	}
	k.getStore(ctx).Set(requesterKey(requester.Address), bz)
}

// IterateRequesters walks all requester records.
func (k Keeper) IterateRequesters(ctx sdk.Context, cb func(requester types.Requester) bool) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), requesterKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		var requester types.Requester
		if err := json.Unmarshal(iterator.Value(), &requester); err != nil {
			continue
		}
		if cb(requester) {
			break
		}
	}
}
