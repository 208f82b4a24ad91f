package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/shared/coordinator"
	"github.com/orakon-chain/orakon/x/vrf/types"
)

// Store keys local to the vrf module. Shared coordinator state lives
// above 0xC0.
var (
	paramsKey        = []byte{0x01}
	preSeedKeyPrefix = []byte{0x02}
)

// Keeper of the vrf store. The shared coordinator base carries the
// oracle set, fee config and commitment lifecycle; the keeper adds the
// randomness specific request and fulfillment paths.
type Keeper struct {
	coordinator.Base

	storeKey  storetypes.StoreKey
	authority string
	hooks     types.VRFHooks
	metrics   *VRFMetrics
}

// NewKeeper creates a new vrf Keeper instance.
func NewKeeper(
	key storetypes.StoreKey,
	ledger coordinator.Ledger,
	authority string,
) *Keeper {
	return &Keeper{
		Base:      coordinator.NewBase(key, types.ModuleName, ledger),
		storeKey:  key,
		authority: authority,
		metrics:   NewVRFMetrics(),
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

// SetHooks sets the consumer callback hooks. Can only be called once.
func (k *Keeper) SetHooks(hooks types.VRFHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set vrf hooks twice")
	}
	k.hooks = hooks
	return k
}

func (k Keeper) getStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// GetParams gets all parameters from the store.
func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	bz := k.getStore(ctx).Get(paramsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams sets the module parameters.
func (k Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	k.getStore(ctx).Set(paramsKey, bz)
	return nil
}

func preSeedKey(requestID string) []byte {
	return append(preSeedKeyPrefix, []byte(requestID)...)
}

func (k Keeper) setPreSeed(ctx sdk.Context, requestID string, preSeed uint64) {
	bz := sdk.Uint64ToBigEndian(preSeed)
	k.getStore(ctx).Set(preSeedKey(requestID), bz)
}

// GetPreSeed returns the pre-seed bound to a live request.
func (k Keeper) GetPreSeed(ctx sdk.Context, requestID string) (uint64, bool) {
	bz := k.getStore(ctx).Get(preSeedKey(requestID))
	if bz == nil {
		return 0, false
	}
	return sdk.BigEndianToUint64(bz), true
}

func (k Keeper) deletePreSeed(ctx sdk.Context, requestID string) {
	k.getStore(ctx).Delete(preSeedKey(requestID))
}
