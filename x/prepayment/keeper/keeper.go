package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/prepayment/types"
	"github.com/orakon-chain/orakon/x/shared/nonce"
)

// Keeper of the prepayment store. It owns every account record, the
// consumer authorization sets, the per-(account, consumer) nonces and
// the registered coordinator set.
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	authority  string
}

// NewKeeper creates a new prepayment Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
		authority:  authority,
	}
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetAuthority returns the module's authority (governance account)
func (k Keeper) GetAuthority() string {
	return k.authority
}

func (k Keeper) getStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// prepaymentErrorProvider wraps shared nonce errors with prepayment
// error types.
type prepaymentErrorProvider struct{}

func (p prepaymentErrorProvider) InvalidConsumerError(msg string) error {
	return types.ErrInvalidConsumer.Wrap(msg)
}

// nonceManager returns the shared nonce manager instance for the
// prepayment module
func (k Keeper) nonceManager() *nonce.Manager {
	return nonce.NewManager(k.storeKey, prepaymentErrorProvider{}, types.ModuleName)
}

// GetParams gets all parameters from the store
func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	bz := k.getStore(ctx).Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams sets the module parameters
func (k Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	k.getStore(ctx).Set(ParamsKey, bz)
	return nil
}
