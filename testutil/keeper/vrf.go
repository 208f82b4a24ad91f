package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	prepaymentkeeper "github.com/orakon-chain/orakon/x/prepayment/keeper"
	prepaymenttypes "github.com/orakon-chain/orakon/x/prepayment/types"
	vrfkeeper "github.com/orakon-chain/orakon/x/vrf/keeper"
	vrftypes "github.com/orakon-chain/orakon/x/vrf/types"
)

// VRFKeeper creates a test keeper for the vrf module wired to a real
// prepayment keeper, with the vrf module pre-registered as a
// coordinator.
func VRFKeeper(t testing.TB) (*vrfkeeper.Keeper, *prepaymentkeeper.Keeper, bankkeeper.Keeper, sdk.Context) {
	vrfStoreKey := storetypes.NewKVStoreKey(vrftypes.StoreKey)
	prepaymentStoreKey := storetypes.NewKVStoreKey(prepaymenttypes.StoreKey)
	authStoreKey := storetypes.NewKVStoreKey(authtypes.StoreKey)
	bankStoreKey := storetypes.NewKVStoreKey(banktypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(vrfStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(prepaymentStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(authStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	maccPerms := map[string][]string{
		authtypes.FeeCollectorName: nil,
		prepaymenttypes.ModuleName: {authtypes.Minter, authtypes.Burner},
	}

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(authStoreKey),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority.String(),
	)

	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(bankStoreKey),
		accountKeeper,
		map[string]bool{},
		authority.String(),
		log.NewNopLogger(),
	)

	ledger := prepaymentkeeper.NewKeeper(
		prepaymentStoreKey,
		bankKeeper,
		authority.String(),
	)

	k := vrfkeeper.NewKeeper(
		vrfStoreKey,
		ledger,
		authority.String(),
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	require.NoError(t, ledger.SetParams(ctx, prepaymenttypes.DefaultParams()))
	require.NoError(t, ledger.AddCoordinator(ctx, vrftypes.ModuleName))
	require.NoError(t, k.SetParams(ctx, vrftypes.DefaultParams()))

	return k, ledger, bankKeeper, ctx
}
