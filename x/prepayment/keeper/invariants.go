package keeper

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/orakon-chain/orakon/x/prepayment/types"
)

// RegisterInvariants registers the prepayment module invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "module-balance", ModuleBalanceInvariant(k))
}

// ModuleBalanceInvariant checks that the module account holds at least
// the sum of every account record's balance.
func ModuleBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		total := sdkmath.ZeroInt()
		k.IterateAccounts(ctx, func(acc types.Account) bool {
			total = total.Add(acc.Balance)
			return false
		})

		params := k.GetParams(ctx)
		moduleAddr := authtypes.NewModuleAddress(types.ModuleName)
		held := k.bankKeeper.GetBalance(ctx, moduleAddr, params.Denom)

		broken := held.Amount.LT(total)
		return sdk.FormatInvariant(types.ModuleName, "module-balance",
			fmt.Sprintf("module holds %s, account records sum to %s", held.Amount, total),
		), broken
	}
}
