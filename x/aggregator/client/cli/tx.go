package cli

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/orakon-chain/orakon/x/aggregator/types"
)

// GetTxCmd returns the transaction commands for the aggregator module
func GetTxCmd() *cobra.Command {
	aggregatorTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Aggregator transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	aggregatorTxCmd.AddCommand(
		CmdSubmit(),
		CmdRequestNewRound(),
	)

	return aggregatorTxCmd
}

// CmdSubmit returns a CLI command handler for submitting a round value
func CmdSubmit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit [round-id] [value]",
		Short: "Submit a value for an aggregation round",
		Long: `Submit a value for an aggregation round as an enabled oracle.
Submitting to the round after the latest one opens it, provided the latest
round has been answered or timed out.

Example:
  $ orakond tx aggregator submit 42 50000 --from oracle-key`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			roundID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid round id %s: %w", args[0], err)
			}
			value, ok := sdkmath.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid value %s", args[1])
			}

			msg := &types.MsgSubmit{
				Oracle:  clientCtx.GetFromAddress().String(),
				RoundID: roundID,
				Value:   value,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRequestNewRound returns a CLI command handler for forcing a new
// round
func CmdRequestNewRound() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-new-round",
		Short: "Force a new aggregation round",
		Long: `Force a new aggregation round as an authorized requester.

Example:
  $ orakond tx aggregator request-new-round --from requester-key`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgRequestNewRound{
				Requester: clientCtx.GetFromAddress().String(),
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
