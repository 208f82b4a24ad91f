package cli

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/orakon-chain/orakon/x/datafeed/types"
)

const flagPayment = "payment"

// GetTxCmd returns the transaction commands for the datafeed module
func GetTxCmd() *cobra.Command {
	datafeedTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Datafeed transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	datafeedTxCmd.AddCommand(
		CmdRequestData(),
		CmdCancelRequest(),
	)

	return datafeedTxCmd
}

// CmdRequestData returns a CLI command handler for opening a typed data
// request
func CmdRequestData() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-data [job-id] [account-id] [callback-gas-limit] [num-submission]",
		Short: "Request typed oracle data",
		Long: `Request data for a registered job. The response type of the job decides
how the oracle submissions are aggregated: median for numeric jobs, majority
vote for booleans, first submission otherwise.

Billing defaults to the prepayment account given as account-id. Passing
--payment switches to direct payment from the signer.

Examples:
  Prepaid uint128 request with three oracle submissions:
  $ orakond tx datafeed request-data uint128 7 500000 3 --from consumer-key

  Direct payment request:
  $ orakond tx datafeed request-data bool 0 500000 2 --payment 1000000 --from consumer-key`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			accID, err := cast.ToUint64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid account id %s: %w", args[1], err)
			}
			gasLimit, err := cast.ToUint64E(args[2])
			if err != nil {
				return fmt.Errorf("invalid callback gas limit %s: %w", args[2], err)
			}
			numSubmission, err := cast.ToUint32E(args[3])
			if err != nil {
				return fmt.Errorf("invalid num submission %s: %w", args[3], err)
			}

			payment := sdkmath.Int{}
			if paymentStr, _ := cmd.Flags().GetString(flagPayment); paymentStr != "" {
				parsed, ok := sdkmath.NewIntFromString(paymentStr)
				if !ok {
					return fmt.Errorf("invalid payment %s", paymentStr)
				}
				payment = parsed
			}

			msg := &types.MsgRequestData{
				Sender:           clientCtx.GetFromAddress().String(),
				JobID:            args[0],
				AccID:            accID,
				CallbackGasLimit: gasLimit,
				NumSubmission:    numSubmission,
				Payment:          payment,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagPayment, "", "direct payment amount; omit for prepaid billing")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCancelRequest returns a CLI command handler for withdrawing a
// pending data request
func CmdCancelRequest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-request [request-id]",
		Short: "Cancel a pending data request",
		Long: `Cancel a pending data request. Only the original requester may cancel;
partial submissions are discarded and a direct payment escrow is refunded.

Example:
  $ orakond tx datafeed cancel-request 3e7a... --from consumer-key`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCancelRequest{
				Sender:    clientCtx.GetFromAddress().String(),
				RequestID: args[0],
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
