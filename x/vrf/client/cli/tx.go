package cli

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/orakon-chain/orakon/x/vrf/types"
)

const flagPayment = "payment"

// GetTxCmd returns the transaction commands for the vrf module
func GetTxCmd() *cobra.Command {
	vrfTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "VRF transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	vrfTxCmd.AddCommand(
		CmdRequestRandomWords(),
		CmdCancelRequest(),
	)

	return vrfTxCmd
}

// CmdRequestRandomWords returns a CLI command handler for requesting
// verifiable randomness
func CmdRequestRandomWords() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-random-words [key-hash] [account-id] [callback-gas-limit] [num-words]",
		Short: "Request verifiable random words",
		Long: `Request verifiable random words from a registered proving key.

Billing defaults to the prepayment account given as account-id. Passing
--payment switches to direct payment: the fee estimate is escrowed from the
signer through a one-shot temporary account and account-id is ignored.

Examples:
  Prepaid request:
  $ orakond tx vrf request-random-words 9f2353bd... 7 500000 3 --from consumer-key

  Direct payment request:
  $ orakond tx vrf request-random-words 9f2353bd... 0 500000 3 --payment 1000000 --from consumer-key`,
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
			numWords, err := cast.ToUint32E(args[3])
			if err != nil {
				return fmt.Errorf("invalid num words %s: %w", args[3], err)
			}

			payment := sdkmath.Int{}
			if paymentStr, _ := cmd.Flags().GetString(flagPayment); paymentStr != "" {
				parsed, ok := sdkmath.NewIntFromString(paymentStr)
				if !ok {
					return fmt.Errorf("invalid payment %s", paymentStr)
				}
				payment = parsed
			}

			msg := &types.MsgRequestRandomWords{
				Sender:           clientCtx.GetFromAddress().String(),
				KeyHash:          args[0],
				AccID:            accID,
				CallbackGasLimit: gasLimit,
				NumWords:         numWords,
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
// pending randomness request
func CmdCancelRequest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-request [request-id]",
		Short: "Cancel a pending randomness request",
		Long: `Cancel a pending randomness request. Only the original requester may
cancel; a direct payment escrow is refunded.

Example:
  $ orakond tx vrf cancel-request 3e7a... --from consumer-key`,
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
