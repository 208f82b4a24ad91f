package cli

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/prepayment/types"
)

// GetTxCmd returns the transaction commands for the prepayment module
func GetTxCmd() *cobra.Command {
	prepaymentTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Prepayment transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	prepaymentTxCmd.AddCommand(
		CmdCreateAccount(),
		CmdDeposit(),
		CmdWithdraw(),
		CmdAddConsumer(),
		CmdRemoveConsumer(),
		CmdRequestOwnerTransfer(),
		CmdAcceptOwnerTransfer(),
		CmdCancelAccount(),
	)

	return prepaymentTxCmd
}

// CmdCreateAccount returns a CLI command handler for opening a regular
// prepayment account
func CmdCreateAccount() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Open a regular prepayment account owned by the signer",
		Long: `Open a regular prepayment account owned by the signer.

Example:
  $ orakond tx prepayment create-account --from owner-key`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCreateAccount{
				Owner: clientCtx.GetFromAddress().String(),
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

// CmdDeposit returns a CLI command handler for funding an account
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [account-id] [amount]",
		Short: "Deposit funds into a prepayment account",
		Long: `Deposit native coins into a prepayment account. For an inactive
subscription account, a deposit covering the subscription price activates
the subscription period.

Example:
  $ orakond tx prepayment deposit 7 1000000 --from owner-key`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			accID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id %s: %w", args[0], err)
			}
			amount, ok := sdkmath.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid amount %s", args[1])
			}

			msg := &types.MsgDeposit{
				Sender: clientCtx.GetFromAddress().String(),
				AccID:  accID,
				Amount: amount,
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

// CmdWithdraw returns a CLI command handler for withdrawing account funds
func CmdWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [account-id] [amount]",
		Short: "Withdraw funds from a prepayment account",
		Long: `Withdraw native coins from a prepayment account. Only the account
owner may withdraw, and not while requests are pending.

Example:
  $ orakond tx prepayment withdraw 7 500000 --from owner-key`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			accID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id %s: %w", args[0], err)
			}
			amount, ok := sdkmath.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid amount %s", args[1])
			}

			msg := &types.MsgWithdraw{
				Sender: clientCtx.GetFromAddress().String(),
				AccID:  accID,
				Amount: amount,
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

// CmdAddConsumer returns a CLI command handler for authorizing a consumer
func CmdAddConsumer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-consumer [account-id] [consumer-address]",
		Short: "Authorize a consumer address on a prepayment account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			accID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id %s: %w", args[0], err)
			}
			if _, err := sdk.AccAddressFromBech32(args[1]); err != nil {
				return fmt.Errorf("invalid consumer address %s: %w", args[1], err)
			}

			msg := &types.MsgAddConsumer{
				Sender:   clientCtx.GetFromAddress().String(),
				AccID:    accID,
				Consumer: args[1],
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

// CmdRemoveConsumer returns a CLI command handler for removing a consumer
func CmdRemoveConsumer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-consumer [account-id] [consumer-address]",
		Short: "Remove a consumer address from a prepayment account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			accID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id %s: %w", args[0], err)
			}
			if _, err := sdk.AccAddressFromBech32(args[1]); err != nil {
				return fmt.Errorf("invalid consumer address %s: %w", args[1], err)
			}

			msg := &types.MsgRemoveConsumer{
				Sender:   clientCtx.GetFromAddress().String(),
				AccID:    accID,
				Consumer: args[1],
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

// CmdRequestOwnerTransfer returns a CLI command handler for starting an
// ownership handoff
func CmdRequestOwnerTransfer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-owner-transfer [account-id] [new-owner]",
		Short: "Request transferring account ownership to another address",
		Long: `Start a two-phase ownership handoff. The new owner must accept the
transfer before it takes effect.

Example:
  $ orakond tx prepayment request-owner-transfer 7 orakon1newowner... --from owner-key`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			accID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id %s: %w", args[0], err)
			}
			if _, err := sdk.AccAddressFromBech32(args[1]); err != nil {
				return fmt.Errorf("invalid new owner address %s: %w", args[1], err)
			}

			msg := &types.MsgRequestOwnerTransfer{
				Sender:   clientCtx.GetFromAddress().String(),
				AccID:    accID,
				NewOwner: args[1],
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

// CmdAcceptOwnerTransfer returns a CLI command handler for completing an
// ownership handoff
func CmdAcceptOwnerTransfer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept-owner-transfer [account-id]",
		Short: "Accept a pending account ownership transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			accID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id %s: %w", args[0], err)
			}

			msg := &types.MsgAcceptOwnerTransfer{
				Sender: clientCtx.GetFromAddress().String(),
				AccID:  accID,
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

// CmdCancelAccount returns a CLI command handler for closing an account
func CmdCancelAccount() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-account [account-id] [refund-address]",
		Short: "Close a prepayment account and refund the remaining balance",
		Long: `Close a prepayment account and send the remaining balance to the
refund address. Not allowed while requests are pending.

Example:
  $ orakond tx prepayment cancel-account 7 orakon1refund... --from owner-key`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			accID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id %s: %w", args[0], err)
			}
			if _, err := sdk.AccAddressFromBech32(args[1]); err != nil {
				return fmt.Errorf("invalid refund address %s: %w", args[1], err)
			}

			msg := &types.MsgCancelAccount{
				Sender: clientCtx.GetFromAddress().String(),
				AccID:  accID,
				To:     args[1],
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
