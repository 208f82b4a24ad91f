package types

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgCreateAccount                 = "create_account"
	TypeMsgCreateFiatSubscriptionAccount = "create_fiat_subscription_account"
	TypeMsgCreateSubscriptionAccount     = "create_subscription_account"
	TypeMsgCreateDiscountAccount         = "create_discount_account"
	TypeMsgDeposit                       = "deposit"
	TypeMsgWithdraw                      = "withdraw"
	TypeMsgAddConsumer                   = "add_consumer"
	TypeMsgRemoveConsumer                = "remove_consumer"
	TypeMsgRequestOwnerTransfer          = "request_owner_transfer"
	TypeMsgAcceptOwnerTransfer           = "accept_owner_transfer"
	TypeMsgCancelAccount                 = "cancel_account"
	TypeMsgAddCoordinator                = "add_coordinator"
	TypeMsgRemoveCoordinator             = "remove_coordinator"
	TypeMsgUpdateParams                  = "update_params"
)

// MsgCreateAccount opens a fresh regular account owned by the signer.
type MsgCreateAccount struct {
	Owner string `json:"owner"`
}

// MsgCreateFiatSubscriptionAccount opens a fiat-billed subscription
// account. Authority gated.
type MsgCreateFiatSubscriptionAccount struct {
	Authority      string `json:"authority"`
	Owner          string `json:"owner"`
	StartTime      int64  `json:"start_time"`
	Period         int64  `json:"period"`
	ReqPeriodCount uint64 `json:"req_period_count"`
}

// MsgCreateSubscriptionAccount opens a native-coin subscription
// account. Authority gated.
type MsgCreateSubscriptionAccount struct {
	Authority         string      `json:"authority"`
	Owner             string      `json:"owner"`
	StartTime         int64       `json:"start_time"`
	Period            int64       `json:"period"`
	ReqPeriodCount    uint64      `json:"req_period_count"`
	SubscriptionPrice sdkmath.Int `json:"subscription_price"`
}

// MsgCreateDiscountAccount opens a discounted-ratio account. Authority
// gated.
type MsgCreateDiscountAccount struct {
	Authority string `json:"authority"`
	Owner     string `json:"owner"`
	FeeRatio  uint32 `json:"fee_ratio"`
}

// MsgDeposit adds funds to an account.
type MsgDeposit struct {
	Sender string      `json:"sender"`
	AccID  uint64      `json:"acc_id"`
	Amount sdkmath.Int `json:"amount"`
}

// MsgWithdraw removes funds from an account.
type MsgWithdraw struct {
	Sender string      `json:"sender"`
	AccID  uint64      `json:"acc_id"`
	Amount sdkmath.Int `json:"amount"`
}

// MsgAddConsumer authorizes a consumer address on an account.
type MsgAddConsumer struct {
	Sender   string `json:"sender"`
	AccID    uint64 `json:"acc_id"`
	Consumer string `json:"consumer"`
}

// MsgRemoveConsumer deauthorizes a consumer address.
type MsgRemoveConsumer struct {
	Sender   string `json:"sender"`
	AccID    uint64 `json:"acc_id"`
	Consumer string `json:"consumer"`
}

// MsgRequestOwnerTransfer starts a two-phase ownership handoff.
type MsgRequestOwnerTransfer struct {
	Sender   string `json:"sender"`
	AccID    uint64 `json:"acc_id"`
	NewOwner string `json:"new_owner"`
}

// MsgAcceptOwnerTransfer completes a pending ownership handoff.
type MsgAcceptOwnerTransfer struct {
	Sender string `json:"sender"`
	AccID  uint64 `json:"acc_id"`
}

// MsgCancelAccount closes an account and refunds the remaining balance.
type MsgCancelAccount struct {
	Sender string `json:"sender"`
	AccID  uint64 `json:"acc_id"`
	To     string `json:"to"`
}

// MsgAddCoordinator registers a coordinator module with the ledger.
// Authority gated.
type MsgAddCoordinator struct {
	Authority string `json:"authority"`
	Name      string `json:"name"`
}

// MsgRemoveCoordinator removes a coordinator module. Authority gated.
type MsgRemoveCoordinator struct {
	Authority string `json:"authority"`
	Name      string `json:"name"`
}

// MsgUpdateParams replaces the module params. Authority gated.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// Response types

type MsgCreateAccountResponse struct {
	AccID uint64 `json:"acc_id"`
}
type MsgCreateFiatSubscriptionAccountResponse struct {
	AccID uint64 `json:"acc_id"`
}
type MsgCreateSubscriptionAccountResponse struct {
	AccID uint64 `json:"acc_id"`
}
type MsgCreateDiscountAccountResponse struct {
	AccID uint64 `json:"acc_id"`
}
type MsgDepositResponse struct{}
type MsgWithdrawResponse struct{}
type MsgAddConsumerResponse struct{}
type MsgRemoveConsumerResponse struct{}
type MsgRequestOwnerTransferResponse struct{}
type MsgAcceptOwnerTransferResponse struct{}
type MsgCancelAccountResponse struct{}
type MsgAddCoordinatorResponse struct{}
type MsgRemoveCoordinatorResponse struct{}
type MsgUpdateParamsResponse struct{}

// MsgServer is the prepayment transaction surface.
type MsgServer interface {
	CreateAccount(ctx context.Context, msg *MsgCreateAccount) (*MsgCreateAccountResponse, error)
	CreateFiatSubscriptionAccount(ctx context.Context, msg *MsgCreateFiatSubscriptionAccount) (*MsgCreateFiatSubscriptionAccountResponse, error)
	CreateSubscriptionAccount(ctx context.Context, msg *MsgCreateSubscriptionAccount) (*MsgCreateSubscriptionAccountResponse, error)
	CreateDiscountAccount(ctx context.Context, msg *MsgCreateDiscountAccount) (*MsgCreateDiscountAccountResponse, error)
	Deposit(ctx context.Context, msg *MsgDeposit) (*MsgDepositResponse, error)
	Withdraw(ctx context.Context, msg *MsgWithdraw) (*MsgWithdrawResponse, error)
	AddConsumer(ctx context.Context, msg *MsgAddConsumer) (*MsgAddConsumerResponse, error)
	RemoveConsumer(ctx context.Context, msg *MsgRemoveConsumer) (*MsgRemoveConsumerResponse, error)
	RequestOwnerTransfer(ctx context.Context, msg *MsgRequestOwnerTransfer) (*MsgRequestOwnerTransferResponse, error)
	AcceptOwnerTransfer(ctx context.Context, msg *MsgAcceptOwnerTransfer) (*MsgAcceptOwnerTransferResponse, error)
	CancelAccount(ctx context.Context, msg *MsgCancelAccount) (*MsgCancelAccountResponse, error)
	AddCoordinator(ctx context.Context, msg *MsgAddCoordinator) (*MsgAddCoordinatorResponse, error)
	RemoveCoordinator(ctx context.Context, msg *MsgRemoveCoordinator) (*MsgRemoveCoordinatorResponse, error)
	UpdateParams(ctx context.Context, msg *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// ValidateBasic implementations

func (msg *MsgCreateAccount) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}
	return nil
}

func (msg *MsgCreateFiatSubscriptionAccount) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}
	if msg.Period <= 0 {
		return fmt.Errorf("period must be positive")
	}
	if msg.ReqPeriodCount == 0 {
		return fmt.Errorf("request quota must be positive")
	}
	return nil
}

func (msg *MsgCreateSubscriptionAccount) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}
	if msg.Period <= 0 {
		return fmt.Errorf("period must be positive")
	}
	if msg.ReqPeriodCount == 0 {
		return fmt.Errorf("request quota must be positive")
	}
	if msg.SubscriptionPrice.IsNil() || msg.SubscriptionPrice.IsNegative() {
		return fmt.Errorf("subscription price must be non-negative")
	}
	return nil
}

func (msg *MsgCreateDiscountAccount) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}
	if msg.FeeRatio == 0 || msg.FeeRatio >= 100 {
		return fmt.Errorf("fee ratio must be within 1..99")
	}
	return nil
}

func (msg *MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return fmt.Errorf("deposit amount must be positive")
	}
	return nil
}

func (msg *MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return fmt.Errorf("withdraw amount must be positive")
	}
	return nil
}

func (msg *MsgAddConsumer) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Consumer); err != nil {
		return fmt.Errorf("invalid consumer address: %w", err)
	}
	return nil
}

func (msg *MsgRemoveConsumer) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Consumer); err != nil {
		return fmt.Errorf("invalid consumer address: %w", err)
	}
	return nil
}

func (msg *MsgRequestOwnerTransfer) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewOwner); err != nil {
		return fmt.Errorf("invalid new owner address: %w", err)
	}
	return nil
}

func (msg *MsgAcceptOwnerTransfer) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	return nil
}

func (msg *MsgCancelAccount) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	return nil
}

func (msg *MsgAddCoordinator) ValidateBasic() error {
	if msg.Name == "" {
		return fmt.Errorf("coordinator name cannot be empty")
	}
	return nil
}

func (msg *MsgRemoveCoordinator) ValidateBasic() error {
	if msg.Name == "" {
		return fmt.Errorf("coordinator name cannot be empty")
	}
	return nil
}

func (msg *MsgUpdateParams) ValidateBasic() error {
	return msg.Params.Validate()
}

// GetSigners implementations - addresses validated in ValidateBasic

func (msg *MsgCreateAccount) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{owner}
}

func (msg *MsgCreateFiatSubscriptionAccount) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgCreateSubscriptionAccount) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgCreateDiscountAccount) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgDeposit) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgWithdraw) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgAddConsumer) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgRemoveConsumer) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgRequestOwnerTransfer) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgAcceptOwnerTransfer) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgCancelAccount) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgAddCoordinator) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgRemoveCoordinator) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}
