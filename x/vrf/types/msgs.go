package types

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/shared/coordinator"
)

// Message type URLs
const (
	TypeMsgRegisterOracle     = "register_oracle"
	TypeMsgDeregisterOracle   = "deregister_oracle"
	TypeMsgSetConfig          = "set_config"
	TypeMsgRequestRandomWords = "request_random_words"
	TypeMsgFulfillRandomWords = "fulfill_random_words"
	TypeMsgCancelRequest      = "cancel_request"
	TypeMsgUpdateParams       = "update_params"
)

// MsgRegisterOracle adds an oracle with its proving key hash. Authority
// gated.
type MsgRegisterOracle struct {
	Authority string `json:"authority"`
	Oracle    string `json:"oracle"`
	KeyHash   string `json:"key_hash"`
}

// MsgDeregisterOracle removes an oracle. Authority gated.
type MsgDeregisterOracle struct {
	Authority string `json:"authority"`
	Oracle    string `json:"oracle"`
}

// MsgSetConfig replaces the coordinator config. Authority gated.
type MsgSetConfig struct {
	Authority string             `json:"authority"`
	Config    coordinator.Config `json:"config"`
}

// MsgRequestRandomWords asks for verifiable randomness. A positive
// Payment makes it a direct payment request billed through a temporary
// account; otherwise the prepayment account identified by AccID pays.
type MsgRequestRandomWords struct {
	Sender           string      `json:"sender"`
	KeyHash          string      `json:"key_hash"`
	AccID            uint64      `json:"acc_id"`
	CallbackGasLimit uint64      `json:"callback_gas_limit"`
	NumWords         uint32      `json:"num_words"`
	Payment          sdkmath.Int `json:"payment"`
}

// IsDirectPayment reports whether the request is billed directly.
func (msg *MsgRequestRandomWords) IsDirectPayment() bool {
	return !msg.Payment.IsNil() && msg.Payment.IsPositive()
}

// MsgFulfillRandomWords delivers the randomness for a request. The
// commitment fields must match the stored commitment exactly.
type MsgFulfillRandomWords struct {
	Oracle           string `json:"oracle"`
	RequestID        string `json:"request_id"`
	Proof            Proof  `json:"proof"`
	BlockNum         int64  `json:"block_num"`
	AccID            uint64 `json:"acc_id"`
	CallbackGasLimit uint64 `json:"callback_gas_limit"`
	NumWords         uint32 `json:"num_words"`
	Sender           string `json:"sender"`
	IsDirectPayment  bool   `json:"is_direct_payment"`
}

// MsgCancelRequest withdraws a pending request.
type MsgCancelRequest struct {
	Sender    string `json:"sender"`
	RequestID string `json:"request_id"`
}

// MsgUpdateParams replaces the module params. Authority gated.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// Response types

type MsgRegisterOracleResponse struct{}
type MsgDeregisterOracleResponse struct{}
type MsgSetConfigResponse struct{}
type MsgRequestRandomWordsResponse struct {
	RequestID string `json:"request_id"`
}
type MsgFulfillRandomWordsResponse struct {
	Payment sdkmath.Int `json:"payment"`
	Success bool        `json:"success"`
}
type MsgCancelRequestResponse struct{}
type MsgUpdateParamsResponse struct{}

// MsgServer is the vrf transaction surface.
type MsgServer interface {
	RegisterOracle(ctx context.Context, msg *MsgRegisterOracle) (*MsgRegisterOracleResponse, error)
	DeregisterOracle(ctx context.Context, msg *MsgDeregisterOracle) (*MsgDeregisterOracleResponse, error)
	SetConfig(ctx context.Context, msg *MsgSetConfig) (*MsgSetConfigResponse, error)
	RequestRandomWords(ctx context.Context, msg *MsgRequestRandomWords) (*MsgRequestRandomWordsResponse, error)
	FulfillRandomWords(ctx context.Context, msg *MsgFulfillRandomWords) (*MsgFulfillRandomWordsResponse, error)
	CancelRequest(ctx context.Context, msg *MsgCancelRequest) (*MsgCancelRequestResponse, error)
	UpdateParams(ctx context.Context, msg *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// ValidateBasic implementations

func (msg *MsgRegisterOracle) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return fmt.Errorf("invalid oracle address: %w", err)
	}
	if msg.KeyHash == "" {
		return fmt.Errorf("key hash cannot be empty")
	}
	return nil
}

func (msg *MsgDeregisterOracle) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return fmt.Errorf("invalid oracle address: %w", err)
	}
	return nil
}

func (msg *MsgSetConfig) ValidateBasic() error {
	return msg.Config.Validate()
}

func (msg *MsgRequestRandomWords) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if msg.KeyHash == "" {
		return fmt.Errorf("key hash cannot be empty")
	}
	if msg.NumWords == 0 {
		return fmt.Errorf("num words must be positive")
	}
	if !msg.IsDirectPayment() && msg.AccID == 0 {
		return fmt.Errorf("account id required for prepaid requests")
	}
	return nil
}

func (msg *MsgFulfillRandomWords) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return fmt.Errorf("invalid oracle address: %w", err)
	}
	if msg.RequestID == "" {
		return fmt.Errorf("request id cannot be empty")
	}
	return msg.Proof.Validate()
}

func (msg *MsgCancelRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if msg.RequestID == "" {
		return fmt.Errorf("request id cannot be empty")
	}
	return nil
}

func (msg *MsgUpdateParams) ValidateBasic() error {
	return msg.Params.Validate()
}

// GetSigners implementations - addresses validated in ValidateBasic

func (msg *MsgRegisterOracle) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgDeregisterOracle) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgSetConfig) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgRequestRandomWords) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgFulfillRandomWords) GetSigners() []sdk.AccAddress {
	oracle, _ := sdk.AccAddressFromBech32(msg.Oracle)
	return []sdk.AccAddress{oracle}
}

func (msg *MsgCancelRequest) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}
