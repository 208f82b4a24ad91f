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
	TypeMsgRegisterOracle   = "register_oracle"
	TypeMsgDeregisterOracle = "deregister_oracle"
	TypeMsgRegisterJob      = "register_job"
	TypeMsgSetConfig        = "set_config"
	TypeMsgRequestData      = "request_data"
	TypeMsgSubmitData       = "submit_data"
	TypeMsgCancelRequest    = "cancel_request"
)

// MsgRegisterOracle adds an oracle to the fulfiller set. Authority
// gated.
type MsgRegisterOracle struct {
	Authority string `json:"authority"`
	Oracle    string `json:"oracle"`
}

// MsgDeregisterOracle removes an oracle. Authority gated.
type MsgDeregisterOracle struct {
	Authority string `json:"authority"`
	Oracle    string `json:"oracle"`
}

// MsgRegisterJob registers a job id with a response type. Authority
// gated.
type MsgRegisterJob struct {
	Authority string `json:"authority"`
	Job       Job    `json:"job"`
}

// MsgSetConfig replaces the coordinator config. Authority gated.
type MsgSetConfig struct {
	Authority string             `json:"authority"`
	Config    coordinator.Config `json:"config"`
}

// MsgRequestData opens a typed data request. A positive Payment makes
// it a direct payment request billed through a temporary account.
type MsgRequestData struct {
	Sender           string      `json:"sender"`
	JobID            string      `json:"job_id"`
	AccID            uint64      `json:"acc_id"`
	CallbackGasLimit uint64      `json:"callback_gas_limit"`
	NumSubmission    uint32      `json:"num_submission"`
	Payment          sdkmath.Int `json:"payment"`
}

// IsDirectPayment reports whether the request is billed directly.
func (msg *MsgRequestData) IsDirectPayment() bool {
	return !msg.Payment.IsNil() && msg.Payment.IsPositive()
}

// MsgSubmitData delivers one oracle's response for a request. The
// commitment fields must match the stored commitment exactly.
type MsgSubmitData struct {
	Oracle           string `json:"oracle"`
	RequestID        string `json:"request_id"`
	Value            string `json:"value"`
	BlockNum         int64  `json:"block_num"`
	AccID            uint64 `json:"acc_id"`
	CallbackGasLimit uint64 `json:"callback_gas_limit"`
	NumSubmission    uint32 `json:"num_submission"`
	JobID            string `json:"job_id"`
	Sender           string `json:"sender"`
	IsDirectPayment  bool   `json:"is_direct_payment"`
}

// MsgCancelRequest withdraws a pending request.
type MsgCancelRequest struct {
	Sender    string `json:"sender"`
	RequestID string `json:"request_id"`
}

// Response types

type MsgRegisterOracleResponse struct{}
type MsgDeregisterOracleResponse struct{}
type MsgRegisterJobResponse struct{}
type MsgSetConfigResponse struct{}
type MsgRequestDataResponse struct {
	RequestID string `json:"request_id"`
}
type MsgSubmitDataResponse struct {
	Fulfilled bool `json:"fulfilled"`
}
type MsgCancelRequestResponse struct{}

// MsgServer is the datafeed transaction surface.
type MsgServer interface {
	RegisterOracle(ctx context.Context, msg *MsgRegisterOracle) (*MsgRegisterOracleResponse, error)
	DeregisterOracle(ctx context.Context, msg *MsgDeregisterOracle) (*MsgDeregisterOracleResponse, error)
	RegisterJob(ctx context.Context, msg *MsgRegisterJob) (*MsgRegisterJobResponse, error)
	SetConfig(ctx context.Context, msg *MsgSetConfig) (*MsgSetConfigResponse, error)
	RequestData(ctx context.Context, msg *MsgRequestData) (*MsgRequestDataResponse, error)
	SubmitData(ctx context.Context, msg *MsgSubmitData) (*MsgSubmitDataResponse, error)
	CancelRequest(ctx context.Context, msg *MsgCancelRequest) (*MsgCancelRequestResponse, error)
}

// ValidateBasic implementations

func (msg *MsgRegisterOracle) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return fmt.Errorf("invalid oracle address: %w", err)
	}
	return nil
}

func (msg *MsgDeregisterOracle) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return fmt.Errorf("invalid oracle address: %w", err)
	}
	return nil
}

func (msg *MsgRegisterJob) ValidateBasic() error {
	return msg.Job.Validate()
}

func (msg *MsgSetConfig) ValidateBasic() error {
	return msg.Config.Validate()
}

func (msg *MsgRequestData) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if msg.JobID == "" {
		return fmt.Errorf("job id cannot be empty")
	}
	if msg.NumSubmission == 0 {
		return fmt.Errorf("num submission must be positive")
	}
	if !msg.IsDirectPayment() && msg.AccID == 0 {
		return fmt.Errorf("account id required for prepaid requests")
	}
	return nil
}

func (msg *MsgSubmitData) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return fmt.Errorf("invalid oracle address: %w", err)
	}
	if msg.RequestID == "" {
		return fmt.Errorf("request id cannot be empty")
	}
	return nil
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

// GetSigners implementations - addresses validated in ValidateBasic

func (msg *MsgRegisterOracle) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgDeregisterOracle) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgRegisterJob) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgSetConfig) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgRequestData) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

func (msg *MsgSubmitData) GetSigners() []sdk.AccAddress {
	oracle, _ := sdk.AccAddressFromBech32(msg.Oracle)
	return []sdk.AccAddress{oracle}
}

func (msg *MsgCancelRequest) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}
