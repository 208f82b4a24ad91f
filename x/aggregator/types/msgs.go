package types

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgChangeOracles           = "change_oracles"
	TypeMsgSubmit                  = "submit"
	TypeMsgRequestNewRound         = "request_new_round"
	TypeMsgSetRequesterPermissions = "set_requester_permissions"
	TypeMsgProposeAggregator       = "propose_aggregator"
	TypeMsgConfirmAggregator       = "confirm_aggregator"
	TypeMsgUpdateConfig            = "update_config"
)

// MsgChangeOracles removes and adds oracles and sets the submission
// counts and restart delay in one shot so the config stays consistent
// with the oracle set. Authority gated.
type MsgChangeOracles struct {
	Authority          string   `json:"authority"`
	Removed            []string `json:"removed"`
	Added              []string `json:"added"`
	MinSubmissionCount uint32   `json:"min_submission_count"`
	MaxSubmissionCount uint32   `json:"max_submission_count"`
	RestartDelay       uint32   `json:"restart_delay"`
}

// MsgSubmit reports a value for a round. RoundID must be the current
// round or the next one when the current round is supersedable.
type MsgSubmit struct {
	Oracle  string      `json:"oracle"`
	RoundID uint64      `json:"round_id"`
	Value   sdkmath.Int `json:"value"`
}

// MsgRequestNewRound forces a new round. The requester must be
// authorized and past its delay.
type MsgRequestNewRound struct {
	Requester string `json:"requester"`
}

// MsgSetRequesterPermissions grants or revokes the right to force
// rounds. Authority gated.
type MsgSetRequesterPermissions struct {
	Authority  string `json:"authority"`
	Requester  string `json:"requester"`
	Authorized bool   `json:"authorized"`
	Delay      uint32 `json:"delay"`
}

// MsgProposeAggregator stages the next phase aggregator. Authority
// gated.
type MsgProposeAggregator struct {
	Authority  string `json:"authority"`
	Aggregator string `json:"aggregator"`
}

// MsgConfirmAggregator promotes the proposed aggregator to a new
// phase. Authority gated.
type MsgConfirmAggregator struct {
	Authority  string `json:"authority"`
	Aggregator string `json:"aggregator"`
}

// MsgUpdateConfig replaces the full aggregator config. Authority
// gated.
type MsgUpdateConfig struct {
	Authority string `json:"authority"`
	Config    Config `json:"config"`
}

// Response types

type MsgChangeOraclesResponse struct{}
type MsgSubmitResponse struct {
	Answer sdkmath.Int `json:"answer"`
	// AnswerUpdated reports whether this submission recomputed the
	// round answer.
	AnswerUpdated bool `json:"answer_updated"`
}
type MsgRequestNewRoundResponse struct {
	RoundID uint64 `json:"round_id"`
}
type MsgSetRequesterPermissionsResponse struct{}
type MsgProposeAggregatorResponse struct{}
type MsgConfirmAggregatorResponse struct {
	PhaseID uint16 `json:"phase_id"`
}
type MsgUpdateConfigResponse struct{}

// MsgServer is the aggregator transaction surface.
type MsgServer interface {
	ChangeOracles(ctx context.Context, msg *MsgChangeOracles) (*MsgChangeOraclesResponse, error)
	Submit(ctx context.Context, msg *MsgSubmit) (*MsgSubmitResponse, error)
	RequestNewRound(ctx context.Context, msg *MsgRequestNewRound) (*MsgRequestNewRoundResponse, error)
	SetRequesterPermissions(ctx context.Context, msg *MsgSetRequesterPermissions) (*MsgSetRequesterPermissionsResponse, error)
	ProposeAggregator(ctx context.Context, msg *MsgProposeAggregator) (*MsgProposeAggregatorResponse, error)
	ConfirmAggregator(ctx context.Context, msg *MsgConfirmAggregator) (*MsgConfirmAggregatorResponse, error)
	UpdateConfig(ctx context.Context, msg *MsgUpdateConfig) (*MsgUpdateConfigResponse, error)
}

// ValidateBasic implementations

func (msg *MsgChangeOracles) ValidateBasic() error {
	for _, oracle := range msg.Removed {
		if _, err := sdk.AccAddressFromBech32(oracle); err != nil {
			return fmt.Errorf("invalid removed oracle address: %w", err)
		}
	}
	for _, oracle := range msg.Added {
		if _, err := sdk.AccAddressFromBech32(oracle); err != nil {
			return fmt.Errorf("invalid added oracle address: %w", err)
		}
	}
	if msg.MinSubmissionCount > msg.MaxSubmissionCount {
		return ErrMinSubmissionGtMaxSubmission.Wrapf("%d > %d", msg.MinSubmissionCount, msg.MaxSubmissionCount)
	}
	return nil
}

func (msg *MsgSubmit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return fmt.Errorf("invalid oracle address: %w", err)
	}
	if msg.RoundID == 0 {
		return fmt.Errorf("round id must be positive")
	}
	if msg.Value.IsNil() {
		return fmt.Errorf("value cannot be nil")
	}
	return nil
}

func (msg *MsgRequestNewRound) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Requester); err != nil {
		return fmt.Errorf("invalid requester address: %w", err)
	}
	return nil
}

func (msg *MsgSetRequesterPermissions) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Requester); err != nil {
		return fmt.Errorf("invalid requester address: %w", err)
	}
	return nil
}

func (msg *MsgProposeAggregator) ValidateBasic() error {
	if msg.Aggregator == "" {
		return fmt.Errorf("aggregator cannot be empty")
	}
	return nil
}

func (msg *MsgConfirmAggregator) ValidateBasic() error {
	if msg.Aggregator == "" {
		return fmt.Errorf("aggregator cannot be empty")
	}
	return nil
}

func (msg *MsgUpdateConfig) ValidateBasic() error {
	if msg.Config.MinSubmissionCount > msg.Config.MaxSubmissionCount {
		return ErrMinSubmissionGtMaxSubmission.Wrapf("%d > %d", msg.Config.MinSubmissionCount, msg.Config.MaxSubmissionCount)
	}
	if msg.Config.MinSubmissionValue.IsNil() || msg.Config.MaxSubmissionValue.IsNil() {
		return ErrInvalidConfig.Wrap("submission value bounds must be set")
	}
	return nil
}

// GetSigners implementations - addresses validated in ValidateBasic

func (msg *MsgChangeOracles) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgSubmit) GetSigners() []sdk.AccAddress {
	oracle, _ := sdk.AccAddressFromBech32(msg.Oracle)
	return []sdk.AccAddress{oracle}
}

func (msg *MsgRequestNewRound) GetSigners() []sdk.AccAddress {
	requester, _ := sdk.AccAddressFromBech32(msg.Requester)
	return []sdk.AccAddress{requester}
}

func (msg *MsgSetRequesterPermissions) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgProposeAggregator) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgConfirmAggregator) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgUpdateConfig) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}
