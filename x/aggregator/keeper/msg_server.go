package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/aggregator/types"
	sharedkeeper "github.com/orakon-chain/orakon/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the aggregator
// MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) checkAuthority(authority string) error {
	return sharedkeeper.ValidateAuthority(m.authority, authority)
}

func (m msgServer) ChangeOracles(goCtx context.Context, msg *types.MsgChangeOracles) (*types.MsgChangeOraclesResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.ChangeOracles(ctx, msg.Removed, msg.Added, msg.MinSubmissionCount, msg.MaxSubmissionCount, msg.RestartDelay); err != nil {
		return nil, err
	}
	return &types.MsgChangeOraclesResponse{}, nil
}

func (m msgServer) Submit(goCtx context.Context, msg *types.MsgSubmit) (*types.MsgSubmitResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	answer, updated, err := m.Keeper.Submit(ctx, msg.Oracle, msg.RoundID, msg.Value)
	if err != nil {
		return nil, err
	}
	return &types.MsgSubmitResponse{Answer: answer, AnswerUpdated: updated}, nil
}

func (m msgServer) RequestNewRound(goCtx context.Context, msg *types.MsgRequestNewRound) (*types.MsgRequestNewRoundResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	roundID, err := m.Keeper.RequestNewRound(ctx, msg.Requester)
	if err != nil {
		return nil, err
	}
	return &types.MsgRequestNewRoundResponse{RoundID: roundID}, nil
}

func (m msgServer) SetRequesterPermissions(goCtx context.Context, msg *types.MsgSetRequesterPermissions) (*types.MsgSetRequesterPermissionsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.SetRequesterPermissions(ctx, msg.Requester, msg.Authorized, msg.Delay); err != nil {
		return nil, err
	}
	return &types.MsgSetRequesterPermissionsResponse{}, nil
}

func (m msgServer) ProposeAggregator(goCtx context.Context, msg *types.MsgProposeAggregator) (*types.MsgProposeAggregatorResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.ProposeAggregator(ctx, msg.Aggregator); err != nil {
		return nil, err
	}
	return &types.MsgProposeAggregatorResponse{}, nil
}

func (m msgServer) ConfirmAggregator(goCtx context.Context, msg *types.MsgConfirmAggregator) (*types.MsgConfirmAggregatorResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	phaseID, err := m.Keeper.ConfirmAggregator(ctx, msg.Aggregator)
	if err != nil {
		return nil, err
	}
	return &types.MsgConfirmAggregatorResponse{PhaseID: phaseID}, nil
}

func (m msgServer) UpdateConfig(goCtx context.Context, msg *types.MsgUpdateConfig) (*types.MsgUpdateConfigResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.SetConfig(ctx, msg.Config); err != nil {
		return nil, err
	}
	return &types.MsgUpdateConfigResponse{}, nil
}
