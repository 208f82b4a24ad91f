package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/datafeed/types"
	"github.com/orakon-chain/orakon/x/shared/coordinator"
	sharedkeeper "github.com/orakon-chain/orakon/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the datafeed MsgServer
// interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) checkAuthority(authority string) error {
	return sharedkeeper.ValidateAuthority(m.authority, authority)
}

func (m msgServer) RegisterOracle(goCtx context.Context, msg *types.MsgRegisterOracle) (*types.MsgRegisterOracleResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.RegisterOracle(ctx, msg.Oracle, ""); err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeOracleRegistered,
		sdk.NewAttribute(types.AttributeKeyOracle, msg.Oracle),
	))
	return &types.MsgRegisterOracleResponse{}, nil
}

func (m msgServer) DeregisterOracle(goCtx context.Context, msg *types.MsgDeregisterOracle) (*types.MsgDeregisterOracleResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.DeregisterOracle(ctx, msg.Oracle); err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeOracleDeregistered,
		sdk.NewAttribute(types.AttributeKeyOracle, msg.Oracle),
	))
	return &types.MsgDeregisterOracleResponse{}, nil
}

func (m msgServer) RegisterJob(goCtx context.Context, msg *types.MsgRegisterJob) (*types.MsgRegisterJobResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.RegisterJob(ctx, msg.Job); err != nil {
		return nil, err
	}
	return &types.MsgRegisterJobResponse{}, nil
}

func (m msgServer) SetConfig(goCtx context.Context, msg *types.MsgSetConfig) (*types.MsgSetConfigResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.Base.SetConfig(ctx, msg.Config); err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeConfigSet))
	return &types.MsgSetConfigResponse{}, nil
}

func (m msgServer) RequestData(goCtx context.Context, msg *types.MsgRequestData) (*types.MsgRequestDataResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	requestID, err := m.Keeper.RequestData(ctx, msg.Sender, msg.JobID, msg.AccID, msg.CallbackGasLimit, msg.NumSubmission, msg.Payment)
	if err != nil {
		return nil, err
	}
	return &types.MsgRequestDataResponse{RequestID: requestID}, nil
}

func (m msgServer) SubmitData(goCtx context.Context, msg *types.MsgSubmitData) (*types.MsgSubmitDataResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	provided := coordinator.RequestCommitment{
		BlockNum:         msg.BlockNum,
		AccID:            msg.AccID,
		CallbackGasLimit: msg.CallbackGasLimit,
		NumSubmission:    msg.NumSubmission,
		Sender:           msg.Sender,
		IsDirectPayment:  msg.IsDirectPayment,
		JobID:            msg.JobID,
	}
	fulfilled, err := m.Keeper.SubmitData(ctx, msg.Oracle, msg.RequestID, msg.Value, provided)
	if err != nil {
		return nil, err
	}
	return &types.MsgSubmitDataResponse{Fulfilled: fulfilled}, nil
}

func (m msgServer) CancelRequest(goCtx context.Context, msg *types.MsgCancelRequest) (*types.MsgCancelRequestResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.CancelDataRequest(ctx, msg.Sender, msg.RequestID); err != nil {
		return nil, err
	}
	return &types.MsgCancelRequestResponse{}, nil
}
