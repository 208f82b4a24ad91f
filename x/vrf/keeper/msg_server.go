package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/shared/coordinator"
	sharedkeeper "github.com/orakon-chain/orakon/x/shared/keeper"
	"github.com/orakon-chain/orakon/x/vrf/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the vrf MsgServer
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
	if err := m.Keeper.RegisterProvingOracle(ctx, msg.Oracle, msg.KeyHash); err != nil {
		return nil, err
	}
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
	if err := m.Keeper.DeregisterProvingOracle(ctx, msg.Oracle); err != nil {
		return nil, err
	}
	return &types.MsgDeregisterOracleResponse{}, nil
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

func (m msgServer) RequestRandomWords(goCtx context.Context, msg *types.MsgRequestRandomWords) (*types.MsgRequestRandomWordsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	requestID, err := m.Keeper.RequestRandomWords(ctx, msg.Sender, msg.KeyHash, msg.AccID, msg.CallbackGasLimit, msg.NumWords, msg.Payment)
	if err != nil {
		return nil, err
	}
	return &types.MsgRequestRandomWordsResponse{RequestID: requestID}, nil
}

func (m msgServer) FulfillRandomWords(goCtx context.Context, msg *types.MsgFulfillRandomWords) (*types.MsgFulfillRandomWordsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	provided := coordinator.RequestCommitment{
		BlockNum:         msg.BlockNum,
		AccID:            msg.AccID,
		CallbackGasLimit: msg.CallbackGasLimit,
		NumSubmission:    msg.NumWords,
		Sender:           msg.Sender,
		IsDirectPayment:  msg.IsDirectPayment,
		JobID:            msg.Proof.KeyHash,
	}
	payment, success, err := m.Keeper.FulfillRandomWords(ctx, msg.Oracle, msg.RequestID, msg.Proof, provided)
	if err != nil {
		return nil, err
	}
	return &types.MsgFulfillRandomWordsResponse{Payment: payment, Success: success}, nil
}

func (m msgServer) CancelRequest(goCtx context.Context, msg *types.MsgCancelRequest) (*types.MsgCancelRequestResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.CancelRandomWordsRequest(ctx, msg.Sender, msg.RequestID); err != nil {
		return nil, err
	}
	return &types.MsgCancelRequestResponse{}, nil
}

func (m msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.SetParams(ctx, msg.Params); err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeParamsUpdated))
	return &types.MsgUpdateParamsResponse{}, nil
}
