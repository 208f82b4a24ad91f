package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/prepayment/types"
	sharedkeeper "github.com/orakon-chain/orakon/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the prepayment
// MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) checkAuthority(authority string) error {
	return sharedkeeper.ValidateAuthority(m.authority, authority)
}

func (m msgServer) CreateAccount(goCtx context.Context, msg *types.MsgCreateAccount) (*types.MsgCreateAccountResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	accID, err := m.Keeper.CreateAccount(ctx, msg.Owner)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateAccountResponse{AccID: accID}, nil
}

func (m msgServer) CreateFiatSubscriptionAccount(goCtx context.Context, msg *types.MsgCreateFiatSubscriptionAccount) (*types.MsgCreateFiatSubscriptionAccountResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	accID, err := m.Keeper.CreateFiatSubscriptionAccount(ctx, msg.Owner, msg.StartTime, msg.Period, msg.ReqPeriodCount)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateFiatSubscriptionAccountResponse{AccID: accID}, nil
}

func (m msgServer) CreateSubscriptionAccount(goCtx context.Context, msg *types.MsgCreateSubscriptionAccount) (*types.MsgCreateSubscriptionAccountResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	accID, err := m.Keeper.CreateSubscriptionAccount(ctx, msg.Owner, msg.StartTime, msg.Period, msg.ReqPeriodCount, msg.SubscriptionPrice)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateSubscriptionAccountResponse{AccID: accID}, nil
}

func (m msgServer) CreateDiscountAccount(goCtx context.Context, msg *types.MsgCreateDiscountAccount) (*types.MsgCreateDiscountAccountResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	accID, err := m.Keeper.CreateDiscountAccount(ctx, msg.Owner, msg.FeeRatio)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateDiscountAccountResponse{AccID: accID}, nil
}

func (m msgServer) Deposit(goCtx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.Deposit(ctx, msg.Sender, msg.AccID, msg.Amount); err != nil {
		return nil, err
	}
	return &types.MsgDepositResponse{}, nil
}

func (m msgServer) Withdraw(goCtx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.Withdraw(ctx, msg.Sender, msg.AccID, msg.Amount); err != nil {
		return nil, err
	}
	return &types.MsgWithdrawResponse{}, nil
}

func (m msgServer) AddConsumer(goCtx context.Context, msg *types.MsgAddConsumer) (*types.MsgAddConsumerResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.AddConsumer(ctx, msg.Sender, msg.AccID, msg.Consumer); err != nil {
		return nil, err
	}
	return &types.MsgAddConsumerResponse{}, nil
}

func (m msgServer) RemoveConsumer(goCtx context.Context, msg *types.MsgRemoveConsumer) (*types.MsgRemoveConsumerResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.RemoveConsumer(ctx, msg.Sender, msg.AccID, msg.Consumer); err != nil {
		return nil, err
	}
	return &types.MsgRemoveConsumerResponse{}, nil
}

func (m msgServer) RequestOwnerTransfer(goCtx context.Context, msg *types.MsgRequestOwnerTransfer) (*types.MsgRequestOwnerTransferResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.RequestOwnerTransfer(ctx, msg.Sender, msg.AccID, msg.NewOwner); err != nil {
		return nil, err
	}
	return &types.MsgRequestOwnerTransferResponse{}, nil
}

func (m msgServer) AcceptOwnerTransfer(goCtx context.Context, msg *types.MsgAcceptOwnerTransfer) (*types.MsgAcceptOwnerTransferResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.AcceptOwnerTransfer(ctx, msg.Sender, msg.AccID); err != nil {
		return nil, err
	}
	return &types.MsgAcceptOwnerTransferResponse{}, nil
}

func (m msgServer) CancelAccount(goCtx context.Context, msg *types.MsgCancelAccount) (*types.MsgCancelAccountResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.CancelAccount(ctx, msg.Sender, msg.AccID, msg.To); err != nil {
		return nil, err
	}
	return &types.MsgCancelAccountResponse{}, nil
}

func (m msgServer) AddCoordinator(goCtx context.Context, msg *types.MsgAddCoordinator) (*types.MsgAddCoordinatorResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.AddCoordinator(ctx, msg.Name); err != nil {
		return nil, err
	}
	return &types.MsgAddCoordinatorResponse{}, nil
}

func (m msgServer) RemoveCoordinator(goCtx context.Context, msg *types.MsgRemoveCoordinator) (*types.MsgRemoveCoordinatorResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.Keeper.RemoveCoordinator(ctx, msg.Name); err != nil {
		return nil, err
	}
	return &types.MsgRemoveCoordinatorResponse{}, nil
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
