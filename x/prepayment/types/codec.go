package types

import (
	"encoding/json"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterLegacyAminoCodec registers the prepayment module's types on
// the LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreateAccount{}, "prepayment/CreateAccount", nil)
	cdc.RegisterConcrete(&MsgCreateFiatSubscriptionAccount{}, "prepayment/CreateFiatSubscriptionAccount", nil)
	cdc.RegisterConcrete(&MsgCreateSubscriptionAccount{}, "prepayment/CreateSubscriptionAccount", nil)
	cdc.RegisterConcrete(&MsgCreateDiscountAccount{}, "prepayment/CreateDiscountAccount", nil)
	cdc.RegisterConcrete(&MsgDeposit{}, "prepayment/Deposit", nil)
	cdc.RegisterConcrete(&MsgWithdraw{}, "prepayment/Withdraw", nil)
	cdc.RegisterConcrete(&MsgAddConsumer{}, "prepayment/AddConsumer", nil)
	cdc.RegisterConcrete(&MsgRemoveConsumer{}, "prepayment/RemoveConsumer", nil)
	cdc.RegisterConcrete(&MsgRequestOwnerTransfer{}, "prepayment/RequestOwnerTransfer", nil)
	cdc.RegisterConcrete(&MsgAcceptOwnerTransfer{}, "prepayment/AcceptOwnerTransfer", nil)
	cdc.RegisterConcrete(&MsgCancelAccount{}, "prepayment/CancelAccount", nil)
	cdc.RegisterConcrete(&MsgAddCoordinator{}, "prepayment/AddCoordinator", nil)
	cdc.RegisterConcrete(&MsgRemoveCoordinator{}, "prepayment/RemoveCoordinator", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "prepayment/UpdateParams", nil)
}

// RegisterInterfaces registers the prepayment module's message types.
func RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreateAccount{},
		&MsgCreateFiatSubscriptionAccount{},
		&MsgCreateSubscriptionAccount{},
		&MsgCreateDiscountAccount{},
		&MsgDeposit{},
		&MsgWithdraw{},
		&MsgAddConsumer{},
		&MsgRemoveConsumer{},
		&MsgRequestOwnerTransfer{},
		&MsgAcceptOwnerTransfer{},
		&MsgCancelAccount{},
		&MsgAddCoordinator{},
		&MsgRemoveCoordinator{},
		&MsgUpdateParams{},
	)
}

func msgString(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}

// proto.Message conformance for the hand-written message types

func (msg *MsgCreateAccount) Reset()         { *msg = MsgCreateAccount{} }
func (msg *MsgCreateAccount) String() string { return msgString(msg) }
func (*MsgCreateAccount) ProtoMessage()      {}

func (msg *MsgCreateFiatSubscriptionAccount) Reset()         { *msg = MsgCreateFiatSubscriptionAccount{} }
func (msg *MsgCreateFiatSubscriptionAccount) String() string { return msgString(msg) }
func (*MsgCreateFiatSubscriptionAccount) ProtoMessage()      {}

func (msg *MsgCreateSubscriptionAccount) Reset()         { *msg = MsgCreateSubscriptionAccount{} }
func (msg *MsgCreateSubscriptionAccount) String() string { return msgString(msg) }
func (*MsgCreateSubscriptionAccount) ProtoMessage()      {}

func (msg *MsgCreateDiscountAccount) Reset()         { *msg = MsgCreateDiscountAccount{} }
func (msg *MsgCreateDiscountAccount) String() string { return msgString(msg) }
func (*MsgCreateDiscountAccount) ProtoMessage()      {}

func (msg *MsgDeposit) Reset()         { *msg = MsgDeposit{} }
func (msg *MsgDeposit) String() string { return msgString(msg) }
func (*MsgDeposit) ProtoMessage()      {}

func (msg *MsgWithdraw) Reset()         { *msg = MsgWithdraw{} }
func (msg *MsgWithdraw) String() string { return msgString(msg) }
func (*MsgWithdraw) ProtoMessage()      {}

func (msg *MsgAddConsumer) Reset()         { *msg = MsgAddConsumer{} }
func (msg *MsgAddConsumer) String() string { return msgString(msg) }
func (*MsgAddConsumer) ProtoMessage()      {}

func (msg *MsgRemoveConsumer) Reset()         { *msg = MsgRemoveConsumer{} }
func (msg *MsgRemoveConsumer) String() string { return msgString(msg) }
func (*MsgRemoveConsumer) ProtoMessage()      {}

func (msg *MsgRequestOwnerTransfer) Reset()         { *msg = MsgRequestOwnerTransfer{} }
func (msg *MsgRequestOwnerTransfer) String() string { return msgString(msg) }
func (*MsgRequestOwnerTransfer) ProtoMessage()      {}

func (msg *MsgAcceptOwnerTransfer) Reset()         { *msg = MsgAcceptOwnerTransfer{} }
func (msg *MsgAcceptOwnerTransfer) String() string { return msgString(msg) }
func (*MsgAcceptOwnerTransfer) ProtoMessage()      {}

func (msg *MsgCancelAccount) Reset()         { *msg = MsgCancelAccount{} }
func (msg *MsgCancelAccount) String() string { return msgString(msg) }
func (*MsgCancelAccount) ProtoMessage()      {}

func (msg *MsgAddCoordinator) Reset()         { *msg = MsgAddCoordinator{} }
func (msg *MsgAddCoordinator) String() string { return msgString(msg) }
func (*MsgAddCoordinator) ProtoMessage()      {}

func (msg *MsgRemoveCoordinator) Reset()         { *msg = MsgRemoveCoordinator{} }
func (msg *MsgRemoveCoordinator) String() string { return msgString(msg) }
func (*MsgRemoveCoordinator) ProtoMessage()      {}

func (msg *MsgUpdateParams) Reset()         { *msg = MsgUpdateParams{} }
func (msg *MsgUpdateParams) String() string { return msgString(msg) }
func (*MsgUpdateParams) ProtoMessage()      {}
