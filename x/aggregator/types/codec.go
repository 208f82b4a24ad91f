package types

import (
	"encoding/json"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterLegacyAminoCodec registers the aggregator module's types on
// the LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgChangeOracles{}, "aggregator/ChangeOracles", nil)
	cdc.RegisterConcrete(&MsgSubmit{}, "aggregator/Submit", nil)
	cdc.RegisterConcrete(&MsgRequestNewRound{}, "aggregator/RequestNewRound", nil)
	cdc.RegisterConcrete(&MsgSetRequesterPermissions{}, "aggregator/SetRequesterPermissions", nil)
	cdc.RegisterConcrete(&MsgProposeAggregator{}, "aggregator/ProposeAggregator", nil)
	cdc.RegisterConcrete(&MsgConfirmAggregator{}, "aggregator/ConfirmAggregator", nil)
	cdc.RegisterConcrete(&MsgUpdateConfig{}, "aggregator/UpdateConfig", nil)
}

// RegisterInterfaces registers the aggregator module's message types.
func RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgChangeOracles{},
		&MsgSubmit{},
		&MsgRequestNewRound{},
		&MsgSetRequesterPermissions{},
		&MsgProposeAggregator{},
		&MsgConfirmAggregator{},
		&MsgUpdateConfig{},
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

func (msg *MsgChangeOracles) Reset()         { *msg = MsgChangeOracles{} }
func (msg *MsgChangeOracles) String() string { return msgString(msg) }
func (*MsgChangeOracles) ProtoMessage()      {}

func (msg *MsgSubmit) Reset()         { *msg = MsgSubmit{} }
func (msg *MsgSubmit) String() string { return msgString(msg) }
func (*MsgSubmit) ProtoMessage()      {}

func (msg *MsgRequestNewRound) Reset()         { *msg = MsgRequestNewRound{} }
func (msg *MsgRequestNewRound) String() string { return msgString(msg) }
func (*MsgRequestNewRound) ProtoMessage()      {}

func (msg *MsgSetRequesterPermissions) Reset()         { *msg = MsgSetRequesterPermissions{} }
func (msg *MsgSetRequesterPermissions) String() string { return msgString(msg) }
func (*MsgSetRequesterPermissions) ProtoMessage()      {}

func (msg *MsgProposeAggregator) Reset()         { *msg = MsgProposeAggregator{} }
func (msg *MsgProposeAggregator) String() string { return msgString(msg) }
func (*MsgProposeAggregator) ProtoMessage()      {}

func (msg *MsgConfirmAggregator) Reset()         { *msg = MsgConfirmAggregator{} }
func (msg *MsgConfirmAggregator) String() string { return msgString(msg) }
func (*MsgConfirmAggregator) ProtoMessage()      {}

func (msg *MsgUpdateConfig) Reset()         { *msg = MsgUpdateConfig{} }
func (msg *MsgUpdateConfig) String() string { return msgString(msg) }
func (*MsgUpdateConfig) ProtoMessage()      {}
