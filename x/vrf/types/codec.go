package types

import (
	"encoding/json"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterLegacyAminoCodec registers the vrf module's types on the
// LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgRegisterOracle{}, "vrf/RegisterOracle", nil)
	cdc.RegisterConcrete(&MsgDeregisterOracle{}, "vrf/DeregisterOracle", nil)
	cdc.RegisterConcrete(&MsgSetConfig{}, "vrf/SetConfig", nil)
	cdc.RegisterConcrete(&MsgRequestRandomWords{}, "vrf/RequestRandomWords", nil)
	cdc.RegisterConcrete(&MsgFulfillRandomWords{}, "vrf/FulfillRandomWords", nil)
	cdc.RegisterConcrete(&MsgCancelRequest{}, "vrf/CancelRequest", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "vrf/UpdateParams", nil)
}

// RegisterInterfaces registers the vrf module's message types.
func RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgRegisterOracle{},
		&MsgDeregisterOracle{},
		&MsgSetConfig{},
		&MsgRequestRandomWords{},
		&MsgFulfillRandomWords{},
		&MsgCancelRequest{},
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

func (msg *MsgRegisterOracle) Reset()         { *msg = MsgRegisterOracle{} }
func (msg *MsgRegisterOracle) String() string { return msgString(msg) }
func (*MsgRegisterOracle) ProtoMessage()      {}

func (msg *MsgDeregisterOracle) Reset()         { *msg = MsgDeregisterOracle{} }
func (msg *MsgDeregisterOracle) String() string { return msgString(msg) }
func (*MsgDeregisterOracle) ProtoMessage()      {}

func (msg *MsgSetConfig) Reset()         { *msg = MsgSetConfig{} }
func (msg *MsgSetConfig) String() string { return msgString(msg) }
func (*MsgSetConfig) ProtoMessage()      {}

func (msg *MsgRequestRandomWords) Reset()         { *msg = MsgRequestRandomWords{} }
func (msg *MsgRequestRandomWords) String() string { return msgString(msg) }
func (*MsgRequestRandomWords) ProtoMessage()      {}

func (msg *MsgFulfillRandomWords) Reset()         { *msg = MsgFulfillRandomWords{} }
func (msg *MsgFulfillRandomWords) String() string { return msgString(msg) }
func (*MsgFulfillRandomWords) ProtoMessage()      {}

func (msg *MsgCancelRequest) Reset()         { *msg = MsgCancelRequest{} }
func (msg *MsgCancelRequest) String() string { return msgString(msg) }
func (*MsgCancelRequest) ProtoMessage()      {}

func (msg *MsgUpdateParams) Reset()         { *msg = MsgUpdateParams{} }
func (msg *MsgUpdateParams) String() string { return msgString(msg) }
func (*MsgUpdateParams) ProtoMessage()      {}
