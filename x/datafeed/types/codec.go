package types

import (
	"encoding/json"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterLegacyAminoCodec registers the datafeed module's types on
// the LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgRegisterOracle{}, "datafeed/RegisterOracle", nil)
	cdc.RegisterConcrete(&MsgDeregisterOracle{}, "datafeed/DeregisterOracle", nil)
	cdc.RegisterConcrete(&MsgRegisterJob{}, "datafeed/RegisterJob", nil)
	cdc.RegisterConcrete(&MsgSetConfig{}, "datafeed/SetConfig", nil)
	cdc.RegisterConcrete(&MsgRequestData{}, "datafeed/RequestData", nil)
	cdc.RegisterConcrete(&MsgSubmitData{}, "datafeed/SubmitData", nil)
	cdc.RegisterConcrete(&MsgCancelRequest{}, "datafeed/CancelRequest", nil)
}

// RegisterInterfaces registers the datafeed module's message types.
func RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgRegisterOracle{},
		&MsgDeregisterOracle{},
		&MsgRegisterJob{},
		&MsgSetConfig{},
		&MsgRequestData{},
		&MsgSubmitData{},
		&MsgCancelRequest{},
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

func (msg *MsgRegisterJob) Reset()         { *msg = MsgRegisterJob{} }
func (msg *MsgRegisterJob) String() string { return msgString(msg) }
func (*MsgRegisterJob) ProtoMessage()      {}

func (msg *MsgSetConfig) Reset()         { *msg = MsgSetConfig{} }
func (msg *MsgSetConfig) String() string { return msgString(msg) }
func (*MsgSetConfig) ProtoMessage()      {}

func (msg *MsgRequestData) Reset()         { *msg = MsgRequestData{} }
func (msg *MsgRequestData) String() string { return msgString(msg) }
func (*MsgRequestData) ProtoMessage()      {}

func (msg *MsgSubmitData) Reset()         { *msg = MsgSubmitData{} }
func (msg *MsgSubmitData) String() string { return msgString(msg) }
func (*MsgSubmitData) ProtoMessage()      {}

func (msg *MsgCancelRequest) Reset()         { *msg = MsgCancelRequest{} }
func (msg *MsgCancelRequest) String() string { return msgString(msg) }
func (*MsgCancelRequest) ProtoMessage()      {}
