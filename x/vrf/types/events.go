package types

// Event types for the vrf module
const (
	EventTypeRandomWordsRequested = "vrf_random_words_requested"
	EventTypeRandomWordsFulfilled = "vrf_random_words_fulfilled"
	EventTypeRequestCanceled      = "vrf_request_canceled"
	EventTypeOracleRegistered     = "vrf_oracle_registered"
	EventTypeOracleDeregistered   = "vrf_oracle_deregistered"
	EventTypeConfigSet            = "vrf_config_set"
	EventTypeParamsUpdated        = "vrf_params_updated"
)

// Event attribute keys
const (
	AttributeKeyRequestID   = "request_id"
	AttributeKeyKeyHash     = "key_hash"
	AttributeKeyAccID       = "acc_id"
	AttributeKeyPreSeed     = "pre_seed"
	AttributeKeyNumWords    = "num_words"
	AttributeKeySender      = "sender"
	AttributeKeyOracle      = "oracle"
	AttributeKeyPayment     = "payment"
	AttributeKeySuccess     = "success"
	AttributeKeyBlockNumber = "block_number"
)
