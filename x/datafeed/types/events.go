package types

// Event types for the datafeed module
const (
	EventTypeDataRequested        = "datafeed_data_requested"
	EventTypeDataSubmitted        = "datafeed_data_submitted"
	EventTypeDataRequestFulfilled = "datafeed_data_request_fulfilled"
	EventTypeRequestCanceled      = "datafeed_request_canceled"
	EventTypeOracleRegistered     = "datafeed_oracle_registered"
	EventTypeOracleDeregistered   = "datafeed_oracle_deregistered"
	EventTypeJobRegistered        = "datafeed_job_registered"
	EventTypeConfigSet            = "datafeed_config_set"
	EventTypeParamsUpdated        = "datafeed_params_updated"
)

// Event attribute keys
const (
	AttributeKeyRequestID     = "request_id"
	AttributeKeyJobID         = "job_id"
	AttributeKeyResponseType  = "response_type"
	AttributeKeyAccID         = "acc_id"
	AttributeKeyNumSubmission = "num_submission"
	AttributeKeySender        = "sender"
	AttributeKeyOracle        = "oracle"
	AttributeKeyValue         = "value"
	AttributeKeyPayment       = "payment"
	AttributeKeySuccess       = "success"
)
