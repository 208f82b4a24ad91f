package types

// Event types for the aggregator module
const (
	EventTypeNewRound             = "aggregator_new_round"
	EventTypeSubmissionReceived   = "aggregator_submission_received"
	EventTypeAnswerUpdated        = "aggregator_answer_updated"
	EventTypeOraclesChanged       = "aggregator_oracles_changed"
	EventTypeRequesterPermissions = "aggregator_requester_permissions_set"
	EventTypeAggregatorProposed   = "aggregator_proposed"
	EventTypeAggregatorConfirmed  = "aggregator_confirmed"
	EventTypeConfigUpdated        = "aggregator_config_updated"
)

// Event attribute keys
const (
	AttributeKeyRoundID    = "round_id"
	AttributeKeyOracle     = "oracle"
	AttributeKeyValue      = "value"
	AttributeKeyAnswer     = "answer"
	AttributeKeyStartedBy  = "started_by"
	AttributeKeyRequester  = "requester"
	AttributeKeyAuthorized = "authorized"
	AttributeKeyAggregator = "aggregator"
	AttributeKeyPhaseID    = "phase_id"
)
