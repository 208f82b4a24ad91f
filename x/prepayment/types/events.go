package types

// Event types for the prepayment module
const (
	EventTypeAccountCreated          = "prepayment_account_created"
	EventTypeAccountCanceled         = "prepayment_account_canceled"
	EventTypeAccountBalanceIncreased = "prepayment_account_balance_increased"
	EventTypeAccountBalanceDecreased = "prepayment_account_balance_decreased"
	EventTypeConsumerAdded           = "prepayment_consumer_added"
	EventTypeConsumerRemoved         = "prepayment_consumer_removed"
	EventTypeOwnerTransferRequested  = "prepayment_owner_transfer_requested"
	EventTypeOwnerTransferred        = "prepayment_owner_transferred"
	EventTypePeriodReqIncreased      = "prepayment_period_req_increased"
	EventTypeCoordinatorAdded        = "prepayment_coordinator_added"
	EventTypeCoordinatorRemoved      = "prepayment_coordinator_removed"
	EventTypeParamsUpdated           = "prepayment_params_updated"
)

// Event attribute keys
const (
	AttributeKeyAccID          = "acc_id"
	AttributeKeyAccType        = "acc_type"
	AttributeKeyOwner          = "owner"
	AttributeKeyRequestedOwner = "requested_owner"
	AttributeKeyConsumer       = "consumer"
	AttributeKeyOldBalance     = "old_balance"
	AttributeKeyNewBalance     = "new_balance"
	AttributeKeyBurned         = "burned"
	AttributeKeyProtocolFee    = "protocol_fee"
	AttributeKeyOperatorFee    = "operator_fee"
	AttributeKeyOperator       = "operator"
	AttributeKeyCoordinator    = "coordinator"
	AttributeKeyRecipient      = "recipient"
	AttributeKeyPeriodReqCount = "period_req_count"
)
