package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// AccountType is the billing mode of a prepayment account.
type AccountType int32

const (
	// ACCOUNT_TEMPORARY lives only for a single direct-payment request.
	ACCOUNT_TEMPORARY AccountType = iota
	// ACCOUNT_FIAT_SUBSCRIPTION is billed off-chain; requests consume a
	// period quota instead of balance once the subscription is paid.
	ACCOUNT_FIAT_SUBSCRIPTION
	// ACCOUNT_NATIVE_SUBSCRIPTION prepays a subscription in native coin
	// for a per-period request quota.
	ACCOUNT_NATIVE_SUBSCRIPTION
	// ACCOUNT_NATIVE_DISCOUNT debits balance at a discounted fee ratio.
	ACCOUNT_NATIVE_DISCOUNT
	// ACCOUNT_NATIVE_REGULAR debits balance at the full tier fee.
	ACCOUNT_NATIVE_REGULAR
)

// String implements fmt.Stringer.
func (t AccountType) String() string {
	switch t {
	case ACCOUNT_TEMPORARY:
		return "TEMPORARY"
	case ACCOUNT_FIAT_SUBSCRIPTION:
		return "FIAT_SUBSCRIPTION"
	case ACCOUNT_NATIVE_SUBSCRIPTION:
		return "NATIVE_SUBSCRIPTION"
	case ACCOUNT_NATIVE_DISCOUNT:
		return "NATIVE_DISCOUNT"
	case ACCOUNT_NATIVE_REGULAR:
		return "NATIVE_REGULAR"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int32(t))
	}
}

// Account is a prepayment account record. Balance is held by the module
// account; the record tracks the per-account share.
type Account struct {
	AccID           uint64      `json:"acc_id"`
	Owner           string      `json:"owner"`
	RequestedOwner  string      `json:"requested_owner,omitempty"`
	Balance         sdkmath.Int `json:"balance"`
	Consumers       []string    `json:"consumers"`
	ReqCount        uint64      `json:"req_count"`
	PendingReqCount uint64      `json:"pending_req_count"`
	AccType         AccountType `json:"acc_type"`

	// Discount accounts only: percentage of the computed fee actually
	// charged, 1..99.
	FeeRatio uint32 `json:"fee_ratio,omitempty"`

	// Subscription accounts only.
	StartTime         int64       `json:"start_time,omitempty"`
	Period            int64       `json:"period,omitempty"`
	ReqPeriodCount    uint64      `json:"req_period_count,omitempty"`
	PeriodReqCount    uint64      `json:"period_req_count,omitempty"`
	SubscriptionPrice sdkmath.Int `json:"subscription_price,omitempty"`
	SubscriptionPaid  bool        `json:"subscription_paid,omitempty"`
}

// HasConsumer reports whether the address is in the authorized set.
func (a Account) HasConsumer(consumer string) bool {
	for _, c := range a.Consumers {
		if c == consumer {
			return true
		}
	}
	return false
}

// Validate checks structural validity of an account record.
func (a Account) Validate() error {
	if a.Owner == "" {
		return fmt.Errorf("account %d has no owner", a.AccID)
	}
	if a.Balance.IsNil() || a.Balance.IsNegative() {
		return fmt.Errorf("account %d has invalid balance", a.AccID)
	}
	if len(a.Consumers) > MaxConsumers {
		return fmt.Errorf("account %d exceeds consumer limit", a.AccID)
	}
	if a.AccType == ACCOUNT_NATIVE_DISCOUNT && (a.FeeRatio == 0 || a.FeeRatio >= 100) {
		return fmt.Errorf("account %d discount ratio %d out of range", a.AccID, a.FeeRatio)
	}
	return nil
}
