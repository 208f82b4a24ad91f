package coordinator

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// RequestCommitment pins every parameter a consumer committed to at
// request time. The full struct is stored keyed by request id and must
// match field for field at fulfillment or cancellation; it is deleted
// exactly once, which is what makes fulfillment exactly-once.
//
// NumSubmission doubles as numWords for randomness requests; JobID
// doubles as the hex proving key hash there.
type RequestCommitment struct {
	BlockNum         int64  `json:"block_num"`
	AccID            uint64 `json:"acc_id"`
	CallbackGasLimit uint64 `json:"callback_gas_limit"`
	NumSubmission    uint32 `json:"num_submission"`
	Sender           string `json:"sender"`
	IsDirectPayment  bool   `json:"is_direct_payment"`
	JobID            string `json:"job_id"`
}

// Equal reports whether two commitments agree on every field.
func (rc RequestCommitment) Equal(other RequestCommitment) bool {
	return rc == other
}

// DeriveRequestID computes the deterministic request id for a
// (sender, account, nonce) triple. The ledger nonce is strictly
// increasing per pair, so ids never collide or replay.
func DeriveRequestID(sender string, accID, nonce uint64) string {
	h := sha256.New()
	h.Write([]byte(sender))
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], accID)
	binary.BigEndian.PutUint64(buf[8:], nonce)
	h.Write(buf[:])
	return hex.EncodeToString(h.Sum(nil))
}
