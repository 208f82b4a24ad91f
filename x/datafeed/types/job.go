package types

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// ResponseType enumerates the typed responses a data request can ask
// for. It drives submission validation and aggregation.
type ResponseType string

const (
	ResponseUint128 ResponseType = "uint128"
	ResponseInt256  ResponseType = "int256"
	ResponseBool    ResponseType = "bool"
	ResponseString  ResponseType = "string"
	ResponseBytes32 ResponseType = "bytes32"
	ResponseBytes   ResponseType = "bytes"
)

// ResponseTypes lists every supported response type.
var ResponseTypes = []ResponseType{
	ResponseUint128,
	ResponseInt256,
	ResponseBool,
	ResponseString,
	ResponseBytes32,
	ResponseBytes,
}

// Valid reports whether the response type is supported.
func (rt ResponseType) Valid() bool {
	for _, t := range ResponseTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// Numeric reports whether the type aggregates by median.
func (rt ResponseType) Numeric() bool {
	return rt == ResponseUint128 || rt == ResponseInt256
}

// maxUint128 = 2^128 - 1
var maxUint128 = sdkmath.NewIntFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// ValidateValue checks a raw submission value against the response
// type.
func (rt ResponseType) ValidateValue(value string) error {
	switch rt {
	case ResponseUint128:
		v, ok := sdkmath.NewIntFromString(value)
		if !ok || v.IsNegative() || v.GT(maxUint128) {
			return ErrInvalidResponseValue.Wrapf("%q is not a uint128", value)
		}
	case ResponseInt256:
		if _, ok := sdkmath.NewIntFromString(value); !ok {
			return ErrInvalidResponseValue.Wrapf("%q is not an int256", value)
		}
	case ResponseBool:
		if value != "true" && value != "false" {
			return ErrInvalidResponseValue.Wrapf("%q is not a bool", value)
		}
	case ResponseBytes32:
		trimmed := strings.TrimPrefix(value, "0x")
		if _, err := hex.DecodeString(trimmed); err != nil || len(trimmed) != 64 {
			return ErrInvalidResponseValue.Wrapf("%q is not 32 bytes of hex", value)
		}
	case ResponseString, ResponseBytes:
		// any payload accepted
	default:
		return ErrInvalidResponseValue.Wrapf("unsupported response type %q", rt)
	}
	return nil
}

// Job binds a job id to its response type.
type Job struct {
	JobID        string       `json:"job_id"`
	ResponseType ResponseType `json:"response_type"`
}

// Validate checks structural validity of a job.
func (j Job) Validate() error {
	if j.JobID == "" {
		return fmt.Errorf("job id cannot be empty")
	}
	if !j.ResponseType.Valid() {
		return fmt.Errorf("unsupported response type %q", j.ResponseType)
	}
	return nil
}

// DefaultJobs returns one job per supported response type, keyed by the
// type name.
func DefaultJobs() []Job {
	jobs := make([]Job, 0, len(ResponseTypes))
	for _, rt := range ResponseTypes {
		jobs = append(jobs, Job{JobID: string(rt), ResponseType: rt})
	}
	return jobs
}
