package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// Config governs round formation and answer recomputation.
type Config struct {
	MinSubmissionCount uint32 `json:"min_submission_count"`
	MaxSubmissionCount uint32 `json:"max_submission_count"`
	// RestartDelay is the number of rounds an oracle must wait after
	// starting a round before it may start another.
	RestartDelay uint32 `json:"restart_delay"`
	// Timeout in seconds after which an unanswered round becomes
	// supersedable. Zero disables timeouts.
	Timeout int64 `json:"timeout"`
	// Submission value bounds, both inclusive.
	MinSubmissionValue sdkmath.Int `json:"min_submission_value"`
	MaxSubmissionValue sdkmath.Int `json:"max_submission_value"`
}

// DefaultConfig returns the config of a fresh aggregator with no
// oracles yet. ChangeOracles installs the submission counts together
// with the first oracle set.
func DefaultConfig() Config {
	return Config{
		MinSubmissionCount: 0,
		MaxSubmissionCount: 0,
		RestartDelay:       0,
		Timeout:            600,
		MinSubmissionValue: sdkmath.ZeroInt(),
		MaxSubmissionValue: sdkmath.NewIntWithDecimal(1, 27),
	}
}

// Validate checks internal consistency of the config against an oracle
// count.
func (c Config) Validate(oracleCount uint32) error {
	if c.MinSubmissionCount > c.MaxSubmissionCount {
		return ErrMinSubmissionGtMaxSubmission.Wrapf("%d > %d", c.MinSubmissionCount, c.MaxSubmissionCount)
	}
	if c.MaxSubmissionCount > oracleCount {
		return ErrMaxSubmissionGtOracleNum.Wrapf("%d > %d", c.MaxSubmissionCount, oracleCount)
	}
	if oracleCount > 0 {
		if c.MinSubmissionCount == 0 {
			return ErrMinSubmissionZero
		}
		if c.RestartDelay > oracleCount {
			return ErrRestartDelayExceedOracleNum.Wrapf("%d > %d", c.RestartDelay, oracleCount)
		}
	}
	if c.MinSubmissionValue.IsNil() || c.MaxSubmissionValue.IsNil() {
		return ErrInvalidConfig.Wrap("submission value bounds must be set")
	}
	if c.MinSubmissionValue.GT(c.MaxSubmissionValue) {
		return ErrInvalidConfig.Wrap("min submission value exceeds max")
	}
	return nil
}

// Oracle is one enabled submitter and its round bookkeeping.
type Oracle struct {
	Address string `json:"address"`
	Enabled bool   `json:"enabled"`
	// LastReportedRound is the newest round the oracle submitted to.
	LastReportedRound uint64 `json:"last_reported_round"`
	// LastStartedRound is the newest round the oracle opened, the input
	// to restart delay enforcement.
	LastStartedRound uint64 `json:"last_started_round"`
}

// Round is one aggregation round. Answer is only meaningful once
// AnsweredInRound equals the round id.
type Round struct {
	RoundID         uint64      `json:"round_id"`
	Answer          sdkmath.Int `json:"answer"`
	SubmissionCount uint32      `json:"submission_count"`
	StartedAt       int64       `json:"started_at"`
	UpdatedAt       int64       `json:"updated_at"`
	AnsweredInRound uint64      `json:"answered_in_round"`
	StartedBy       string      `json:"started_by"`
}

// Answered reports whether the round reached the minimum submission
// count.
func (r Round) Answered() bool {
	return r.AnsweredInRound == r.RoundID && r.RoundID != 0
}

// Requester is an address allowed to force new rounds.
type Requester struct {
	Address    string `json:"address"`
	Authorized bool   `json:"authorized"`
	// Delay is the number of rounds the requester must wait between
	// forced rounds.
	Delay uint32 `json:"delay"`
	// LastStartedRound is the newest round this requester forced.
	LastStartedRound uint64 `json:"last_started_round"`
}

// PhaseAggregator records one entry of the immutable proxy history.
type PhaseAggregator struct {
	PhaseID    uint16 `json:"phase_id"`
	Aggregator string `json:"aggregator"`
}

// Validate checks a phase history entry.
func (p PhaseAggregator) Validate() error {
	if p.PhaseID == 0 {
		return fmt.Errorf("phase id cannot be zero")
	}
	if p.Aggregator == "" {
		return fmt.Errorf("phase %d has no aggregator", p.PhaseID)
	}
	return nil
}
