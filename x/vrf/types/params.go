package types

import (
	"fmt"
)

// DefaultMaxNumWords caps the random words a single request may ask
// for.
const DefaultMaxNumWords = uint32(500)

// Params are the vrf module parameters.
type Params struct {
	MaxNumWords uint32 `json:"max_num_words"`
}

// DefaultParams returns the default vrf parameters.
func DefaultParams() Params {
	return Params{
		MaxNumWords: DefaultMaxNumWords,
	}
}

// Validate checks the parameter set.
func (p Params) Validate() error {
	if p.MaxNumWords == 0 {
		return fmt.Errorf("max num words must be positive")
	}
	return nil
}
