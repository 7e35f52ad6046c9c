// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Generic ordered fallback chain evaluation

package fallback

import (
	"fmt"
	"strings"
)

// Tier is one strategy in an ordered degradation chain.
type Tier struct {
	// Name identifies the tier in logs and results
	Name string

	// Precondition gates the attempt; nil means always attempt.
	// A tier whose precondition fails is skipped, not counted as a failure.
	Precondition func() bool

	// Attempt runs the tier. A nil return ends the chain successfully.
	Attempt func() error

	// Recoverable reports whether the failure allows the next tier to run.
	// nil means no failure of this tier is recoverable.
	Recoverable func(err error) bool
}

// ExhaustedError is returned when every tier in a chain failed.
// The first tier's error is the primary explanation.
type ExhaustedError struct {
	First    error
	Attempts []string
}

// Error returns a description leading with the first failure
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all strategies failed (%s): %v", strings.Join(e.Attempts, ", "), e.First)
}

// Unwrap exposes the primary error for errors.Is/As
func (e *ExhaustedError) Unwrap() error {
	return e.First
}

// Run evaluates tiers in order and returns the name of the first tier whose
// Attempt succeeds. A failure that the tier does not consider recoverable
// terminates the chain immediately and is returned as-is. If every attempted
// tier fails recoverably, an ExhaustedError carrying the first failure is
// returned.
func Run(tiers []Tier) (string, error) {
	var firstErr error
	var attempted []string

	for _, tier := range tiers {
		if tier.Precondition != nil && !tier.Precondition() {
			continue
		}

		attempted = append(attempted, tier.Name)

		err := tier.Attempt()
		if err == nil {
			return tier.Name, nil
		}

		if firstErr == nil {
			firstErr = err
		}

		if tier.Recoverable == nil || !tier.Recoverable(err) {
			return "", err
		}
	}

	if firstErr == nil {
		return "", fmt.Errorf("no strategy was eligible to run")
	}

	return "", &ExhaustedError{First: firstErr, Attempts: attempted}
}
