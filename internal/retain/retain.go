// Package retain implements the explicit eviction policy for the
// ever-growing top-level value store. The core retains everything by
// default; a host that needs a memory cap opts in here.
package retain

import (
	"fmt"

	"github.com/oakwood-commons/jsonpane/internal/value"
)

// Policy caps how many top-level values the widget keeps.
type Policy struct {
	// MaxValues keeps only the newest N top-level values (0 = unlimited).
	MaxValues int
}

// Validate rejects nonsensical configurations.
func (p Policy) Validate() error {
	if p.MaxValues < 0 {
		return fmt.Errorf("max values must be non-negative, got %d", p.MaxValues)
	}
	return nil
}

// IsActive reports whether any capping is configured.
func (p Policy) IsActive() bool { return p.MaxValues > 0 }

// Apply trims values to the policy. firstIndex is the stream index of
// values[0]; the returned index accounts for evicted values so surviving
// paths keep their original root indices.
func (p Policy) Apply(values []value.Value, firstIndex int) ([]value.Value, int) {
	if !p.IsActive() || len(values) <= p.MaxValues {
		return values, firstIndex
	}
	drop := len(values) - p.MaxValues
	return values[drop:], firstIndex + drop
}
