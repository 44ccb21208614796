// SPDX-License-Identifier: MIT

package validate

import (
	"fmt"
	"slices"
	"strings"
)

// LogLevels are the levels accepted by the tool configuration, lowest first.
var LogLevels = []string{"debug", "info", "warn", "error"}

// LogLevel validates that value names one of LogLevels, ignoring letter case.
func (v *Validator) LogLevel(field, value string) {
	if slices.Contains(LogLevels, strings.ToLower(value)) {
		return
	}
	v.AddError(field,
		fmt.Sprintf("must be one of %s, got %q", strings.Join(LogLevels, ", "), value),
		value)
}
