package patterns

import "errors"

var (
	// ErrInvalidRule is returned when a rule has an empty label or expression.
	ErrInvalidRule = errors.New("invalid pattern rule")

	// ErrEmptyTable is returned when a table is built from no rules.
	ErrEmptyTable = errors.New("pattern table has no rules")
)
