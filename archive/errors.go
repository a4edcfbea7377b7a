package archive

import "errors"

var (
	// ErrUnsupportedDriver indicates a driver name other than sqlite3 or pgx.
	ErrUnsupportedDriver = errors.New("unsupported archive driver")

	// ErrDSNRequired indicates an empty data source name.
	ErrDSNRequired = errors.New("archive DSN is required")
)
