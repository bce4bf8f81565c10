package dsql

import "strings"

// MissingParameterError is returned by Resolve when host or region cannot be
// determined after parsing the connection string, merging keyword values, and
// applying defaults. It is produced before any network activity so callers
// can fix configuration without waiting on a signing round trip.
type MissingParameterError struct {
	// Missing holds the absent parameter names in host, region order.
	Missing []string
}

func (e *MissingParameterError) Error() string {
	msg := "Missing required parameters: " + strings.Join(e.Missing, ", ")
	for _, name := range e.Missing {
		if name == "region" {
			msg += "\n  region was not provided and could not be extracted from host"
		}
	}
	return msg
}

// InvalidParameterError is returned by Resolve when a supplied parameter
// value cannot be interpreted, one reason per line. The token lifetime's
// one-week upper bound is deliberately not checked here; the service
// enforces it and its rejection message reaches the caller verbatim.
type InvalidParameterError struct {
	Reasons []string
}

func (e *InvalidParameterError) Error() string {
	return strings.Join(e.Reasons, "\n")
}
