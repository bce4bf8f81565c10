package dsql

import "strings"

// Version is reported to the server as part of the composed
// application_name tag.
const Version = "0.1.0"

// BuildApplicationName composes the application_name handed to the driver:
// "aurora-dsql-go-<driverName>/<Version>", prefixed with "<ormPrefix>:" when
// ormPrefix is non-blank. Blankness is decided after trimming leading and
// trailing whitespace; the prefix itself is emitted byte-for-byte, so
// leading or trailing whitespace, colons, slashes, unicode, and control
// characters all survive. Values over the server's length limit are
// truncated by the server, not here.
func BuildApplicationName(driverName, ormPrefix string) string {
	name := "aurora-dsql-go-" + driverName + "/" + Version
	if strings.TrimSpace(ormPrefix) == "" {
		return name
	}
	return ormPrefix + ":" + name
}
