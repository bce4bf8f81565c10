package dsql

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Defaults applied by Resolve when a value is absent from both the
// connection string and the Config. Host and region have no defaults;
// they are required.
const (
	// DefaultUser is the administrative user. Connections as this user are
	// authenticated with the admin signing operation.
	DefaultUser = "admin"

	// DefaultDatabase is the database name used when none is supplied.
	DefaultDatabase = "postgres"

	// DefaultTokenDuration bounds the minted token's lifetime when no
	// duration is supplied. The service rejects durations of a week or more.
	DefaultTokenDuration = 60 * time.Second
)

// Config controls connection resolution and token minting.
//
// Zero values mean "not supplied". Values supplied here override values
// parsed from ConnectionString on the same key.
type Config struct {
	// ConnectionString is a URL-form DSN
	// (postgresql://host/dbname?user=...&region=...), a bare hostname, or a
	// bare cluster identifier. Optional when Host is set.
	ConnectionString string

	// Host is the cluster endpoint. A bare cluster identifier is expanded to
	// <id>.dsql.<region>.on.aws using Region or the ambient AWS region.
	Host string

	// Region is the AWS region of the cluster. When empty it is extracted
	// from the host name where possible.
	Region string

	// User defaults to DefaultUser.
	User string

	// Database defaults to DefaultDatabase.
	Database string

	// TokenDuration defaults to DefaultTokenDuration. The value is passed to
	// the signing call unchecked; the service enforces the one-week cap.
	TokenDuration time.Duration

	// Profile selects a named AWS shared-config profile for the credential
	// session.
	Profile string

	// Credentials, when set, is preferred over the default AWS credential
	// chain. A provider that returns empty credentials without error defers
	// to the default chain.
	Credentials aws.CredentialsProvider

	// ApplicationName is prepended as an ORM/framework tag to the composed
	// application_name reported to the server. Blank (after trimming spaces)
	// means no tag.
	ApplicationName string

	// Params are additional driver parameters (sslmode, sslrootcert, port,
	// connect_timeout, ...) passed through to pgx untouched. "database" is
	// accepted as an alias for "dbname".
	Params map[string]string
}
