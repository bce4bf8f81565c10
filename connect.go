package dsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Option configures the driver adapters for advanced use cases.
type Option func(*connectOptions)

type connectOptions struct {
	connConfigModifier func(*pgx.ConnConfig)
	poolConfigModifier func(*pgxpool.Config)
}

// connectConfig is a package-private seam used by tests to inspect the final
// connection config without dialing a cluster.
var connectConfig = pgx.ConnectConfig

// WithConnConfig allows low-level pgx configuration of each connection.
//
// The modifier runs after standard configuration and before a token is
// minted, so a password set here is overwritten by the token.
func WithConnConfig(fn func(*pgx.ConnConfig)) Option {
	return func(o *connectOptions) {
		o.connConfigModifier = fn
	}
}

// WithPoolConfig allows low-level pgxpool configuration (sizing, lifetimes,
// health checks). Connect ignores it; NewPool applies it after standard
// configuration.
func WithPoolConfig(fn func(*pgxpool.Config)) Option {
	return func(o *connectOptions) {
		o.poolConfigModifier = fn
	}
}

// Connect resolves cfg, mints a token, and opens a single authenticated
// connection.
//
// The token serves as the connection password and is minted immediately
// before dialing; it is not retained, and reconnecting requires another
// Connect call. Resolution failures, credential and signing errors, and pgx
// connect errors are returned unmodified.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*pgx.Conn, error) {
	props, err := Resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}

	connCfg, err := pgx.ParseConfig(props.ConnString("pgx"))
	if err != nil {
		return nil, err
	}

	var o connectOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	if o.connConfigModifier != nil {
		o.connConfigModifier(connCfg)
	}

	token, err := Token(ctx, props)
	if err != nil {
		return nil, err
	}
	connCfg.Password = token

	return connectConfig(ctx, connCfg)
}
