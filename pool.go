package dsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// newPoolWithConfig is a package-private seam used by tests to force
// deterministic pool-construction outcomes without network dependencies.
var newPoolWithConfig = pgxpool.NewWithConfig

// NewPool resolves cfg and builds a connection pool that mints a fresh
// token for every physical connection it opens, so connections opened long
// after pool construction never reuse an expired password.
//
// Construction does not dial: connections are opened on first acquire (or by
// MinConns warm-up), each minting its own token, and concurrent warm-up
// connections mint independently. Pool sizing, lifetimes, and health checks
// keep pgxpool defaults unless changed through WithPoolConfig. A
// BeforeConnect hook installed by WithPoolConfig is preserved and runs after
// token injection, so it sees the final config for each connection.
func NewPool(ctx context.Context, cfg Config, opts ...Option) (*pgxpool.Pool, error) {
	props, err := Resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(props.ConnString("pgxpool"))
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
		o.connConfigModifier(poolCfg.ConnConfig)
	}
	if o.poolConfigModifier != nil {
		o.poolConfigModifier(poolCfg)
	}

	userBeforeConnect := poolCfg.BeforeConnect
	poolCfg.BeforeConnect = func(ctx context.Context, connCfg *pgx.ConnConfig) error {
		token, err := Token(ctx, props)
		if err != nil {
			return err
		}
		connCfg.Password = token
		if userBeforeConnect != nil {
			return userBeforeConnect(ctx, connCfg)
		}
		return nil
	}

	return newPoolWithConfig(ctx, poolCfg)
}
