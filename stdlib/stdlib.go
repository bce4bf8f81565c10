// Package stdlib adapts IAM-authenticated cluster connections to
// database/sql through the pgx stdlib driver.
//
// Both entry points resolve configuration once, up front, and then mint a
// fresh token each time the connector opens a physical connection, so pools
// managed by database/sql can grow and replace connections indefinitely
// without holding an expiring password.
package stdlib

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/jackc/pgx/v5"
	pgxstdlib "github.com/jackc/pgx/v5/stdlib"

	"github.com/dsql-go/dsql"
)

// GetConnector resolves cfg and returns a connector whose every Connect
// call mints a fresh token.
//
// Caller options are applied first and the token hook last, so a
// caller-supplied OptionBeforeConnect is replaced by token injection; use
// OptionAfterConnect for per-connection setup instead. Resolution failures
// surface here, before any credential or signing activity.
func GetConnector(ctx context.Context, cfg dsql.Config, opts ...pgxstdlib.OptionOpenDB) (driver.Connector, error) {
	props, err := dsql.Resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}

	connCfg, err := pgx.ParseConfig(props.ConnString("stdlib"))
	if err != nil {
		return nil, err
	}

	opts = append(opts, pgxstdlib.OptionBeforeConnect(func(ctx context.Context, cc *pgx.ConnConfig) error {
		token, err := dsql.Token(ctx, props)
		if err != nil {
			return err
		}
		cc.Password = token
		return nil
	}))

	return pgxstdlib.GetConnector(*connCfg, opts...), nil
}

// OpenDB resolves cfg and returns a database/sql handle backed by
// GetConnector. The returned DB has not dialed yet; credential, signing,
// and connect errors surface from the first query or Ping.
func OpenDB(ctx context.Context, cfg dsql.Config, opts ...pgxstdlib.OptionOpenDB) (*sql.DB, error) {
	connector, err := GetConnector(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}
