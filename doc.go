// Package dsql provides IAM-authenticated connection helpers for Amazon
// Aurora DSQL using pgx v5.
//
// Invariants:
//
//   - I1: a token is minted fresh for every physical connection attempt;
//     tokens are never cached or reused.
//   - I2: host and region must be resolved before any network activity.
//   - I3: explicit configuration overrides DSN-derived values on conflict.
//   - I4: credential and signing errors surface unmodified, so callers can
//     match on the service's own error text.
//   - I5: connection parameters this package does not understand pass
//     through to pgx untouched.
//
// This package is a credential and parameter layer only. The PostgreSQL wire
// protocol, connection pooling, and TLS negotiation all belong to pgx; the
// database/sql surface lives in the stdlib subpackage.
package dsql
