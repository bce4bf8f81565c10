//go:build integration

package dsql

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"
)

var (
	integrationDSNURLPattern   = regexp.MustCompile(`(?i)postgres(?:ql)?://[^\s]+`)
	integrationPasswordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)
	integrationIdentPattern    = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

// requireClusterEnv builds the cluster configuration from the environment. A
// missing endpoint fails the run so CI misconfiguration is loud. Region,
// user, database, and profile stay on library defaults when unset.
func requireClusterEnv(t *testing.T) Config {
	t.Helper()

	endpoint := strings.TrimSpace(os.Getenv("CLUSTER_ENDPOINT"))
	if endpoint == "" {
		t.Fatal("integration requires environment variable(s): CLUSTER_ENDPOINT")
	}

	cfg := Config{
		Host:     endpoint,
		Region:   strings.TrimSpace(os.Getenv("REGION")),
		User:     strings.TrimSpace(os.Getenv("CLUSTER_USER")),
		Database: strings.TrimSpace(os.Getenv("DSQL_DATABASE")),
		Profile:  strings.TrimSpace(os.Getenv("AWS_PROFILE")),
	}
	if certPath := strings.TrimSpace(os.Getenv("SSL_CERT_PATH")); certPath != "" {
		cfg.Params = map[string]string{
			"sslmode":     "verify-full",
			"sslrootcert": certPath,
		}
	}
	return cfg
}

func integrationTableName(t *testing.T) string {
	t.Helper()

	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		t.Fatalf("failed to generate random table suffix: %s", sanitizeErrorMessage(err))
	}
	name := fmt.Sprintf("dsql_go_it_%d_%x", time.Now().Unix(), binary.BigEndian.Uint32(b[:]))
	if !integrationIdentPattern.MatchString(name) {
		t.Fatalf("generated invalid table name: %q", name)
	}

	return name
}

func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// sanitizeErrorMessage strips connection URLs and passwords before an error
// reaches test logs, so minted tokens never land in CI output.
func sanitizeErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = integrationDSNURLPattern.ReplaceAllString(msg, "[REDACTED_DSN]")
	msg = integrationPasswordPattern.ReplaceAllString(msg, "password=[REDACTED]")
	return msg
}

func mustNoErr(t *testing.T, err error, operation string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %s", operation, sanitizeErrorMessage(err))
	}
}

func mustIs(t *testing.T, got error, want error, operation string) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Fatalf("%s: got=%s want=%v", operation, sanitizeErrorMessage(got), want)
	}
}
