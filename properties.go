package dsql

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Properties is the canonical parameter set produced by Resolve: everything
// the token manager needs as struct fields, everything else in Driver for
// passthrough to the wrapped driver.
type Properties struct {
	// Host is the fully qualified cluster endpoint.
	Host string

	// Region scopes credential resolution and token signing.
	Region string

	// User is the database user tokens are minted for.
	User string

	// Database is the database name handed to the driver.
	Database string

	// TokenDuration is the requested token lifetime.
	TokenDuration time.Duration

	// Profile is the AWS shared-config profile, empty for the default.
	Profile string

	// Credentials is the preferred credential provider, nil for the default
	// chain.
	Credentials aws.CredentialsProvider

	// Driver holds passthrough driver parameters (port, sslmode, custom
	// keys, the caller's application_name). It never contains a password or
	// the signing parameters.
	Driver map[string]string
}

// Admin reports whether tokens for these properties are minted with the
// administrative signing operation.
func (p *Properties) Admin() bool { return p.User == DefaultUser }

// hostRegionPattern matches cluster endpoints, tolerating dsql-suffixed
// service variants. The region is the capture group.
var hostRegionPattern = regexp.MustCompile(`\.dsql[^.]*\.([^.]+)\.on\.aws$`)

// defaultRegionLookup is a package-private seam used by tests to control
// ambient-region discovery without reading AWS configuration files.
var defaultRegionLookup = func(ctx context.Context) string {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return ""
	}
	return awsCfg.Region
}

// Resolve normalizes a connection string and keyword configuration into the
// canonical parameter set used by the token manager and the driver adapters.
//
// Values merge with fixed precedence: typed Config fields override
// Config.Params, which override values derived from ConnectionString. Empty
// keyword values are treated as unset rather than as overrides, and the
// database alias folds onto dbname with the canonical spelling winning when
// both appear in the same source. A bare
// cluster identifier (no dots or slashes) in ConnectionString or Host
// expands to <id>.dsql.<region>.on.aws using the explicit region or the
// ambient AWS region; the connection fails later if the ambient region does
// not match the cluster's. A missing region is extracted from the host name
// when it matches the cluster endpoint pattern. User, database, and token
// lifetime receive defaults; host and region must be determinable or a
// *MissingParameterError is returned before any network activity.
//
// Resolve never mutates cfg and is idempotent: equal configurations resolve
// to equal properties.
func Resolve(ctx context.Context, cfg Config) (*Properties, error) {
	// Empty values count as absent. The canonical spelling of an aliased key
	// wins regardless of map iteration order.
	params := map[string]string{}
	for k, v := range cfg.Params {
		if v == "" {
			continue
		}
		if ck := normalizeKey(k); ck == k || cfg.Params[ck] == "" {
			params[ck] = v
		}
	}
	setParam(params, "host", cfg.Host)
	setParam(params, "region", cfg.Region)
	setParam(params, "user", cfg.User)
	setParam(params, "dbname", cfg.Database)
	setParam(params, "profile", cfg.Profile)
	setParam(params, "application_name", cfg.ApplicationName)

	// A keyword-supplied host is expanded and mined for a region before DSN
	// parsing so keyword values win the merge.
	if host := params["host"]; host != "" {
		if isClusterID(host) {
			params["host"] = expandClusterID(ctx, host, params["region"])
		}
		if params["region"] == "" {
			if r := regionFromHost(params["host"]); r != "" {
				params["region"] = r
			}
		}
	}

	if cfg.ConnectionString != "" {
		dsnParams, err := parseDSN(ctx, cfg.ConnectionString, params["region"])
		if err != nil {
			return nil, err
		}
		for k, v := range dsnParams {
			if _, ok := params[k]; !ok {
				params[k] = v
			}
		}
	}

	if params["user"] == "" {
		params["user"] = DefaultUser
	}
	if params["dbname"] == "" {
		params["dbname"] = DefaultDatabase
	}

	var missing []string
	if params["host"] == "" {
		missing = append(missing, "host")
	}
	if params["region"] == "" {
		missing = append(missing, "region")
	}
	if len(missing) > 0 {
		return nil, &MissingParameterError{Missing: missing}
	}

	dur := DefaultTokenDuration
	if s := params["token_duration_secs"]; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, &InvalidParameterError{Reasons: []string{"Invalid token_duration_secs: " + s}}
		}
		dur = time.Duration(n) * time.Second
	}
	if cfg.TokenDuration != 0 {
		dur = cfg.TokenDuration
	}

	props := &Properties{
		Host:          params["host"],
		Region:        params["region"],
		User:          params["user"],
		Database:      params["dbname"],
		TokenDuration: dur,
		Profile:       params["profile"],
		Credentials:   cfg.Credentials,
		Driver:        map[string]string{},
	}
	for k, v := range params {
		switch k {
		case "host", "region", "user", "dbname", "profile", "token_duration_secs", "password":
			continue
		}
		props.Driver[k] = v
	}
	return props, nil
}

// parseDSN extracts parameters from a URL-form DSN, a bare cluster
// identifier, or a bare hostname. region is consulted only when the DSN is a
// bare cluster identifier needing expansion.
func parseDSN(ctx context.Context, dsn, region string) (map[string]string, error) {
	params := map[string]string{}

	switch {
	case strings.Contains(dsn, "://"):
		u, err := url.Parse(dsn)
		if err != nil {
			return nil, err
		}
		if h := u.Hostname(); h != "" {
			params["host"] = h
		}
		if p := u.Port(); p != "" {
			params["port"] = p
		}
		if db := strings.TrimPrefix(u.Path, "/"); db != "" {
			params["dbname"] = db
		}
		if u.User != nil {
			if name := u.User.Username(); name != "" {
				params["user"] = name
			}
			if pw, ok := u.User.Password(); ok {
				params["password"] = pw
			}
		}
		// Query keys follow the keyword rules: empty values count as absent
		// and the canonical spelling of an aliased key wins. Whichever
		// survives still overrides the URL-part value, matching libpq.
		q := u.Query()
		for k, vals := range q {
			if len(vals) == 0 || vals[0] == "" {
				continue
			}
			ck := normalizeKey(k)
			if ck != k && q.Get(ck) != "" {
				continue
			}
			params[ck] = vals[0]
		}
	case isClusterID(dsn):
		params["host"] = expandClusterID(ctx, dsn, region)
	default:
		params["host"] = dsn
	}

	if params["region"] == "" {
		if r := regionFromHost(params["host"]); r != "" {
			params["region"] = r
		}
	}

	return params, nil
}

// isClusterID reports whether s looks like a bare cluster identifier rather
// than a hostname or path.
func isClusterID(s string) bool {
	return s != "" && !strings.ContainsAny(s, "./")
}

// expandClusterID builds the canonical cluster endpoint. With no explicit
// and no ambient region the identifier is returned unchanged, leaving the
// required-parameter check to report the missing region.
func expandClusterID(ctx context.Context, id, region string) string {
	if region == "" {
		region = defaultRegionLookup(ctx)
	}
	if region == "" {
		return id
	}
	return id + ".dsql." + region + ".on.aws"
}

// regionFromHost extracts the region label from a cluster endpoint, or ""
// when the host does not match the endpoint pattern.
func regionFromHost(host string) string {
	m := hostRegionPattern.FindStringSubmatch(host)
	if m == nil {
		return ""
	}
	return m[1]
}

// normalizeKey folds parameter aliases onto their canonical names.
func normalizeKey(k string) string {
	if k == "database" {
		return "dbname"
	}
	return k
}

func setParam(params map[string]string, key, value string) {
	if value != "" {
		params[key] = value
	}
}
