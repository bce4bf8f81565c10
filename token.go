package dsql

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dsql/auth"
)

// Package-private seams used by tests to observe signing calls and to stub
// AWS configuration loading without network dependencies.
var (
	loadAWSConfig    = config.LoadDefaultConfig
	signConnect      = auth.GenerateDbConnectAuthToken
	signConnectAdmin = auth.GenerateDBConnectAdminAuthToken
)

// Token mints a short-lived password for the resolved parameters. The
// administrative user signs with the administrative operation, every other
// user with the standard one; whether User actually holds the privilege it
// claims is verified by the service, not here.
//
// Every call performs a fresh signing exchange. Tokens are never cached or
// reused, so concurrent callers need no coordination. Configuration,
// credential, and signing errors are returned unmodified, including the
// service's rejection of durations of a week or more.
func Token(ctx context.Context, props *Properties) (string, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(props.Region)}
	if props.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(props.Profile))
	}
	awsCfg, err := loadAWSConfig(ctx, opts...)
	if err != nil {
		return "", err
	}

	creds := awsCfg.Credentials
	if props.Credentials != nil {
		creds = &fallbackCredentials{preferred: props.Credentials, chain: awsCfg.Credentials}
	}

	expiry := func(o *auth.TokenOptions) { o.ExpiresIn = props.TokenDuration }
	if props.Admin() {
		return signConnectAdmin(ctx, props.Host, props.Region, creds, expiry)
	}
	return signConnect(ctx, props.Host, props.Region, creds, expiry)
}

// fallbackCredentials prefers the caller-supplied provider and defers to the
// default chain only when the preferred provider yields empty credentials
// without error. Errors from the preferred provider propagate.
type fallbackCredentials struct {
	preferred aws.CredentialsProvider
	chain     aws.CredentialsProvider
}

func (f *fallbackCredentials) Retrieve(ctx context.Context) (aws.Credentials, error) {
	creds, err := f.preferred.Retrieve(ctx)
	if err != nil {
		return aws.Credentials{}, err
	}
	if creds.HasKeys() || f.chain == nil {
		return creds, nil
	}
	return f.chain.Retrieve(ctx)
}
