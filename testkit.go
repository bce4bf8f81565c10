package dsql

import (
	"context"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// TestCredentials is a fake credential provider for unit tests.
//
// The zero value serves deterministic static credentials; set RetrieveFunc
// to script responses instead. Calls reports how many times Retrieve ran,
// letting tests assert the provider was consulted before a token was
// produced. Safe for concurrent use.
type TestCredentials struct {
	RetrieveFunc func(ctx context.Context) (aws.Credentials, error)

	calls atomic.Int64
}

var _ aws.CredentialsProvider = (*TestCredentials)(nil)

func (t *TestCredentials) Retrieve(ctx context.Context) (aws.Credentials, error) {
	t.calls.Add(1)
	if t.RetrieveFunc != nil {
		return t.RetrieveFunc(ctx)
	}
	static := credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "SECRETEXAMPLE", "SESSIONEXAMPLE")
	return static.Retrieve(ctx)
}

// Calls reports how many times Retrieve has been invoked.
func (t *TestCredentials) Calls() int64 { return t.calls.Load() }
