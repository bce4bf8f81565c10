package dsql

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
)

func TestTestCredentials_DefaultsToStaticCredentials(t *testing.T) {
	t.Parallel()

	tc := &TestCredentials{}

	creds, err := tc.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if !creds.HasKeys() {
		t.Fatal("expected usable credentials")
	}
	if creds.AccessKeyID != "AKIDEXAMPLE" {
		t.Fatalf("access key=%q, want %q", creds.AccessKeyID, "AKIDEXAMPLE")
	}
	if creds.SecretAccessKey != "SECRETEXAMPLE" {
		t.Fatalf("secret key=%q, want %q", creds.SecretAccessKey, "SECRETEXAMPLE")
	}
	if creds.SessionToken != "SESSIONEXAMPLE" {
		t.Fatalf("session token=%q, want %q", creds.SessionToken, "SESSIONEXAMPLE")
	}
	if got := tc.Calls(); got != 1 {
		t.Fatalf("calls=%d, want 1", got)
	}

	if _, err := tc.Retrieve(context.Background()); err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if got := tc.Calls(); got != 2 {
		t.Fatalf("calls=%d, want 2", got)
	}
}

func TestTestCredentials_UsesRetrieveFunc(t *testing.T) {
	t.Parallel()

	want := aws.Credentials{AccessKeyID: "scripted", SecretAccessKey: "scripted-secret"}
	tc := &TestCredentials{
		RetrieveFunc: func(context.Context) (aws.Credentials, error) {
			return want, nil
		},
	}

	creds, err := tc.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if creds.AccessKeyID != want.AccessKeyID || creds.SecretAccessKey != want.SecretAccessKey {
		t.Fatalf("credentials=%+v, want %+v", creds, want)
	}
}

func TestTestCredentials_RetrieveFuncErrorCountsAsCall(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("scripted failure")
	tc := &TestCredentials{
		RetrieveFunc: func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{}, sentinel
		},
	}

	_, err := tc.Retrieve(context.Background())
	if !errors.Is(err, sentinel) {
		t.Fatalf("error=%v, want %v", err, sentinel)
	}
	if got := tc.Calls(); got != 1 {
		t.Fatalf("calls=%d, want 1", got)
	}
}

func TestTestCredentials_CountsConcurrentRetrievals(t *testing.T) {
	t.Parallel()

	tc := &TestCredentials{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tc.Retrieve(context.Background()); err != nil {
				t.Errorf("retrieve: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := tc.Calls(); got != 10 {
		t.Fatalf("calls=%d, want 10", got)
	}
}
