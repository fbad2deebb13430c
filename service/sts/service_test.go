package awssts

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/thirukguru/aws-list-all/service/query"
)

type mockSTS struct {
	out *sts.GetCallerIdentityOutput
	err error
}

func (m *mockSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return m.out, m.err
}

func TestAccountID(t *testing.T) {
	svc := &service{client: &mockSTS{out: &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}}}
	got, err := svc.AccountID(context.Background())
	if err != nil {
		t.Fatalf("AccountID failed: %v", err)
	}
	if got != "123456789012" {
		t.Fatalf("unexpected account %q", got)
	}
}

func TestAccountIDCredentialFailure(t *testing.T) {
	svc := &service{client: &mockSTS{err: errors.New("no valid providers in chain")}}
	if _, err := svc.AccountID(context.Background()); !errors.Is(err, query.ErrCredentials) {
		t.Fatalf("expected ErrCredentials, got %v", err)
	}
}
