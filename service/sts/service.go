// Package awssts resolves the caller identity a run executes as.
package awssts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/thirukguru/aws-list-all/service/query"
)

// NewService creates a new STS service.
func NewService(awsconfig aws.Config) Service {
	return &service{client: sts.NewFromConfig(awsconfig)}
}

func (s *service) GetCallerIdentity(ctx context.Context) (*sts.GetCallerIdentityOutput, error) {
	return s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
}

// AccountID returns the account of the resolved credentials. A failure
// means no listing call could succeed and is reported as ErrCredentials.
func (s *service) AccountID(ctx context.Context) (string, error) {
	out, err := s.GetCallerIdentity(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", query.ErrCredentials, err)
	}
	return aws.ToString(out.Account), nil
}
