// Package awsconfig resolves the AWS configuration a run signs its calls
// with.
package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/thirukguru/aws-list-all/shared/logs"
)

// fallbackRegion is used when neither the caller nor the SDK environment
// names a region. Listing clients override it per task.
const fallbackRegion = "us-east-1"

// loadSharedConfigProfile is a variable to allow mocking in tests.
var loadSharedConfigProfile = config.LoadSharedConfigProfile

// NewService creates a new AWS configuration service. With debug set, SDK
// request and retry logs are routed through the application logger.
func NewService(debug bool) Service {
	return &service{debug: debug}
}

func (s *service) logOptions() []func(*config.LoadOptions) error {
	if !s.debug {
		return nil
	}
	return []func(*config.LoadOptions) error{
		config.WithLogger(logs.SDKLogger()),
		config.WithClientLogMode(aws.LogRequest | aws.LogRetries),
	}
}

// GetAWSCfg loads the shared configuration for profile and resolves its
// credentials once, so an MFA prompt happens before any progress output.
func (s *service) GetAWSCfg(ctx context.Context, region, profile string) (aws.Config, error) {
	// Role profiles with mfa_serial are assumed by hand; the default chain
	// signs with the wrong source credentials for them.
	if profile != "" {
		sharedCfg, err := loadSharedConfigProfile(ctx, profile)
		if err == nil && sharedCfg.RoleARN != "" && sharedCfg.MFASerial != "" {
			return s.loadConfigWithManualMFA(ctx, region, sharedCfg)
		}
	}

	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	opts = append(opts, config.WithAssumeRoleCredentialOptions(func(options *stscreds.AssumeRoleOptions) {
		options.TokenProvider = stscreds.StdinTokenProvider
	}))
	opts = append(opts, s.logOptions()...)

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = fallbackRegion
	}

	if err := retrieve(ctx, cfg); err != nil {
		return aws.Config{}, err
	}
	return cfg, nil
}

func retrieve(ctx context.Context, cfg aws.Config) error {
	if cfg.Credentials == nil {
		return nil
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return fmt.Errorf("failed to retrieve credentials: %w", err)
	}
	return nil
}

// loadConfigWithManualMFA assumes the profile's role from its source
// profile, prompting for the MFA code on stdin.
func (s *service) loadConfigWithManualMFA(ctx context.Context, region string, shared config.SharedConfig) (aws.Config, error) {
	sourceProfile := shared.SourceProfileName
	if sourceProfile == "" {
		sourceProfile = "default"
	}

	stsRegion := region
	if stsRegion == "" {
		stsRegion = shared.Region
	}
	if stsRegion == "" {
		stsRegion = fallbackRegion
	}

	baseCfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(sourceProfile),
		config.WithRegion(stsRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load source profile config: %w", err)
	}

	provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(baseCfg), shared.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		o.SerialNumber = aws.String(shared.MFASerial)
		o.TokenProvider = stscreds.StdinTokenProvider
	})

	finalOpts := []func(*config.LoadOptions) error{
		config.WithCredentialsProvider(aws.NewCredentialsCache(provider)),
		config.WithRegion(stsRegion),
	}
	finalOpts = append(finalOpts, s.logOptions()...)

	finalCfg, err := config.LoadDefaultConfig(ctx, finalOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load final config with mfa: %w", err)
	}
	if err := retrieve(ctx, finalCfg); err != nil {
		return aws.Config{}, fmt.Errorf("%w (MFA might have failed)", err)
	}
	return finalCfg, nil
}
