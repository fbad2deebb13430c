// Package awsapi calls AWS listing operations by name through the SDK
// clients in the registry, following pagination to the end.
package awsapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/catalog"
	"github.com/thirukguru/aws-list-all/service/registry"
	"golang.org/x/time/rate"
)

const defaultMaxPages = 1000

// ErrUnknownService is returned for tasks naming a service that is not
// registered.
var ErrUnknownService = errors.New("unknown service")

// ErrInvalidParameters is returned when a task's parameters do not fit the
// operation input.
var ErrInvalidParameters = errors.New("invalid parameters")

// NewService creates a provider that derives per-region clients from base.
func NewService(base aws.Config, opts Options) Provider {
	return newProvider(base, opts, registryClient)
}

func newProvider(base aws.Config, opts Options, factory clientFactory) *provider {
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	return &provider{
		base:      base,
		opts:      opts,
		newClient: factory,
		clients:   map[string]any{},
		limiters:  map[string]*rate.Limiter{},
	}
}

func registryClient(name string, cfg aws.Config) (any, error) {
	svc, ok := registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, name)
	}
	return svc.New(cfg), nil
}

// SigningRegion maps the global pseudo-region to the region its endpoint
// lives in.
func SigningRegion(region string) string {
	if region == catalog.GlobalRegion {
		return "us-east-1"
	}
	return region
}

func (p *provider) client(service, region string) (any, error) {
	key := service + "/" + region

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clients[key]; ok {
		return c, nil
	}

	cfg := p.base.Copy()
	cfg.Region = SigningRegion(region)
	// Retries belong to the query engine.
	cfg.Retryer = func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = 1
		})
	}

	c, err := p.newClient(service, cfg)
	if err != nil {
		return nil, err
	}
	p.clients[key] = c
	return c, nil
}

func (p *provider) wait(ctx context.Context, region string) error {
	if p.opts.Rate <= 0 {
		return nil
	}
	p.mu.Lock()
	l, ok := p.limiters[region]
	if !ok {
		burst := int(p.opts.Rate)
		if burst < 1 {
			burst = 1
		}
		l = rate.NewLimiter(rate.Limit(p.opts.Rate), burst)
		p.limiters[region] = l
		slog.Debug("created rate limiter", "region", region, "rate", p.opts.Rate)
	}
	p.mu.Unlock()
	return l.Wait(ctx)
}

// Call runs the task's operation, follows pagination until the service
// stops returning a continuation token, and merges every page into one
// payload.
func (p *provider) Call(ctx context.Context, task model.Task) (map[string]any, error) {
	client, err := p.client(task.Service, task.Region)
	if err != nil {
		return nil, err
	}
	method, err := registry.Method(client, task.Operation)
	if err != nil {
		return nil, err
	}
	input := registry.NewInput(method)
	if err := registry.ApplyParameters(input, task.Parameters); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	var payload map[string]any
	seen := map[string]bool{}
	for page := 0; ; page++ {
		if page >= p.opts.MaxPages {
			slog.Warn("pagination limit reached", "task", task.Key(), "pages", page)
			break
		}
		if err := p.wait(ctx, task.Region); err != nil {
			return nil, err
		}

		out, err := registry.Call(ctx, method, input)
		if err != nil {
			return nil, err
		}
		doc, err := normalize(out)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize %s output: %w", task.Operation, err)
		}
		payload = mergePage(payload, doc)

		field, token := nextToken(reflect.ValueOf(out), input)
		if token == "" || seen[token] {
			break
		}
		seen[token] = true
		registry.SetStringField(input, field, token)
	}

	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}
