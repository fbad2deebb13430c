package catalog

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go"
	"github.com/thirukguru/aws-list-all/service/registry"
)

const probeTimeout = 5 * time.Second

var errProbeReached = errors.New("request reached transport")

// probeTransport fails every request before it leaves the process.
type probeTransport struct{}

func (probeTransport) Do(*http.Request) (*http.Response, error) {
	return nil, errProbeReached
}

// probeConfig builds a client configuration that validates and serializes
// requests without sending them or resolving credentials.
func probeConfig() aws.Config {
	return aws.Config{
		Region:      "us-east-1",
		Credentials: aws.AnonymousCredentials{},
		HTTPClient:  probeTransport{},
		Retryer: func() aws.Retryer {
			return aws.NopRetryer{}
		},
	}
}

// requiredParameters dry-runs an operation with params applied to a zero
// input and returns the input fields reported missing by client-side
// validation. An empty result means the call can be issued as is.
func requiredParameters(client any, operation string, params map[string]any) ([]string, error) {
	method, err := registry.Method(client, operation)
	if err != nil {
		return nil, err
	}
	input := registry.NewInput(method)
	if err := registry.ApplyParameters(input, params); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	_, err = registry.Call(ctx, method, input)

	var invalid smithy.InvalidParamsError
	if !errors.As(err, &invalid) {
		return nil, nil
	}

	fields := make([]string, 0, invalid.Len())
	for _, e := range invalid.Errs() {
		if p, ok := e.(smithy.InvalidParamError); ok {
			fields = append(fields, p.Field())
		}
	}
	if len(fields) == 0 {
		fields = append(fields, "unknown")
	}
	sort.Strings(fields)
	return fields, nil
}
