package registry

import "github.com/aws/aws-sdk-go-v2/aws"

// Service describes one AWS API client compiled into the binary.
type Service struct {
	// Name is the short CLI name, e.g. "ec2", "logs" or "elbv2".
	Name string
	// EndpointsID is the identifier of the service in the partition
	// endpoint metadata, e.g. "monitoring" for cloudwatch.
	EndpointsID string
	// New builds a client from a configuration.
	New func(cfg aws.Config) any
}
