package catalog

import (
	"sort"

	"github.com/aws/aws-sdk-go/aws/endpoints"
)

// GlobalRegion labels services that expose a single partition-wide endpoint
// instead of regional ones (iam, route53, cloudfront and friends).
const GlobalRegion = "aws-global"

// partitionRegions lists every region of the aws partition where the
// service advertises an endpoint, whether or not the account opted in.
func partitionRegions(endpointsID string) []string {
	svc, ok := endpoints.AwsPartition().Services()[endpointsID]
	if !ok {
		return nil
	}

	regions := svc.Regions()
	out := make([]string, 0, len(regions))
	for id := range regions {
		out = append(out, id)
	}
	if len(out) == 0 && len(svc.Endpoints()) > 0 {
		return []string{GlobalRegion}
	}
	sort.Strings(out)
	return out
}
