package catalog

import "strings"

var listingPrefixes = []string{"List", "Describe", "Get"}

// notResourceListings names read-only operations that return public or
// account-independent data (price lists, engine versions, quotas) rather
// than resources owned by the account.
var notResourceListings = map[string][]string{
	"apigateway": {"GetAccount", "GetSdkTypes"},
	"autoscaling": {
		"DescribeAccountLimits", "DescribeAdjustmentTypes", "DescribeAutoScalingNotificationTypes",
		"DescribeLifecycleHookTypes", "DescribeMetricCollectionTypes", "DescribeScalingProcessTypes",
		"DescribeTerminationPolicyTypes",
	},
	"backup":         {"GetSupportedResourceTypes", "ListBackupPlanTemplates"},
	"bedrock":        {"ListFoundationModels"},
	"ce":             {"GetCostCategories", "ListCostAllocationTags"},
	"cloudformation": {"DescribeAccountLimits", "ListTypes", "DescribePublisher"},
	"cloudfront":     {"ListCloudFrontOriginAccessIdentities"},
	"cloudtrail":     {"ListPublicKeys"},
	"dynamodb":       {"DescribeEndpoints", "DescribeLimits"},
	"ec2": {
		"DescribeAccountAttributes", "DescribeAggregateIdFormat", "DescribeAvailabilityZones",
		"DescribeAwsNetworkPerformanceMetricSubscriptions", "DescribeCapacityBlockOfferings",
		"DescribeHostReservationOfferings", "DescribeIdFormat", "DescribeInstanceTypeOfferings",
		"DescribeInstanceTypes", "DescribePrefixLists", "DescribeRegions",
		"DescribeReservedInstancesOfferings", "DescribeSpotPriceHistory", "GetEbsDefaultKmsKeyId",
		"GetEbsEncryptionByDefault", "GetSerialConsoleAccessStatus", "DescribeManagedPrefixLists",
		"DescribeVpcEndpointServices", "GetSnapshotBlockPublicAccessState", "GetImageBlockPublicAccessState",
		"GetInstanceMetadataDefaults", "DescribeLockedSnapshots",
	},
	"ecr":         {"GetAuthorizationToken", "GetRegistryPolicy", "DescribeRegistry"},
	"ecr-public":  {"GetAuthorizationToken", "GetRegistryCatalogData"},
	"ecs":         {"DescribeCapacityProviders", "ListAccountSettings"},
	"efs":         {"DescribeAccountPreferences"},
	"elasticache": {"DescribeCacheEngineVersions", "DescribeCacheParameterGroups", "DescribeReservedCacheNodesOfferings", "DescribeServiceUpdates"},
	"elb":         {"DescribeAccountLimits", "DescribeLoadBalancerPolicies", "DescribeLoadBalancerPolicyTypes"},
	"elbv2":       {"DescribeAccountLimits", "DescribeSSLPolicies"},
	"es":          {"DescribeReservedElasticsearchInstanceOfferings", "ListElasticsearchVersions", "GetCompatibleElasticsearchVersions"},
	"events":      {"DescribeEventBus"},
	"glue":        {"GetCatalogImportStatus", "GetDataCatalogEncryptionSettings"},
	"iam": {
		"GetAccountAuthorizationDetails", "GetAccountPasswordPolicy", "GetAccountSummary",
		"GetCredentialReport", "GetUser",
	},
	"inspector2": {"ListCoverageStatistics", "ListAccountPermissions"},
	"kms":        {"ListAliases"},
	"lambda":     {"GetAccountSettings"},
	"memorydb":   {"DescribeEngineVersions", "DescribeParameterGroups", "DescribeReservedNodesOfferings", "DescribeServiceUpdates"},
	"opensearch": {"DescribeReservedInstanceOfferings", "ListVersions", "GetCompatibleVersions", "ListInstanceTypeDetails"},
	"rds": {
		"DescribeAccountAttributes", "DescribeCertificates", "DescribeDBEngineVersions",
		"DescribeEventCategories", "DescribeEvents", "DescribeReservedDBInstancesOfferings",
		"DescribeSourceRegions", "DescribeDBParameterGroups", "DescribeDBClusterParameterGroups",
		"DescribeOptionGroups",
	},
	"redshift": {
		"DescribeClusterParameterGroups", "DescribeClusterVersions", "DescribeEventCategories",
		"DescribeEvents", "DescribeOrderableClusterOptions", "DescribeReservedNodeOfferings",
		"DescribeStorage",
	},
	"route53":        {"GetCheckerIpRanges", "GetGeoLocation", "GetHealthCheckCount", "GetHostedZoneCount", "GetTrafficPolicyInstanceCount", "ListGeoLocations"},
	"s3":             {"ListDirectoryBuckets"},
	"secretsmanager": {"GetRandomPassword"},
	"securityhub":    {"DescribeStandards", "GetInvitationsCount"},
	"ses":            {"GetSendQuota", "GetSendStatistics", "GetAccountSendingEnabled"},
	"shield":         {"DescribeAttackStatistics", "GetSubscriptionState"},
	"sns":            {"GetSMSAttributes", "GetSMSSandboxAccountStatus"},
	"ssm":            {"DescribeAvailablePatches", "GetInventorySchema", "DescribePatchProperties"},
	"sts":            {"GetCallerIdentity", "GetSessionToken", "GetFederationToken", "GetAccessKeyInfo"},
	"wafv2":          {"ListAvailableManagedRuleGroups"},
}

// IsListingOperation reports whether an operation of a service is a
// read-only call that lists resources of the account. It looks at names only.
func IsListingOperation(service, operation string) bool {
	prefixed := false
	for _, p := range listingPrefixes {
		if strings.HasPrefix(operation, p) {
			prefixed = true
			break
		}
	}
	if !prefixed {
		return false
	}
	for _, denied := range notResourceListings[service] {
		if denied == operation {
			return false
		}
	}
	return true
}
