package catalog

// defaultParameters narrows operations that would otherwise return public
// or AWS-owned resources, or that cannot be called without a value.
var defaultParameters = map[string]map[string]map[string]any{
	"cloudfront": {
		"ListCachePolicies":           {"Type": "custom"},
		"ListOriginRequestPolicies":   {"Type": "custom"},
		"ListResponseHeadersPolicies": {"Type": "custom"},
	},
	"ec2": {
		"DescribeImages":     {"Owners": []any{"self"}},
		"DescribeFpgaImages": {"Owners": []any{"self"}},
		"DescribeSnapshots":  {"OwnerIds": []any{"self"}},
	},
	"ecs": {
		"ListTaskDefinitionFamilies": {"Status": "ACTIVE"},
		"ListTaskDefinitions":        {"Status": "ACTIVE"},
	},
	"iam": {
		"ListPolicies": {"Scope": "Local"},
	},
	"ssm": {
		"ListDocuments":          {"Filters": []any{map[string]any{"Key": "Owner", "Values": []any{"Self"}}}},
		"DescribePatchBaselines": {"Filters": []any{map[string]any{"Key": "OWNER", "Values": []any{"Self"}}}},
	},
	"wafv2": {
		"ListIPSets":                {"Scope": "REGIONAL"},
		"ListLoggingConfigurations": {"Scope": "REGIONAL"},
		"ListManagedRuleSets":       {"Scope": "REGIONAL"},
		"ListRegexPatternSets":      {"Scope": "REGIONAL"},
		"ListRuleGroups":            {"Scope": "REGIONAL"},
		"ListWebACLs":               {"Scope": "REGIONAL"},
	},
}

// mergeParameters layers overrides on top of base without mutating either.
func mergeParameters(base, overrides map[string]any) map[string]any {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
