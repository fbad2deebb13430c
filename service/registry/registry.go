// Package registry holds the static table of AWS service clients that can be
// enumerated, and the reflection helpers used to call their operations.
package registry

import (
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/accessanalyzer"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/backup"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/cloudcontrol"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/configservice"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/efs"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/glacier"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/guardduty"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/inspector2"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/mediastore"
	"github.com/aws/aws-sdk-go-v2/service/memorydb"
	"github.com/aws/aws-sdk-go-v2/service/opensearch"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/pinpointsmsvoice"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/aws/aws-sdk-go-v2/service/resourceexplorer2"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/securityhub"
	"github.com/aws/aws-sdk-go-v2/service/serverlessapplicationrepository"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/shield"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/timestreamquery"
	"github.com/aws/aws-sdk-go-v2/service/wafv2"
)

var services = []Service{
	{Name: "accessanalyzer", EndpointsID: "access-analyzer", New: func(c aws.Config) any { return accessanalyzer.NewFromConfig(c) }},
	{Name: "acm", EndpointsID: "acm", New: func(c aws.Config) any { return acm.NewFromConfig(c) }},
	{Name: "apigateway", EndpointsID: "apigateway", New: func(c aws.Config) any { return apigateway.NewFromConfig(c) }},
	{Name: "apigatewayv2", EndpointsID: "apigateway", New: func(c aws.Config) any { return apigatewayv2.NewFromConfig(c) }},
	{Name: "autoscaling", EndpointsID: "autoscaling", New: func(c aws.Config) any { return autoscaling.NewFromConfig(c) }},
	{Name: "backup", EndpointsID: "backup", New: func(c aws.Config) any { return backup.NewFromConfig(c) }},
	{Name: "bedrock", EndpointsID: "bedrock", New: func(c aws.Config) any { return bedrock.NewFromConfig(c) }},
	{Name: "ce", EndpointsID: "ce", New: func(c aws.Config) any { return costexplorer.NewFromConfig(c) }},
	{Name: "cloudcontrol", EndpointsID: "cloudcontrolapi", New: func(c aws.Config) any { return cloudcontrol.NewFromConfig(c) }},
	{Name: "cloudformation", EndpointsID: "cloudformation", New: func(c aws.Config) any { return cloudformation.NewFromConfig(c) }},
	{Name: "cloudfront", EndpointsID: "cloudfront", New: func(c aws.Config) any { return cloudfront.NewFromConfig(c) }},
	{Name: "cloudtrail", EndpointsID: "cloudtrail", New: func(c aws.Config) any { return cloudtrail.NewFromConfig(c) }},
	{Name: "cloudwatch", EndpointsID: "monitoring", New: func(c aws.Config) any { return cloudwatch.NewFromConfig(c) }},
	{Name: "cognito-idp", EndpointsID: "cognito-idp", New: func(c aws.Config) any { return cognitoidentityprovider.NewFromConfig(c) }},
	{Name: "config", EndpointsID: "config", New: func(c aws.Config) any { return configservice.NewFromConfig(c) }},
	{Name: "dynamodb", EndpointsID: "dynamodb", New: func(c aws.Config) any { return dynamodb.NewFromConfig(c) }},
	{Name: "ec2", EndpointsID: "ec2", New: func(c aws.Config) any { return ec2.NewFromConfig(c) }},
	{Name: "ecr", EndpointsID: "api.ecr", New: func(c aws.Config) any { return ecr.NewFromConfig(c) }},
	{Name: "ecr-public", EndpointsID: "api.ecr-public", New: func(c aws.Config) any { return ecrpublic.NewFromConfig(c) }},
	{Name: "ecs", EndpointsID: "ecs", New: func(c aws.Config) any { return ecs.NewFromConfig(c) }},
	{Name: "efs", EndpointsID: "elasticfilesystem", New: func(c aws.Config) any { return efs.NewFromConfig(c) }},
	{Name: "eks", EndpointsID: "eks", New: func(c aws.Config) any { return eks.NewFromConfig(c) }},
	{Name: "elasticache", EndpointsID: "elasticache", New: func(c aws.Config) any { return elasticache.NewFromConfig(c) }},
	{Name: "elb", EndpointsID: "elasticloadbalancing", New: func(c aws.Config) any { return elasticloadbalancing.NewFromConfig(c) }},
	{Name: "elbv2", EndpointsID: "elasticloadbalancing", New: func(c aws.Config) any { return elasticloadbalancingv2.NewFromConfig(c) }},
	{Name: "es", EndpointsID: "es", New: func(c aws.Config) any { return elasticsearchservice.NewFromConfig(c) }},
	{Name: "events", EndpointsID: "events", New: func(c aws.Config) any { return eventbridge.NewFromConfig(c) }},
	{Name: "glacier", EndpointsID: "glacier", New: func(c aws.Config) any { return glacier.NewFromConfig(c) }},
	{Name: "glue", EndpointsID: "glue", New: func(c aws.Config) any { return glue.NewFromConfig(c) }},
	{Name: "guardduty", EndpointsID: "guardduty", New: func(c aws.Config) any { return guardduty.NewFromConfig(c) }},
	{Name: "iam", EndpointsID: "iam", New: func(c aws.Config) any { return iam.NewFromConfig(c) }},
	{Name: "inspector2", EndpointsID: "inspector2", New: func(c aws.Config) any { return inspector2.NewFromConfig(c) }},
	{Name: "kinesis", EndpointsID: "kinesis", New: func(c aws.Config) any { return kinesis.NewFromConfig(c) }},
	{Name: "kms", EndpointsID: "kms", New: func(c aws.Config) any { return kms.NewFromConfig(c) }},
	{Name: "lambda", EndpointsID: "lambda", New: func(c aws.Config) any { return lambda.NewFromConfig(c) }},
	{Name: "logs", EndpointsID: "logs", New: func(c aws.Config) any { return cloudwatchlogs.NewFromConfig(c) }},
	{Name: "mediastore", EndpointsID: "mediastore", New: func(c aws.Config) any { return mediastore.NewFromConfig(c) }},
	{Name: "memorydb", EndpointsID: "memory-db", New: func(c aws.Config) any { return memorydb.NewFromConfig(c) }},
	{Name: "opensearch", EndpointsID: "es", New: func(c aws.Config) any { return opensearch.NewFromConfig(c) }},
	{Name: "organizations", EndpointsID: "organizations", New: func(c aws.Config) any { return organizations.NewFromConfig(c) }},
	{Name: "pinpoint-sms-voice", EndpointsID: "sms-voice", New: func(c aws.Config) any { return pinpointsmsvoice.NewFromConfig(c) }},
	{Name: "rds", EndpointsID: "rds", New: func(c aws.Config) any { return rds.NewFromConfig(c) }},
	{Name: "redshift", EndpointsID: "redshift", New: func(c aws.Config) any { return redshift.NewFromConfig(c) }},
	{Name: "resource-explorer-2", EndpointsID: "resource-explorer-2", New: func(c aws.Config) any { return resourceexplorer2.NewFromConfig(c) }},
	{Name: "resourcegroupstaggingapi", EndpointsID: "tagging", New: func(c aws.Config) any { return resourcegroupstaggingapi.NewFromConfig(c) }},
	{Name: "route53", EndpointsID: "route53", New: func(c aws.Config) any { return route53.NewFromConfig(c) }},
	{Name: "s3", EndpointsID: "s3", New: func(c aws.Config) any { return s3.NewFromConfig(c) }},
	{Name: "secretsmanager", EndpointsID: "secretsmanager", New: func(c aws.Config) any { return secretsmanager.NewFromConfig(c) }},
	{Name: "securityhub", EndpointsID: "securityhub", New: func(c aws.Config) any { return securityhub.NewFromConfig(c) }},
	{Name: "serverlessrepo", EndpointsID: "serverlessrepo", New: func(c aws.Config) any { return serverlessapplicationrepository.NewFromConfig(c) }},
	{Name: "ses", EndpointsID: "email", New: func(c aws.Config) any { return ses.NewFromConfig(c) }},
	{Name: "shield", EndpointsID: "shield", New: func(c aws.Config) any { return shield.NewFromConfig(c) }},
	{Name: "sns", EndpointsID: "sns", New: func(c aws.Config) any { return sns.NewFromConfig(c) }},
	{Name: "sqs", EndpointsID: "sqs", New: func(c aws.Config) any { return sqs.NewFromConfig(c) }},
	{Name: "ssm", EndpointsID: "ssm", New: func(c aws.Config) any { return ssm.NewFromConfig(c) }},
	{Name: "stepfunctions", EndpointsID: "states", New: func(c aws.Config) any { return sfn.NewFromConfig(c) }},
	{Name: "sts", EndpointsID: "sts", New: func(c aws.Config) any { return sts.NewFromConfig(c) }},
	{Name: "timestream-query", EndpointsID: "query.timestream", New: func(c aws.Config) any { return timestreamquery.NewFromConfig(c) }},
	{Name: "wafv2", EndpointsID: "wafv2", New: func(c aws.Config) any { return wafv2.NewFromConfig(c) }},
}

var byName = func() map[string]Service {
	m := make(map[string]Service, len(services))
	for _, s := range services {
		m[s.Name] = s
	}
	return m
}()

// Lookup returns the registered service with the given short name.
func Lookup(name string) (Service, bool) {
	s, ok := byName[name]
	return s, ok
}

// Names returns the short names of all registered services, sorted.
func Names() []string {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}
