package remotes

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type headBucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type describeTableAPI interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Preflight checks that the AWS resources behind an aws remote exist
// and are reachable before a clone or push is attempted against them.
type Preflight struct {
	s3     headBucketAPI
	dynamo describeTableAPI
}

// NewPreflight builds a Preflight from the default AWS configuration
// chain.
func NewPreflight(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (*Preflight, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewPreflightFromConfig(cfg), nil
}

// NewPreflightFromConfig builds a Preflight from an existing AWS
// configuration.
func NewPreflightFromConfig(cfg aws.Config) *Preflight {
	return &Preflight{
		s3:     s3.NewFromConfig(cfg),
		dynamo: dynamodb.NewFromConfig(cfg),
	}
}

// Check verifies the remote's S3 bucket and DynamoDB table. It is only
// meaningful for aws remotes; other schemes pass trivially.
func (p *Preflight) Check(ctx context.Context, remote *Remote) error {
	if remote.Scheme != SchemeAWS {
		return nil
	}

	if _, err := p.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(remote.S3Bucket),
	}); err != nil {
		return fmt.Errorf("s3 bucket %s: %w", remote.S3Bucket, err)
	}

	out, err := p.dynamo.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(remote.DynamoTable),
	})
	if err != nil {
		return fmt.Errorf("dynamodb table %s: %w", remote.DynamoTable, err)
	}
	if out.Table != nil && out.Table.TableStatus != "ACTIVE" {
		return fmt.Errorf("dynamodb table %s is %s, not ACTIVE",
			remote.DynamoTable, out.Table.TableStatus)
	}
	return nil
}
