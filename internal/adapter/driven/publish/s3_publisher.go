package publish

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/repository"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/shared/types"
)

// S3Publisher publica o artefato em um bucket S3 (ou compatível) servido como
// site estático. PutObject é atômico: leitores veem a versão anterior até o
// put completar.
type S3Publisher struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Publisher cria um publisher usando a cadeia padrão de credenciais AWS.
func NewS3Publisher(ctx context.Context, bucket, key string) (repository.PublishRepository, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Publisher{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}, nil
}

func (p *S3Publisher) Publish(ctx context.Context, report entity.MonetizationReport) (string, error) {
	data, err := encodeReport(report)
	if err != nil {
		return "", err
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(p.key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: s3 put: %v", types.ErrArtifactWrite, err)
	}

	return fmt.Sprintf("s3://%s/%s", p.bucket, p.key), nil
}
