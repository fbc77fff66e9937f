package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// objectPutter is the subset of the S3 client used by Archive.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ArchiveConfig describes an S3-compatible bucket.
type ArchiveConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	PathStyle bool
}

// Archive stores every submission as a JSON object in a bucket.
type Archive struct {
	s3     objectPutter
	bucket string
	prefix string
}

// NewArchive creates an archive sink with static credentials.
func NewArchive(ctx context.Context, cfg ArchiveConfig) (*Archive, error) {
	if cfg.Bucket == "" {
		return nil, errBucketRequired
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return newArchive(client, cfg.Bucket, cfg.Prefix), nil
}

func newArchive(client objectPutter, bucket, prefix string) *Archive {
	return &Archive{s3: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Name implements Sink.
func (a *Archive) Name() string { return "s3" }

// Send implements Sink.
func (a *Archive) Send(ctx context.Context, sub *Submission) error {
	key := a.objectKey(sub)
	_, err := a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(sub.Payload),
		ContentLength: aws.Int64(int64(len(sub.Payload))),
		ContentType:   aws.String("application/json"),
		Metadata: map[string]string{
			"submission-id": sub.ID,
		},
	})
	if err != nil {
		if code := apiErrorCode(err); code != "" {
			return fmt.Errorf("failed to put object %s in bucket %s (%s): %w", key, a.bucket, code, err)
		}
		return fmt.Errorf("failed to put object %s in bucket %s: %w", key, a.bucket, err)
	}
	return nil
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// objectKey builds <prefix>/<yyyy>/<mm>/<timestamp>-<slug>-<id>.json.
func (a *Archive) objectKey(sub *Submission) string {
	slug := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(sub.Form.BusinessName), "-"), "-")
	if slug == "" {
		slug = "unnamed"
	}
	name := fmt.Sprintf("%s-%s-%s.json", sub.At.Format("20060102T150405Z"), slug, sub.ID)
	return path.Join(a.prefix, sub.At.Format("2006"), sub.At.Format("01"), name)
}

// apiErrorCode extracts the service error code, if any.
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
