package s3

import (
	"context"
	"fmt"
	"time"

	"sfss/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	emptyAWSSessionToken = ""

	errFailedCreateAWSSessionFmt             = "failed to create AWS session: %w"
	errFailedGeneratePresignedUploadURLFmt   = "failed to generate presigned upload URL: %w"
	errFailedGeneratePresignedDownloadURLFmt = "failed to generate presigned download URL: %w"
	errFailedHeadObjectFmt                   = "failed to check object existence: %w"
)

// Client wraps the S3 API for a single bucket. Presigned URLs are the only
// way objects move; the service itself never streams file bytes.
type Client struct {
	svc          *s3.S3
	bucket       string
	region       string
	uploadExpiry time.Duration
}

func NewClient(cfg *config.AWSConfig, uploadExpiry time.Duration) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	})

	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return &Client{
		svc:          s3.New(sess),
		bucket:       cfg.Bucket,
		region:       cfg.Region,
		uploadExpiry: uploadExpiry,
	}, nil
}

func (c *Client) PresignUpload(ctx context.Context, objectKey, contentType string) (string, error) {
	req, _ := c.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	})
	req.SetContext(ctx)

	url, err := req.Presign(c.uploadExpiry)
	if err != nil {
		return "", fmt.Errorf(errFailedGeneratePresignedUploadURLFmt, err)
	}

	return url, nil
}

// PresignDownload issues a GET URL valid for ttl. Callers cap ttl at the
// grant's remaining window so a URL never outlives the grant.
func (c *Client) PresignDownload(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	req, _ := c.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	req.SetContext(ctx)

	url, err := req.Presign(ttl)
	if err != nil {
		return "", fmt.Errorf(errFailedGeneratePresignedDownloadURLFmt, err)
	}

	return url, nil
}

func (c *Client) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	_, err := c.svc.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})

	if err != nil {
		if aerr, ok := err.(awserr.RequestFailure); ok && aerr.StatusCode() == 404 {
			return false, nil
		}
		return false, fmt.Errorf(errFailedHeadObjectFmt, err)
	}

	return true, nil
}

// ObjectURL is the eventual public retrieval URL for a key, handed back at
// issuance so clients can store it alongside the grant.
func (c *Client) ObjectURL(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, objectKey)
}
