package s3aws

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"hava-checkout/internal/pkg/logger"
	"hava-checkout/internal/pkg/redis"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const defaultPresignExpiry = 24 * time.Hour

type S3Config struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	BucketName         string
	PresignExpiry      time.Duration
}

type S3Client struct {
	Client     *s3.S3
	BucketName string
	expiry     time.Duration
	redis      redis.IRedis
}

// Is3 is what the payment method source needs to show QR images stored
// in a private bucket.
type Is3 interface {
	GetBucketName() string
	GetPresignedURL(key string) (string, error)
}

func newSession(cfg S3Config) (*session.Session, error) {
	return session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	})
}

// NewS3Client connects to the QR bucket. rds may be nil, in which case
// presigned URLs are not cached.
func NewS3Client(cfg S3Config, rds redis.IRedis) (*S3Client, error) {
	sess, err := newSession(cfg)
	if err != nil {
		return nil, err
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}

	s3Client := &S3Client{
		Client:     s3.New(sess),
		BucketName: cfg.BucketName,
		expiry:     expiry,
		redis:      rds,
	}

	exists, err := CheckBucketExists(s3Client)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Warning.Printf("S3 bucket %s does not exist, payment QR codes will not resolve", cfg.BucketName)
	}

	return s3Client, nil
}

func CheckBucketExists(client *S3Client) (bool, error) {
	_, err := client.Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(client.BucketName),
	})

	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchBucket, "NotFound":
				return false, nil
			default:
				return false, err
			}
		}
		return false, err
	}

	return true, nil
}

func (s *S3Client) GetBucketName() string {
	return s.BucketName
}

func cacheKey(bucket, key string) string {
	return fmt.Sprintf("s3:%s:%s", bucket, key)
}

// GetPresignedURL returns a time-limited GET URL for key. URLs are cached
// for half their lifetime so a cached URL never hands out an expired link.
func (s *S3Client) GetPresignedURL(key string) (string, error) {
	ck := cacheKey(s.BucketName, key)
	if s.redis != nil {
		if cached, err := s.redis.Get(ck); err == nil && strings.HasPrefix(cached, "http") {
			return cached, nil
		}
	}

	req, _ := s.Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket:                     aws.String(s.BucketName),
		Key:                        aws.String(key),
		ResponseContentType:        aws.String(contentTypeFromKey(key)),
		ResponseContentDisposition: aws.String("inline"),
	})

	urlStr, err := req.Presign(s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if s.redis != nil {
		if err := s.redis.Set(ck, urlStr, s.expiry/2); err != nil {
			logger.Warning.Printf("Failed to cache presigned URL for %s: %v", key, err)
		}
	}

	return urlStr, nil
}

func contentTypeFromKey(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
