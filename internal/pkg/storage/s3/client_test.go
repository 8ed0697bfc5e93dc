package s3aws

import (
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	m   map[string]string
	ttl map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{m: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(key string, value any, expiration time.Duration) error {
	f.m[key] = value.(string)
	f.ttl[key] = expiration
	return nil
}
func (f *fakeRedis) Get(key string) (string, error)                   { return f.m[key], nil }
func (f *fakeRedis) Del(key string) error                             { delete(f.m, key); return nil }
func (f *fakeRedis) Expire(key string, expiration time.Duration) error { return nil }
func (f *fakeRedis) Ping() error                                      { return nil }
func (f *fakeRedis) Close() error                                     { return nil }

func offlineClient(t *testing.T, rds *fakeRedis) *S3Client {
	t.Helper()
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String("ap-southeast-1"),
		Credentials: credentials.NewStaticCredentials("AKID", "SECRET", ""),
	})
	require.NoError(t, err)

	return &S3Client{Client: s3.New(sess), BucketName: "hava-qr", expiry: time.Hour, redis: rds}
}

func TestGetPresignedURL_SignsAndCaches(t *testing.T) {
	rds := newFakeRedis()
	c := offlineClient(t, rds)

	u, err := c.GetPresignedURL("payment-qr/gcash.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://"))
	assert.Contains(t, u, "payment-qr/gcash.png")
	assert.Contains(t, u, "X-Amz-Signature=")

	assert.Equal(t, u, rds.m["s3:hava-qr:payment-qr/gcash.png"])
	assert.Equal(t, 30*time.Minute, rds.ttl["s3:hava-qr:payment-qr/gcash.png"])
}

func TestGetPresignedURL_UsesCache(t *testing.T) {
	rds := newFakeRedis()
	rds.m["s3:hava-qr:qr.png"] = "https://cached.example/qr.png"
	c := offlineClient(t, rds)

	u, err := c.GetPresignedURL("qr.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cached.example/qr.png", u)
}

func TestGetPresignedURL_NoCache(t *testing.T) {
	c := offlineClient(t, nil)
	c.redis = nil

	u, err := c.GetPresignedURL("qr.jpg")
	require.NoError(t, err)
	assert.NotEmpty(t, u)
}

func TestContentTypeFromKey(t *testing.T) {
	assert.Equal(t, "image/png", contentTypeFromKey("a/B.PNG"))
	assert.Equal(t, "image/jpeg", contentTypeFromKey("x.jpeg"))
	assert.Equal(t, "application/octet-stream", contentTypeFromKey("noext"))
}
