// Package storage signs direct-upload and download URLs against an
// S3-compatible object store. Download URLs are memoized in redis for the
// lifetime of the signature; a cache miss just re-signs.
package storage

import (
	"context"
	"log"
	"time"

	"collection-app/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// PresignExpiry bounds every signed URL; the cache TTL tracks it so a
// cached URL is never served after it stops working.
const PresignExpiry = time.Hour

var Default *Client

type Client struct {
	mc     *minio.Client
	bucket string
	cache  *redis.Client
}

func Init() {
	mc, err := minio.New(config.S3_ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(config.S3_ACCESS_KEY, config.S3_SECRET_KEY, ""),
		Secure: config.S3_USE_SSL == "true",
		Region: config.S3_REGION,
	})
	if err != nil {
		log.Fatal("Failed to initialize object storage client:", err)
	}

	var cache *redis.Client
	if config.REDIS_ADDR != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     config.REDIS_ADDR,
			Password: config.REDIS_PASSWORD,
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Println("Redis unreachable, presign cache disabled:", err)
			cache = nil
		}
	}

	Default = NewClient(mc, config.S3_BUCKET, cache)
}

func NewClient(mc *minio.Client, bucket string, cache *redis.Client) *Client {
	return &Client{mc: mc, bucket: bucket, cache: cache}
}

// ObjectName builds a collision-resistant storage key: two uploads of the
// same filename never collide.
func (c *Client) ObjectName(prefix, filename string) string {
	return prefix + "/" + uuid.NewString() + "-" + filename
}

// PresignedUpload is the POST-policy form a client uses to upload directly
// to object storage.
type PresignedUpload struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

func (c *Client) PresignedUpload(ctx context.Context, objectName, contentType string) (*PresignedUpload, error) {
	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(c.bucket); err != nil {
		return nil, err
	}
	if err := policy.SetKey(objectName); err != nil {
		return nil, err
	}
	if err := policy.SetContentType(contentType); err != nil {
		return nil, err
	}
	if err := policy.SetExpires(time.Now().UTC().Add(PresignExpiry)); err != nil {
		return nil, err
	}

	u, fields, err := c.mc.PresignedPostPolicy(ctx, policy)
	if err != nil {
		return nil, err
	}
	return &PresignedUpload{URL: u.String(), Fields: fields}, nil
}

func (c *Client) PresignedGet(ctx context.Context, objectName string) (string, error) {
	key := "presign:" + objectName
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key).Result(); err == nil {
			return cached, nil
		}
	}

	u, err := c.mc.PresignedGetObject(ctx, c.bucket, objectName, PresignExpiry, nil)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		// Expire ahead of the signature so a cache hit is always usable.
		c.cache.Set(ctx, key, u.String(), PresignExpiry-time.Minute)
	}
	return u.String(), nil
}

// SignedURL derives the download URL for an optional object name; nil in,
// nil out. A signing failure degrades to nil instead of failing the read.
func SignedURL(ctx context.Context, objectName *string) *string {
	if Default == nil || objectName == nil || *objectName == "" {
		return nil
	}
	u, err := Default.PresignedGet(ctx, *objectName)
	if err != nil {
		log.Println("presign failed:", err)
		return nil
	}
	return &u
}
