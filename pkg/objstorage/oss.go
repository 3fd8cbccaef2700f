package objstorage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"path"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSS is an ObjectStorage backed by an Aliyun OSS bucket.
type OSS struct {
	Bucket *oss.Bucket
}

var _ ObjectStorage = (*OSS)(nil)

func newOSS(bucketName string, cfg config) (*OSS, error) {
	for _, required := range []struct {
		Field string
		Value string
	}{
		{Field: "bucket name", Value: bucketName},
		{Field: "endpoint", Value: cfg.Endpoint},
		{Field: "access key ID", Value: cfg.AccessKeyID},
		{Field: "access key secret", Value: cfg.AccessKeySecret},
	} {
		if required.Value == "" {
			return nil, ErrMissingCredentials{Field: required.Field}
		}
	}

	timeoutSeconds := int64(cfg.Timeout.Seconds())
	if timeoutSeconds < 1 {
		timeoutSeconds = 1
	}
	client, err := oss.New(
		cfg.Endpoint,
		cfg.AccessKeyID,
		cfg.AccessKeySecret,
		oss.Timeout(timeoutSeconds, timeoutSeconds),
	)
	if err != nil {
		return nil, ErrOSS{Err: err, Operation: "client initialization"}
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, ErrOSS{Err: err, Operation: "bucket lookup", Key: bucketName}
	}
	return &OSS{
		Bucket: bucket,
	}, nil
}

// Get implements ObjectStorage.
func (s *OSS) Get(ctx context.Context, key string) ([]byte, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	body, err := s.Bucket.GetObject(key, oss.WithContext(ctx))
	if err != nil {
		if ossStatusCode(err) == 404 {
			return nil, ErrNotFound{Key: key}
		}
		return nil, ErrOSS{Err: err, Operation: "GetObject", Key: key}
	}
	defer body.Close()

	b, err := io.ReadAll(body)
	if err != nil {
		return nil, ErrOSS{Err: err, Operation: "GetObject", Key: key}
	}
	return b, nil
}

// Replace implements ObjectStorage.
func (s *OSS) Replace(ctx context.Context, key string, blob []byte) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = s.Bucket.PutObject(key, bytes.NewReader(blob),
		oss.WithContext(ctx),
		oss.ContentType(ContentType(key)),
	)
	if err != nil {
		return ErrOSS{Err: err, Operation: "PutObject", Key: key}
	}
	return nil
}

// Exists implements ObjectStorage.
func (s *OSS) Exists(ctx context.Context, key string) (bool, error) {
	key, err := cleanKey(key)
	if err != nil {
		return false, err
	}
	exists, err := s.Bucket.IsObjectExist(key, oss.WithContext(ctx))
	if err != nil {
		return false, ErrOSS{Err: err, Operation: "IsObjectExist", Key: key}
	}
	return exists, nil
}

// Close implements io.Closer.
func (s *OSS) Close() error {
	return nil
}

// ContentType returns the MIME type by the extension of the key.
func ContentType(key string) string {
	if contentType := mime.TypeByExtension(path.Ext(key)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

func ossStatusCode(err error) int {
	var srvErr oss.ServiceError
	if errors.As(err, &srvErr) {
		return srvErr.StatusCode
	}
	return 0
}
