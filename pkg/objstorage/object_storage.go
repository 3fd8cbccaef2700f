package objstorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// ObjectStorage is a flat key-value storage of published objects.
//
// Keys are slash-separated ("firmwares/v1.0.0_board/xiaozhi.bin").
// Replace overwrites an existing object, so uploading the same key
// twice is safe.
type ObjectStorage interface {
	io.Closer

	Get(ctx context.Context, key string) ([]byte, error)
	Replace(ctx context.Context, key string, blob []byte) error
	Exists(ctx context.Context, key string) (bool, error)
}

// New returns an ObjectStorage defined by the URL:
//
//	fs://<dir>                   -- a local directory;
//	oss://<bucket>               -- an Aliyun OSS bucket (requires OptionEndpoint and OptionCredentials);
//	http://<host>/<path>         -- a plain HTTP storage (GET/PUT/HEAD on <url>/<key>);
//	https://<host>/<path>        -- same as above, but over TLS.
func New(urlString string, opts ...Option) (ObjectStorage, error) {
	parsedURL, err := url.Parse(urlString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse url '%s': %w", urlString, err)
	}
	cfg := options(opts).config()
	switch parsedURL.Scheme {
	case "fs":
		return newFS(parsedURL.Host + parsedURL.Path)
	case "oss":
		return newOSS(parsedURL.Host, cfg)
	case "http", "https":
		return newHTTP(parsedURL, cfg)
	default:
		return nil, ErrUnknownScheme{Scheme: parsedURL.Scheme}
	}
}

func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || strings.HasPrefix(key, "/") || cleaned != strings.TrimSuffix(key, "/") {
		return "", ErrInvalidKey{Key: key}
	}
	return cleaned, nil
}
