// Package config assembles the configuration of the release pipeline.
//
// The configuration is assembled once at start in this order (each next
// source overrides the previous one): defaults, a YAML file, a dotenv
// file, the environment variables, the command line flags. Components
// never read the environment themselves, they receive plain values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// The environment variables used by the release tooling.
const (
	EnvOSSAccessKeyID     = "OSS_ACCESS_KEY_ID"
	EnvOSSAccessKeySecret = "OSS_ACCESS_KEY_SECRET"
	EnvOSSEndpoint        = "OSS_ENDPOINT"
	EnvOSSBucketName      = "OSS_BUCKET_NAME"
	EnvOSSBucketURL       = "OSS_BUCKET_URL"
	EnvVersionsServerURL  = "VERSIONS_SERVER_URL"
	EnvVersionsToken      = "VERSIONS_TOKEN"
)

// CatalogDirName is the directory inside the releases directory which
// keeps release records if no catalog URL is set.
const CatalogDirName = ".catalog"

// DefaultEnvFile is the dotenv file read if no other is specified.
const DefaultEnvFile = ".env"

// Config is the configuration of the release pipeline.
type Config struct {
	// ReleasesDir is the directory with release archives (v*.zip).
	ReleasesDir string `yaml:"releases_dir"`

	// MergedBinaryName is the name of the merged binary inside an archive.
	MergedBinaryName string `yaml:"merged_binary_name"`

	// ArtifactName is the name of the extracted application image.
	ArtifactName string `yaml:"artifact_name"`

	// ObjectRoot is the object key prefix of all releases.
	ObjectRoot string `yaml:"object_root"`

	// CatalogURL defines where release records are kept, see releasecatalog.New.
	// If empty, the records are kept in CatalogDirName inside ReleasesDir,
	// see ReleaseCatalogURL.
	CatalogURL string `yaml:"catalog_url"`

	Storage  StorageConfig  `yaml:"storage"`
	Versions VersionsConfig `yaml:"versions"`
}

// StorageConfig is the configuration of the object storage.
type StorageConfig struct {
	// URL overrides the storage, see objstorage.New. If empty, the OSS
	// bucket BucketName is used.
	URL             string        `yaml:"url"`
	Endpoint        string        `yaml:"endpoint"`
	BucketName      string        `yaml:"bucket_name"`
	AccessKeyID     string        `yaml:"access_key_id"`
	AccessKeySecret string        `yaml:"access_key_secret"`
	Token           string        `yaml:"token"`
	Timeout         time.Duration `yaml:"timeout"`

	// PublicURL is the base URL the published objects are downloaded from.
	PublicURL string `yaml:"public_url"`
}

// VersionsConfig is the configuration of the versions server.
type VersionsConfig struct {
	ServerURL string        `yaml:"server_url"`
	Token     string        `yaml:"token"`
	Timeout   time.Duration `yaml:"timeout"`
	Retries   uint          `yaml:"retries"`
}

// Default returns the configuration with default values.
func Default() Config {
	return Config{
		ReleasesDir:      "releases",
		MergedBinaryName: "merged-binary.bin",
		ArtifactName:     "xiaozhi.bin",
		ObjectRoot:       "firmwares",
		Storage: StorageConfig{
			Timeout: 5 * time.Minute,
		},
		Versions: VersionsConfig{
			Timeout: 30 * time.Second,
			Retries: 2,
		},
	}
}

// Load returns the configuration assembled from the defaults, the YAML
// file configPath (if not empty), the dotenv file envFile and the
// environment variables.
//
// A missing DefaultEnvFile is ignored, any other missing file is an error.
func Load(configPath, envFile string) (Config, error) {
	cfg := Default()
	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return cfg, err
		}
	}

	env := map[string]string{}
	if envFile != "" {
		dotEnv, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			env = dotEnv
		case envFile == DefaultEnvFile && errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, ErrLoad{Path: envFile, Err: err}
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	cfg.ApplyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	return cfg, nil
}

// LoadFile overrides the configuration by values from a YAML file.
func (cfg *Config) LoadFile(configPath string) error {
	f, err := os.Open(configPath)
	if err != nil {
		return ErrLoad{Path: configPath, Err: err}
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return ErrLoad{Path: configPath, Err: err}
	}
	return nil
}

// ApplyEnv overrides the configuration by the non-empty environment variables.
func (cfg *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	for envVar, dst := range map[string]*string{
		EnvOSSAccessKeyID:     &cfg.Storage.AccessKeyID,
		EnvOSSAccessKeySecret: &cfg.Storage.AccessKeySecret,
		EnvOSSEndpoint:        &cfg.Storage.Endpoint,
		EnvOSSBucketName:      &cfg.Storage.BucketName,
		EnvOSSBucketURL:       &cfg.Storage.PublicURL,
		EnvVersionsServerURL:  &cfg.Versions.ServerURL,
		EnvVersionsToken:      &cfg.Versions.Token,
	} {
		if v, ok := lookupEnv(envVar); ok && v != "" {
			*dst = v
		}
	}
}

// AddFlags registers command line flags which override the configuration.
// The current values are used as the flag defaults.
func (cfg *Config) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&cfg.ReleasesDir, "releases-dir", cfg.ReleasesDir, "the directory with release archives (v*.zip)")
	flagSet.StringVar(&cfg.MergedBinaryName, "merged-binary-name", cfg.MergedBinaryName, "the name of the merged binary inside an archive")
	flagSet.StringVar(&cfg.ArtifactName, "artifact-name", cfg.ArtifactName, "the name of the extracted application image")
	flagSet.StringVar(&cfg.ObjectRoot, "object-root", cfg.ObjectRoot, "the object key prefix of all releases")
	flagSet.StringVar(&cfg.CatalogURL, "catalog", cfg.CatalogURL, "where release records are kept: fs://<dir>, mysql://<DSN> or object://<prefix> (default: fs://<releases-dir>/"+CatalogDirName+")")
	flagSet.StringVar(&cfg.Storage.URL, "storage", cfg.Storage.URL, "override the object storage: fs://<dir>, oss://<bucket>, http(s)://<url>")
	flagSet.StringVar(&cfg.Storage.PublicURL, "public-url", cfg.Storage.PublicURL, "the base URL of the published objects ("+EnvOSSBucketURL+")")
	flagSet.DurationVar(&cfg.Storage.Timeout, "storage-timeout", cfg.Storage.Timeout, "the timeout of a single object storage request")
	flagSet.StringVar(&cfg.Versions.ServerURL, "versions-server", cfg.Versions.ServerURL, "the versions server URL ("+EnvVersionsServerURL+")")
	flagSet.DurationVar(&cfg.Versions.Timeout, "versions-timeout", cfg.Versions.Timeout, "the timeout of a single versions server request")
	flagSet.UintVar(&cfg.Versions.Retries, "versions-retries", cfg.Versions.Retries, "how many times to retry a versions server request on a network error")
}

// StorageURL returns the URL of the object storage.
func (cfg Config) StorageURL() string {
	if cfg.Storage.URL != "" {
		return cfg.Storage.URL
	}
	if cfg.Storage.BucketName == "" {
		return ""
	}
	return "oss://" + cfg.Storage.BucketName
}

// ReleaseCatalogURL returns the URL of the release catalog.
func (cfg Config) ReleaseCatalogURL() string {
	if cfg.CatalogURL != "" {
		return cfg.CatalogURL
	}
	return "fs://" + filepath.Join(cfg.ReleasesDir, CatalogDirName)
}

// ArtifactURL returns the public URL of the application image of a release.
func (cfg Config) ArtifactURL(releasePrefix string) string {
	return strings.TrimSuffix(cfg.Storage.PublicURL, "/") + "/" + path.Join(releasePrefix, cfg.ArtifactName)
}

// Validate returns all the problems of the configuration required
// to publish releases, or nil.
func (cfg Config) Validate() error {
	var result *multierror.Error

	for _, required := range []struct {
		Value  string
		Field  string
		EnvVar string
	}{
		{Value: cfg.ReleasesDir, Field: "releases_dir"},
		{Value: cfg.MergedBinaryName, Field: "merged_binary_name"},
		{Value: cfg.ArtifactName, Field: "artifact_name"},
		{Value: cfg.ObjectRoot, Field: "object_root"},
		{Value: cfg.StorageURL(), Field: "storage.bucket_name", EnvVar: EnvOSSBucketName},
		{Value: cfg.Storage.PublicURL, Field: "storage.public_url", EnvVar: EnvOSSBucketURL},
		{Value: cfg.Versions.ServerURL, Field: "versions.server_url", EnvVar: EnvVersionsServerURL},
		{Value: cfg.Versions.Token, Field: "versions.token", EnvVar: EnvVersionsToken},
	} {
		if required.Value == "" {
			result = multierror.Append(result, ErrMissing{Field: required.Field, EnvVar: required.EnvVar})
		}
	}

	if strings.HasPrefix(cfg.StorageURL(), "oss://") {
		for _, required := range []struct {
			Value  string
			Field  string
			EnvVar string
		}{
			{Value: cfg.Storage.Endpoint, Field: "storage.endpoint", EnvVar: EnvOSSEndpoint},
			{Value: cfg.Storage.AccessKeyID, Field: "storage.access_key_id", EnvVar: EnvOSSAccessKeyID},
			{Value: cfg.Storage.AccessKeySecret, Field: "storage.access_key_secret", EnvVar: EnvOSSAccessKeySecret},
		} {
			if required.Value == "" {
				result = multierror.Append(result, ErrMissing{Field: required.Field, EnvVar: required.EnvVar})
			}
		}
	}

	catalogURL := cfg.ReleaseCatalogURL()
	if prefix, ok := strings.CutPrefix(catalogURL, "object://"); ok {
		if path.Clean("/"+prefix) == path.Clean("/"+cfg.ObjectRoot) {
			result = multierror.Append(result, ErrConflict{Description: fmt.Sprintf(
				"catalog prefix '%s' equals the object root: the release documents would be published before the releases are announced",
				prefix,
			)})
		}
	}
	if dir, ok := strings.CutPrefix(catalogURL, "fs://"); ok && cfg.ReleasesDir != "" {
		if isSameDir(dir, cfg.ReleasesDir) {
			result = multierror.Append(result, ErrConflict{Description: fmt.Sprintf(
				"catalog directory '%s' equals the releases directory: the staged release documents would be taken as records before the releases are announced",
				dir,
			)})
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return ErrInvalid{Err: err}
	}
	return nil
}

func isSameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
