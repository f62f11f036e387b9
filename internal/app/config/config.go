// Package config holds runtime settings for the PocketLegal app and the
// defaults -> JSON -> flags overlay used to load them.
package config

import "time"

// Config holds runtime settings for the app. Empty endpoint values disable
// the corresponding collaborator: no RemoteDatabaseDSN means no remote
// mirroring, no S3Bucket means every recording stays local, and so on.
type Config struct {
	UserID string

	LocalDatabaseDSN  string
	RemoteDatabaseDSN string

	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	BillingEndpoint string
	BillingAPIKey   string
	BillingPriceID  string

	OpenAIEndpoint string
	OpenAIAPIKey   string
	OpenAIModel    string

	GeocodeEndpoint string

	// CaptureSource is the media file backing the demo capture device.
	CaptureSource string

	// SealRecordings enables client-side encryption of recording blobs.
	SealRecordings bool

	LocationTimeout time.Duration
	UploadTimeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.UserID = "demo-user"
	c.LocalDatabaseDSN = "pocketlegal.db"
	c.S3Region = "us-east-1"
	c.BillingEndpoint = "https://api.stripe.com"
	c.OpenAIEndpoint = "https://api.openai.com"
	c.OpenAIModel = "gpt-4o-mini"
	c.GeocodeEndpoint = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	c.LocationTimeout = 10 * time.Second
	c.UploadTimeout = 20 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
