package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pocketlegal/pocketlegal/internal/flagx"
	"github.com/pocketlegal/pocketlegal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "3s" or
// as integer nanoseconds.
type JsonConfig struct {
	UserID string `json:"user_id"`

	LocalDatabaseDSN  string `json:"local_database_dsn"`
	RemoteDatabaseDSN string `json:"remote_database_dsn"`

	S3Region       string `json:"s3_region"`
	S3Bucket       string `json:"s3_bucket"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`

	BillingEndpoint string `json:"billing_endpoint"`
	BillingAPIKey   string `json:"billing_api_key"`
	BillingPriceID  string `json:"billing_price_id"`

	OpenAIEndpoint string `json:"openai_endpoint"`
	OpenAIAPIKey   string `json:"openai_api_key"`
	OpenAIModel    string `json:"openai_model"`

	GeocodeEndpoint string `json:"geocode_endpoint"`

	CaptureSource  string `json:"capture_source"`
	SealRecordings bool   `json:"seal_recordings"`

	LocationTimeout timex.Duration `json:"location_timeout"`
	UploadTimeout   timex.Duration `json:"upload_timeout"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. Empty JSON values leave the current setting alone, so a
// partial file only overrides what it mentions.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.UserID, jc.UserID)
	overlayString(&cfg.LocalDatabaseDSN, jc.LocalDatabaseDSN)
	overlayString(&cfg.RemoteDatabaseDSN, jc.RemoteDatabaseDSN)
	overlayString(&cfg.S3Region, jc.S3Region)
	overlayString(&cfg.S3Bucket, jc.S3Bucket)
	overlayString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlayString(&cfg.S3AccessKey, jc.S3AccessKey)
	overlayString(&cfg.S3SecretKey, jc.S3SecretKey)
	overlayString(&cfg.BillingEndpoint, jc.BillingEndpoint)
	overlayString(&cfg.BillingAPIKey, jc.BillingAPIKey)
	overlayString(&cfg.BillingPriceID, jc.BillingPriceID)
	overlayString(&cfg.OpenAIEndpoint, jc.OpenAIEndpoint)
	overlayString(&cfg.OpenAIAPIKey, jc.OpenAIAPIKey)
	overlayString(&cfg.OpenAIModel, jc.OpenAIModel)
	overlayString(&cfg.GeocodeEndpoint, jc.GeocodeEndpoint)
	overlayString(&cfg.CaptureSource, jc.CaptureSource)

	if jc.SealRecordings {
		cfg.SealRecordings = true
	}
	if jc.LocationTimeout.Duration > 0 {
		cfg.LocationTimeout = time.Duration(jc.LocationTimeout.Duration)
	}
	if jc.UploadTimeout.Duration > 0 {
		cfg.UploadTimeout = time.Duration(jc.UploadTimeout.Duration)
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
