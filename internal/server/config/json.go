package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/catkeeper/internal/flagx"
	"github.com/dmitrijs2005/catkeeper/internal/timex"
)

type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	DefaultLat                   float64        `json:"default_lat"`
	DefaultLng                   float64        `json:"default_lng"`
}

// parseJson overlays config values from a JSON file when one is given via the
// -c/-config flags or the CONFIG environment variable. Missing keys leave the
// current values untouched.
func parseJson(config *Config) error {

	fileName := flagx.JsonConfigFlags()

	if envVal, ok := os.LookupEnv("CONFIG"); ok {
		fileName = envVal
	}

	if fileName == "" {
		return nil
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}

	jsonConfig := &JsonConfig{
		EndpointAddrHTTP:             config.EndpointAddrHTTP,
		DatabaseDSN:                  config.DatabaseDSN,
		SecretKey:                    config.SecretKey,
		AccessTokenValidityDuration:  timex.Duration{Duration: config.AccessTokenValidityDuration},
		RefreshTokenValidityDuration: timex.Duration{Duration: config.RefreshTokenValidityDuration},
		S3RootUser:                   config.S3RootUser,
		S3RootPassword:               config.S3RootPassword,
		S3Bucket:                     config.S3Bucket,
		S3Region:                     config.S3Region,
		S3BaseEndpoint:               config.S3BaseEndpoint,
		DefaultLat:                   config.DefaultLat,
		DefaultLng:                   config.DefaultLng,
	}

	if err := json.Unmarshal(data, jsonConfig); err != nil {
		return err
	}

	config.EndpointAddrHTTP = jsonConfig.EndpointAddrHTTP
	config.DatabaseDSN = jsonConfig.DatabaseDSN
	config.SecretKey = jsonConfig.SecretKey
	config.AccessTokenValidityDuration = time.Duration(jsonConfig.AccessTokenValidityDuration.Duration)
	config.RefreshTokenValidityDuration = time.Duration(jsonConfig.RefreshTokenValidityDuration.Duration)
	config.S3RootUser = jsonConfig.S3RootUser
	config.S3RootPassword = jsonConfig.S3RootPassword
	config.S3Bucket = jsonConfig.S3Bucket
	config.S3Region = jsonConfig.S3Region
	config.S3BaseEndpoint = jsonConfig.S3BaseEndpoint
	config.DefaultLat = jsonConfig.DefaultLat
	config.DefaultLng = jsonConfig.DefaultLng

	return nil
}
