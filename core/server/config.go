package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB is the maximum accepted request body size in megabytes.
	// Matches the upload ceiling for invoice documents.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"35"`
}
