package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access operational endpoints.
	// The webhook intake route is exempt: the source platform signs nothing
	// and only ever needs to POST event notifications.
	ApiKey string `mapstructure:"api_key" default:""`
}
