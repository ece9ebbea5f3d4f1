package sink

// Config holds configuration for the ledger platform API.
type Config struct {
	// BaseURL is the root URL of the ledger platform API.
	BaseURL string `mapstructure:"base_url" default:"https://ledger.example.com/api/v2"`
	// Token is the API token used for authentication.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
