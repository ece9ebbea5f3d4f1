package source

// Config holds configuration for the booking platform API.
type Config struct {
	// BaseURL is the root URL of the booking platform API.
	BaseURL string `mapstructure:"base_url" default:"https://api.booking.example.com/v1"`
	// Token is the bearer token used for authentication.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
