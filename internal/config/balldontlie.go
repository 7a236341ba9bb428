package config

// BalldontlieConfig controls how we talk to the balldontlie API.
type BalldontlieConfig struct {
	BaseURL string `env:"BALLDONTLIE_BASE_URL" envDefault:"https://api.balldontlie.io/v1"`
	APIKey  string `env:"BALLDONTLIE_API_KEY"`
}
