package config

type Config struct {
	OpenAIKey    string
	AnthropicKey string
	DatabaseURL  string
	RedisURL     string
	RateLimit    string
	Environment  string
}

// flags for the ingester index command
type IndexFlags struct {
	Path      string
	Namespace string
	Keep      bool
}

// flags shared by the site maintenance tools
type SiteFlags struct {
	Root string
	Args []string
}
