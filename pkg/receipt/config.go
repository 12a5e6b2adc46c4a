package receipt

import "time"

// Environment selects validation semantics. The environment is always an
// explicit configuration value, never guessed from build flags or URLs.
const (
	EnvProduction = "production"
	EnvSandbox    = "sandbox"
)

// Config holds configuration for the receipt validation backend.
type Config struct {
	BaseURL     string        `env:"RECEIPT_API_URL,required"`                  // validation backend base URL
	APIKey      string        `env:"RECEIPT_API_KEY,required"`                  // sent as X-API-Key on every request
	Environment string        `env:"RECEIPT_ENVIRONMENT" envDefault:"production"` // "production" or "sandbox"
	Platform    string        `env:"RECEIPT_PLATFORM" envDefault:"ios"`         // "ios" or "android"
	Timeout     time.Duration `env:"RECEIPT_TIMEOUT" envDefault:"10s"`          // hard cap raced against the network call
}
