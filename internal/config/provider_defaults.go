package config

import "time"

// Provider default configuration constants
const (
	// Timeout defaults
	DefaultWhisperServerTimeout = 300 * time.Second
	DefaultOpenAITimeout        = 60 * time.Second
	DefaultWhisperCppTimeout    = 300 * time.Second
	DefaultDistributedTimeout   = 30 * time.Minute

	// Concurrency defaults
	DefaultWhisperServerConcurrency = 2
	DefaultOpenAIConcurrency        = 5
	DefaultWhisperCppConcurrency    = 2
	DefaultDistributedConcurrency   = 4

	// Retry defaults
	DefaultRetries      = 2
	DefaultRetryDelayMs = 2000

	// Network defaults
	DefaultHTTPPort = "8080"

	// Model defaults
	DefaultOpenAIWhisperModel = "whisper-1"
	DefaultWhisperCppModel    = "ggml-large-v2.bin"
	DefaultLanguage           = "en"
)

// ProviderDefaults holds all default configurations for providers
type ProviderDefaults struct {
	Timeout      time.Duration
	Concurrency  int
	Retries      int
	RetryDelayMs int
}

// GetProviderDefaults returns default configuration for a given provider type
func GetProviderDefaults(providerType string) ProviderDefaults {
	switch providerType {
	case "whisper_server":
		return ProviderDefaults{
			Timeout:      DefaultWhisperServerTimeout,
			Concurrency:  DefaultWhisperServerConcurrency,
			Retries:      DefaultRetries,
			RetryDelayMs: DefaultRetryDelayMs,
		}
	case "openai":
		return ProviderDefaults{
			Timeout:      DefaultOpenAITimeout,
			Concurrency:  DefaultOpenAIConcurrency,
			Retries:      DefaultRetries,
			RetryDelayMs: DefaultRetryDelayMs,
		}
	case "whisper_cpp":
		return ProviderDefaults{
			Timeout:      DefaultWhisperCppTimeout,
			Concurrency:  DefaultWhisperCppConcurrency,
			Retries:      DefaultRetries,
			RetryDelayMs: DefaultRetryDelayMs,
		}
	case "distributed":
		return ProviderDefaults{
			Timeout:      DefaultDistributedTimeout,
			Concurrency:  DefaultDistributedConcurrency,
			Retries:      DefaultRetries,
			RetryDelayMs: DefaultRetryDelayMs,
		}
	default:
		return ProviderDefaults{
			Timeout:      DefaultWhisperServerTimeout,
			Concurrency:  1,
			Retries:      DefaultRetries,
			RetryDelayMs: DefaultRetryDelayMs,
		}
	}
}
