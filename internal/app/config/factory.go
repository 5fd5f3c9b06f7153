package config

import (
	"fmt"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"memo-whisper/internal/app/api"
	openaiclient "memo-whisper/internal/app/api/openai"
	"memo-whisper/internal/app/api/openai/whisper"
	"memo-whisper/internal/app/api/whisper_cpp"
	"memo-whisper/internal/app/api/whisper_server"
	envcfg "memo-whisper/internal/config"
)

// NewTranscriber constructs the backend named by name from the registry. An
// empty name selects the registry's default provider.
func NewTranscriber(cfg *ProvidersConfig, name string) (api.Transcriber, error) {
	if name == "" {
		name = cfg.DefaultProvider
	}
	if name == "" {
		return nil, fmt.Errorf("no provider selected and no default configured")
	}

	providerCfg, ok := cfg.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider '%s' is not configured", name)
	}
	if !providerCfg.Enabled {
		return nil, fmt.Errorf("provider '%s' is disabled", name)
	}

	switch providerCfg.Type {
	case "whisper_server":
		return newWhisperServerTranscriber(providerCfg)
	case "openai":
		return newOpenAITranscriber(providerCfg)
	case "whisper_cpp":
		return newWhisperCppTranscriber(providerCfg)
	case "distributed":
		return newDistributedTranscriber(providerCfg)
	default:
		return nil, fmt.Errorf("unknown provider type '%s' for provider '%s'", providerCfg.Type, name)
	}
}

func newWhisperServerTranscriber(providerCfg ProviderConfig) (api.Transcriber, error) {
	baseURL := stringSetting(providerCfg.Settings, "base_url")
	if baseURL == "" {
		baseURL = envcfg.GetNetworkConfig().GetWhisperBaseURL()
	}
	if err := envcfg.ValidateURL(baseURL, "whisper_server"); err != nil {
		return nil, err
	}

	apiKey := stringSetting(providerCfg.Auth, "api_key")
	if apiKey == "" {
		if keys, err := envcfg.GetAPIKeys(); err == nil {
			apiKey = keys.Whisper
		}
	}

	return whisper_server.NewHTTPProvider(whisper_server.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   stringSetting(providerCfg.Settings, "model"),
		Timeout: time.Duration(providerCfg.Performance.TimeoutSec) * time.Second,
	}), nil
}

func newOpenAITranscriber(providerCfg ProviderConfig) (api.Transcriber, error) {
	if apiKey := stringSetting(providerCfg.Auth, "api_key"); apiKey != "" {
		clientCfg := goopenai.DefaultConfig(apiKey)
		if baseURL := stringSetting(providerCfg.Settings, "base_url"); baseURL != "" {
			clientCfg.BaseURL = baseURL
		}
		return whisper.NewRemoteTranscriber(goopenai.NewClientWithConfig(clientCfg)), nil
	}

	// Fall back to the shared client, which reads OPENAI_API_KEY itself.
	return whisper.NewRemoteTranscriber(openaiclient.GetClient()), nil
}

func newWhisperCppTranscriber(providerCfg ProviderConfig) (api.Transcriber, error) {
	binaryPath := stringSetting(providerCfg.Settings, "binary_path")
	modelPath := stringSetting(providerCfg.Settings, "model_path")
	if binaryPath == "" || modelPath == "" {
		return nil, fmt.Errorf("whisper_cpp provider requires binary_path and model_path")
	}

	transcriber := whisper_cpp.NewLocalTranscriber(binaryPath, modelPath)
	if prompt := stringSetting(providerCfg.Settings, "prompt"); prompt != "" {
		transcriber.WithPrompt(prompt)
	}
	return transcriber, nil
}

func newDistributedTranscriber(providerCfg ProviderConfig) (api.Transcriber, error) {
	hostPort := stringSetting(providerCfg.Settings, "host_port")
	if hostPort == "" {
		hostPort = envcfg.GetNetworkConfig().TemporalHost
	}

	transcriber, err := api.NewDistributedTranscriber(hostPort)
	if err != nil {
		return nil, fmt.Errorf("failed to connect distributed transcriber: %w", err)
	}
	return transcriber, nil
}

func stringSetting(settings map[string]interface{}, key string) string {
	if settings == nil {
		return ""
	}
	if value, ok := settings[key].(string); ok {
		return value
	}
	return ""
}
