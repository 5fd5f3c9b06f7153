package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-whisper/internal/app/api/openai/whisper"
	"memo-whisper/internal/app/api/whisper_cpp"
	"memo-whisper/internal/app/api/whisper_server"
)

func factoryTestConfig() *ProvidersConfig {
	return &ProvidersConfig{
		DefaultProvider: "server",
		Providers: map[string]ProviderConfig{
			"server": {
				Type:    "whisper_server",
				Enabled: true,
				Settings: map[string]interface{}{
					"base_url": "http://localhost:9000/v1",
				},
			},
			"cloud": {
				Type:    "openai",
				Enabled: true,
				Auth: map[string]interface{}{
					"api_key": "sk-test-key",
				},
			},
			"local": {
				Type:    "whisper_cpp",
				Enabled: true,
				Settings: map[string]interface{}{
					"binary_path": "/opt/whisper/main",
					"model_path":  "/opt/whisper/ggml-large-v2.bin",
				},
			},
			"broken_local": {
				Type:    "whisper_cpp",
				Enabled: true,
			},
			"parked": {
				Type:    "openai",
				Enabled: false,
			},
		},
	}
}

// TestNewTranscriber tests backend construction for each provider type and
// the selection rules.
func TestNewTranscriber(t *testing.T) {
	cfg := factoryTestConfig()

	tests := []struct {
		name         string
		provider     string
		expectedType interface{}
		wantErr      string
	}{
		{
			name:         "whisper_server_provider",
			provider:     "server",
			expectedType: &whisper_server.HTTPProvider{},
		},
		{
			name:         "openai_provider",
			provider:     "cloud",
			expectedType: &whisper.RemoteTranscriber{},
		},
		{
			name:         "whisper_cpp_provider",
			provider:     "local",
			expectedType: &whisper_cpp.LocalTranscriber{},
		},
		{
			name:         "empty_name_uses_default",
			provider:     "",
			expectedType: &whisper_server.HTTPProvider{},
		},
		{
			name:     "unknown_provider",
			provider: "no_such_provider",
			wantErr:  "not configured",
		},
		{
			name:     "disabled_provider",
			provider: "parked",
			wantErr:  "disabled",
		},
		{
			name:     "whisper_cpp_without_paths",
			provider: "broken_local",
			wantErr:  "requires binary_path and model_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcriber, err := NewTranscriber(cfg, tt.provider)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expectedType, transcriber)
		})
	}
}

// TestNewTranscriberNoDefault tests the error when nothing is selected and
// the registry has no default.
func TestNewTranscriberNoDefault(t *testing.T) {
	cfg := factoryTestConfig()
	cfg.DefaultProvider = ""

	_, err := NewTranscriber(cfg, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no default configured")
}
