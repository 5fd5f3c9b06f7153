package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/api/v1/routes"
)

func TestProviderHandler_List(t *testing.T) {
	router := setupRouter(&routes.ServiceContainer{
		ProviderService: &fakeProviderService{
			listFunc: func(ctx context.Context) (*dto.ProviderListResponse, error) {
				return &dto.ProviderListResponse{
					Providers: []dto.ProviderResponse{
						{Name: "openai", Type: "openai", Enabled: true, IsDefault: true, Priority: 10},
						{Name: "local", Type: "whisper_cpp", Enabled: false, Priority: 1},
					},
					DefaultProvider: "openai",
				}, nil
			},
		},
	})

	w := doRequest(t, router, http.MethodGet, "/api/v1/providers", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "openai", body["default_provider"])

	providers, ok := body["providers"].([]interface{})
	require.True(t, ok)
	require.Len(t, providers, 2)

	first, ok := providers[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "openai", first["name"])
	assert.Equal(t, true, first["is_default"])
}
