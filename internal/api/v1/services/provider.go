package services

import (
	"context"
	"sort"

	"memo-whisper/internal/api/v1/dto"
	appconfig "memo-whisper/internal/app/config"
)

// ProviderServiceImpl implements ProviderService over the provider registry.
type ProviderServiceImpl struct {
	cfg *appconfig.ProvidersConfig
}

// NewProviderService creates a new provider service
func NewProviderService(cfg *appconfig.ProvidersConfig) *ProviderServiceImpl {
	return &ProviderServiceImpl{cfg: cfg}
}

// ListProviders returns every configured backend, highest priority first.
func (s *ProviderServiceImpl) ListProviders(ctx context.Context) (*dto.ProviderListResponse, error) {
	providers := make([]dto.ProviderResponse, 0, len(s.cfg.Providers))
	for name, p := range s.cfg.Providers {
		providers = append(providers, dto.ProviderResponse{
			Name:      name,
			Type:      p.Type,
			Enabled:   p.Enabled,
			IsDefault: name == s.cfg.DefaultProvider,
			Priority:  p.Priority,
		})
	}

	sort.Slice(providers, func(i, j int) bool {
		if providers[i].Priority != providers[j].Priority {
			return providers[i].Priority > providers[j].Priority
		}
		return providers[i].Name < providers[j].Name
	})

	return &dto.ProviderListResponse{
		Providers:       providers,
		DefaultProvider: s.cfg.DefaultProvider,
	}, nil
}
