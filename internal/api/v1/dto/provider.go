package dto

// ProviderResponse represents a configured transcription backend
type ProviderResponse struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Enabled   bool   `json:"enabled"`
	IsDefault bool   `json:"is_default"`
	Priority  int    `json:"priority"`
}

// ProviderListResponse represents the configured provider registry
type ProviderListResponse struct {
	Providers       []ProviderResponse `json:"providers"`
	DefaultProvider string             `json:"default_provider"`
}
