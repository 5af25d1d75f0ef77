package model

// ProviderHook is an integration point exposed by a provider package.
type ProviderHook struct {
	HookClassName  string  `json:"hook_class_name"`
	ConnectionType string  `json:"connection_type"`
	HookName       string  `json:"hook_name"`
	PackageName    string  `json:"package_name"`
	Description    *string `json:"description"`
}

// Provider is a plugin descriptor for an external integration package.
type Provider struct {
	PackageName    string         `json:"package_name"`
	Description    *string        `json:"description"`
	Version        string         `json:"version"`
	ProviderName   string         `json:"provider_name"`
	Hooks          []ProviderHook `json:"hooks"`
	ExtraLinks     []string       `json:"extra_links"`
	ConnectionForm map[string]any `json:"connection_form"`
}

// NewProvider returns a Provider with empty hook and link lists.
func NewProvider() Provider {
	return Provider{
		Hooks:      []ProviderHook{},
		ExtraLinks: []string{},
	}
}

// ProviderCollection is a paginated list of providers.
type ProviderCollection struct {
	Providers    []Provider `json:"providers"`
	TotalEntries int        `json:"total_entries"`
}
