package openapi

import "github.com/danielgtaylor/huma/v2"

const (
	Title   = "Artha Translator API"
	Version = "1.0.0"
)

// Config is huma's default config without the $schema link transformer,
// so bodies go out exactly as their structs describe them.
func Config() huma.Config {
	config := huma.DefaultConfig(Title, Version)
	config.CreateHooks = nil
	config.Info.Description = "Accounts, translation, per-user history and feedback for the Artha translator."
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	return config
}
