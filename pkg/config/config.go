// Package config resolves the application configuration for the binary.
package config

import (
	"context"

	"github.com/heatwatch/thermaltrap/internal/config"
	"github.com/heatwatch/thermaltrap/pkg/config/loader"
)

// DefaultPath is the local development configuration entrypoint, relative to
// the repository root.
const DefaultPath = "config/local/local.pkl"

// Evaluate loads the default configuration through the caching loader and
// returns it with the content SHA used as the config identity in logs.
func Evaluate(ctx context.Context) (*config.AppConfig, string, error) {
	return loader.LoadFromPathWithSHA(ctx, DefaultPath)
}
