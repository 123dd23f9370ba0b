package db

import (
	"context"
	"fmt"

	"github.com/viant/scy"
	"github.com/viant/scy/cred"
)

// resolveCredentials replaces user and password with the basic credentials
// stored at SecretURL, when set.
func resolveCredentials(ctx context.Context, cfg *Config) error {
	if cfg.SecretURL == "" {
		return nil
	}
	targetType, err := cred.TargetType("basic")
	if err != nil {
		return fmt.Errorf("invalid secret target: %w", err)
	}
	resource := scy.NewResource(targetType, cfg.SecretURL, cfg.SecretKey)
	secret, err := scy.New().Load(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to load secret from %s: %w", cfg.SecretURL, err)
	}
	switch actual := secret.Target.(type) {
	case *cred.Basic:
		cfg.User, cfg.Password = actual.Username, actual.Password
	case cred.Basic:
		cfg.User, cfg.Password = actual.Username, actual.Password
	default:
		return fmt.Errorf("unexpected secret type %T at %s", secret.Target, cfg.SecretURL)
	}
	return nil
}
