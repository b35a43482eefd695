package beams

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultInstanceID is the Beams instance used when none is configured.
	DefaultInstanceID = "8c4f8907-19a5-4d60-8de2-39344b7156da"

	// DefaultTimeout is the publish request timeout.
	DefaultTimeout = 15 * time.Second

	// EnvInstance is the environment variable holding the instance id.
	EnvInstance = "BEAMS_INSTANCE"

	// EnvSecret is the environment variable holding the server secret key.
	EnvSecret = "BEAMS_SECRET"
)

// ErrMissingSecret is returned when no secret key is configured.
var ErrMissingSecret = errors.New(EnvSecret + " environment variable is not set")

// Config holds what is needed to talk to one Beams instance.
type Config struct {
	// InstanceID identifies the Beams instance.
	InstanceID string

	// SecretKey is sent as the bearer token.
	SecretKey string

	// BaseURL overrides https://{instance}.pushnotifications.pusher.com when set.
	BaseURL string

	// Timeout is the maximum duration of one publish request.
	Timeout time.Duration
}

// DefaultConfig returns a Config for the default instance without a secret.
func DefaultConfig() Config {
	return Config{
		InstanceID: DefaultInstanceID,
		Timeout:    DefaultTimeout,
	}
}

// Validate checks that the configuration can be used to publish.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return ErrMissingSecret
	}
	if strings.TrimSpace(c.InstanceID) == "" {
		return errors.New("instance id cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base URL must start with http:// or https://, got %q", c.BaseURL)
	}
	return nil
}

// PublishURL returns the publish-to-interests endpoint for the instance.
func (c Config) PublishURL() string {
	base := strings.TrimSuffix(c.BaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.pushnotifications.pusher.com", c.InstanceID)
	}
	return fmt.Sprintf("%s/publish_api/v1/instances/%s/publishes/interests", base, c.InstanceID)
}
