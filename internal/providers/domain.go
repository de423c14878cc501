package providers

import (
	"context"
	"time"
)

// Name identifies a hosting provider.
type Name string

const (
	NameVercel  Name = "vercel"
	NameNetlify Name = "netlify"
	NameRailway Name = "railway"
)

// State is the canonical deployment state shared by all providers.
// Each adapter's raw status vocabulary is folded into this set by
// Normalize.
type State string

const (
	StatePending   State = "pending"
	StateBuilding  State = "building"
	StateSuccess   State = "success"
	StateFailed    State = "failed"
	StateCancelled State = "cancelled"
)

// CreateConfig is the provider-independent description of a deployment
// to create. Adapters translate it into their wire payloads.
type CreateConfig struct {
	ProjectName     string
	RepoURL         string
	Branch          string
	BuildCommand    string
	OutputDirectory string
	EnvVars         map[string]string
	Environment     string
	Domain          string
}

// CreateResult is what a successful provider create call yields. URL may
// be empty when the provider assigns an address later in the build.
type CreateResult struct {
	ExternalID string
	URL        string
}

// RawStatus is a provider's own view of a deployment: the raw status
// string exactly as returned, plus whatever address and log material the
// status endpoint exposes.
type RawStatus struct {
	Status string
	URL    string
	Logs   string
}

// Adapter translates between the canonical deployment model and one
// provider's wire protocol. Implementations never let transport errors
// escape raw; every failure is an *Error.
type Adapter interface {
	Name() Name

	// Create issues the provider's deployment-creation call(s) and
	// returns the provider-assigned external id.
	Create(ctx context.Context, config CreateConfig) (CreateResult, error)

	// Status reads the provider's current view of a deployment. It makes
	// no assumption about call cadence.
	Status(ctx context.Context, externalID string) (RawStatus, error)

	// Cancel stops a running deployment. Providers without a cancellation
	// endpoint fail with KindUnsupported.
	Cancel(ctx context.Context, externalID string) error
}

// ProviderConfig carries one provider's credential and endpoint.
type ProviderConfig struct {
	Token   string
	BaseURL string
}

// Config configures every adapter plus the per-operation timeouts the
// adapters enforce on their outbound calls.
type Config struct {
	Vercel  ProviderConfig
	Netlify ProviderConfig
	Railway ProviderConfig

	CreateTimeout time.Duration
	StatusTimeout time.Duration
	CancelTimeout time.Duration
}

const (
	defaultCreateTimeout = 30 * time.Second
	defaultStatusTimeout = 10 * time.Second
	defaultCancelTimeout = 15 * time.Second
)

func (c Config) createTimeout() time.Duration {
	if c.CreateTimeout <= 0 {
		return defaultCreateTimeout
	}
	return c.CreateTimeout
}

func (c Config) statusTimeout() time.Duration {
	if c.StatusTimeout <= 0 {
		return defaultStatusTimeout
	}
	return c.StatusTimeout
}

func (c Config) cancelTimeout() time.Duration {
	if c.CancelTimeout <= 0 {
		return defaultCancelTimeout
	}
	return c.CancelTimeout
}
