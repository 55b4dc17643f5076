package room

import (
	"github.com/caarlos0/env/v10"
)

// Route is where a creation request is sent.
type Route int

const (
	RouteLocal Route = iota
	RouteRemote
)

func (r Route) String() string {
	if r == RouteRemote {
		return "remote"
	}
	return "local"
}

// Flags are the rollout switches for the remote backend. They are re-read on
// every request so operators can flip them without a restart.
type Flags struct {
	UseRemote     bool `env:"USE_BACKEND_FOR_ROOM_CREATION" envDefault:"false"`
	ForceLocal    bool `env:"FORCE_FIREBASE_FALLBACK" envDefault:"false"`
	DisableRemote bool `env:"DISABLE_BACKEND_COMPLETELY" envDefault:"false"`
}

// FlagSource supplies the current flags.
type FlagSource interface {
	Flags() (Flags, error)
}

// EnvFlagSource parses flags from the process environment, or from
// Environment when set.
type EnvFlagSource struct {
	Environment map[string]string
}

func (s EnvFlagSource) Flags() (Flags, error) {
	var f Flags
	err := env.ParseWithOptions(&f, env.Options{Environment: s.Environment})
	return f, err
}

// StaticFlags always returns the same flags.
type StaticFlags Flags

func (s StaticFlags) Flags() (Flags, error) {
	return Flags(s), nil
}

// RoutingPolicy maps flags to a route.
type RoutingPolicy func(Flags) Route

// DefaultRoutingPolicy sends traffic remote only when it is enabled and
// neither kill switch is set.
func DefaultRoutingPolicy(f Flags) Route {
	if f.UseRemote && !f.ForceLocal && !f.DisableRemote {
		return RouteRemote
	}
	return RouteLocal
}
