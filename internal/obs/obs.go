// Package obs provides the thin logging seam the rest of this module logs
// through, wrapping github.com/hashicorp/go-hclog the way the style
// compiler and reference builder need it: leveled, structured key-value
// pairs, never a source of panics.
package obs

import "github.com/hashicorp/go-hclog"

// Logger is the subset of hclog.Logger this module actually calls. Keeping
// it narrow means callers needing a test double can implement it without
// pulling in hclog's full surface.
type Logger interface {
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Named(name string) Logger
}

type hclogAdapter struct {
	hclog.Logger
}

func (h hclogAdapter) Named(name string) Logger {
	return hclogAdapter{h.Logger.Named(name)}
}

// New wraps a freshly constructed hclog.Logger for use as a Logger.
func New(name string) Logger {
	return hclogAdapter{hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.Warn,
	})}
}

// NewNull returns a Logger that discards everything, for tests and for
// callers (e.g. disambcache.New) that don't want to require a logger.
func NewNull() Logger {
	return hclogAdapter{hclog.NewNullLogger()}
}
