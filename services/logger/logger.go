// Package logsvc provides the core.Logger implementations.
package logsvc

import "github.com/AhmedMostafa129/Mahd/core"

// New returns the logger for conf: zap, with rollbar reporting in front when a token is configured.
func New(conf *core.Config) core.Logger {
	base := NewZapLogger(conf)
	if conf.RollbarToken == "" || conf.TestMode {
		return base
	}

	rb := NewRollbarLogger(base, conf)
	rb.Enable(conf.IsProduction())
	return rb
}
