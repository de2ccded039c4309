//go:build windows

package procinfo_windows

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"winpeek/procinfo"
)

// Config carries the diagnostic toggles read from WINPEEK_* environment
// variables when a Querier is created.
type Config struct {
	// SelfCheck cross-validates every liveness decision against a fresh
	// snapshot. Meant for test runs; a pid dying between the decision and
	// the validation reads as an inconsistency.
	SelfCheck bool `env:"WINPEEK_SELFCHECK" envDefault:"false"`
}

func configFromEnv() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		// a malformed toggle never breaks queries
		return Config{}
	}
	return cfg
}

// verifyLiveness cross-checks a terminal liveness decision against snapshot
// membership. A disagreement is reported, never silently repaired.
func (q *Querier) verifyLiveness(pid int, lv procinfo.Liveness) error {
	in, err := q.pidInPids(uint32(pid))
	if err != nil {
		return err
	}
	if in != (lv == procinfo.LivenessRunning) {
		q.log.Error(fmt.Sprintf("self-check: pid %d decided %s, snapshot membership is %v", pid, lv, in))
		return fmt.Errorf("pid %d decided %s, snapshot disagrees: %w", pid, lv, procinfo.ErrInternalInconsistency)
	}
	return nil
}
