package repo

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

type Mode int

const (
	ModeLocal Mode = iota
	ModeRemote
)

func (m Mode) String() string {
	if m == ModeRemote {
		return "remote"
	}
	return "local"
}

// Probe reports whether remote credentials/connectivity are usable.
type Probe func(ctx context.Context) error

const probeTimeout = 3 * time.Second

// DetectMode resolves the storage mode once at startup. An explicit
// STORAGE_MODE setting wins; otherwise the credential probe decides.
// Detection never fails the process: any probe error falls back to local
// mode with the reason logged.
func DetectMode(ctx context.Context, explicit string, probe Probe, log *slog.Logger) Mode {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case "local":
		log.Info("storage mode forced by configuration", "mode", ModeLocal)
		return ModeLocal
	case "remote":
		log.Info("storage mode forced by configuration", "mode", ModeRemote)
		return ModeRemote
	}

	if probe == nil {
		log.Info("no credential probe configured, using local mode")
		return ModeLocal
	}

	pctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := probe(pctx); err != nil {
		log.Warn("remote credentials unavailable, falling back to local mode", "reason", err)
		return ModeLocal
	}

	log.Info("remote credentials detected", "mode", ModeRemote)
	return ModeRemote
}
