package logic

import (
	"context"
	"fmt"
	"go.uber.org/fx"
	"os"
	"path/filepath"
	"ripple/shared"
	"runtime"
	"runtime/pprof"
	"time"
)

const profilerStartDelay = 10 * time.Second
const profilerInterval = 60 * time.Second

// IProfiler writes goroutine dumps to the configured directory while the service runs.
type IProfiler interface {
	SaveNow() (string, error)
}

type profiler struct {
	logger          shared.ILogger
	clock           shared.IClock
	profileDir      string
	profileKeepDays int
	stop            chan struct{}
}

// NewProfiler is inert when no profile_dir is configured.
func NewProfiler(cfg *shared.Config, logger shared.ILogger, clock shared.IClock, lc fx.Lifecycle) IProfiler {
	prof := profiler{
		logger:          logger,
		clock:           clock,
		profileDir:      cfg.ProfileDir,
		profileKeepDays: cfg.ProfileKeepDays,
		stop:            make(chan struct{}),
	}
	if prof.profileDir == "" {
		return &prof
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := os.MkdirAll(prof.profileDir, 0755); err != nil {
				return fmt.Errorf("failed to create profile dir %s: %w", prof.profileDir, err)
			}
			go prof.profilerLoop()
			return nil
		},
		OnStop: func(context.Context) error {
			close(prof.stop)
			return nil
		},
	})
	return &prof
}

func (prof *profiler) SaveNow() (string, error) {
	path, err := saveProfile(prof.profileDir, prof.clock.Now())
	if err != nil {
		return "", err
	}
	cutoff := prof.clock.Now().AddDate(0, 0, -prof.profileKeepDays)
	if err := purgeOld(prof.profileDir, cutoff); err != nil {
		return path, err
	}
	return path, nil
}

func saveProfile(profileDir string, now time.Time) (string, error) {
	fname := fmt.Sprintf("%v.txt", now.Format("2006-01-02!15-04-05"))
	profPath := filepath.Join(profileDir, fname)
	f, err := os.Create(profPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err = fmt.Fprintf(f, "Goroutine count: %d\n\n", runtime.NumGoroutine()); err != nil {
		return "", err
	}
	if err = pprof.Lookup("goroutine").WriteTo(f, 2); err != nil {
		return "", err
	}
	return profPath, nil
}

func purgeOld(profileDir string, cutoff time.Time) error {
	return filepath.Walk(profileDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && info.ModTime().Before(cutoff) {
			return os.Remove(path)
		}
		return nil
	})
}

func (prof *profiler) profilerLoop() {
	select {
	case <-time.After(profilerStartDelay):
	case <-prof.stop:
		return
	}
	ticker := time.NewTicker(profilerInterval)
	defer ticker.Stop()
	for {
		if _, err := prof.SaveNow(); err != nil {
			prof.logger.Warnf("Failed to save goroutine profile: %v", err)
		}
		select {
		case <-ticker.C:
		case <-prof.stop:
			return
		}
	}
}
