package instance

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// Lock is a PID-file single-instance guard. The stale-check-then-recreate
// sequence is not atomic against a concurrent second instance; a
// single-operator deployment never races itself, so this stays simple.
type Lock struct {
	path   string
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) *Lock {
	return &Lock{
		path:   path,
		logger: logger,
	}
}

// Acquire tries to create the lock file exclusively. A file left behind by a
// dead process is removed and the attempt repeated once.
func (l *Lock) Acquire() (bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d", os.Getpid())
			if cerr := f.Close(); werr == nil && cerr != nil {
				werr = cerr
			}
			if werr != nil {
				os.Remove(l.path)
				return false, fmt.Errorf("writing lock file: %w", werr)
			}
			return true, nil
		}
		if !os.IsExist(err) {
			return false, fmt.Errorf("creating lock file: %w", err)
		}

		pid, rerr := l.readPID()
		if rerr == nil && processAlive(pid) {
			l.logger.Info("another instance is running", zap.Int("pid", pid))
			return false, nil
		}

		l.logger.Info("removing stale lock file", zap.Int("pid", pid))
		if rmErr := os.Remove(l.path); rmErr != nil && !os.IsNotExist(rmErr) {
			return false, fmt.Errorf("removing stale lock file: %w", rmErr)
		}
	}
	return false, nil
}

// Release removes the lock file. Safe to call when the lock was never held.
func (l *Lock) Release() {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		l.logger.Error("releasing instance lock", zap.Error(err))
	}
}

func (l *Lock) readPID() (int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// processAlive probes a PID with signal 0. EPERM means the process exists but
// belongs to another user.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || err == syscall.EPERM
}
