package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// daemonState is written next to the pid file so status can find the API.
type daemonState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DBPath    string    `json:"db_path"`
}

// pidFile is the path of a daemon pid file. Its state lives at path + ".json".
type pidFile string

func (p pidFile) statePath() string { return string(p) + ".json" }

func (p pidFile) pid() (int, error) {
	st, err := p.state()
	if err != nil {
		return 0, err
	}
	if st.PID <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", p.statePath())
	}
	return st.PID, nil
}

func (p pidFile) state() (daemonState, error) {
	var st daemonState
	//nolint:gosec // daemon pid path is configured by the local user
	data, err := os.ReadFile(p.statePath())
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("parsing %s: %w", p.statePath(), err)
	}
	return st, nil
}

// claim fails if a live daemon owns the pid file and clears a stale one.
func (p pidFile) claim() error {
	pid, err := p.pid()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		p.remove()
		return nil
	}
	if processAlive(pid) {
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	p.remove()
	return nil
}

func (p pidFile) write(st daemonState) error {
	if err := os.MkdirAll(filepath.Dir(string(p)), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}
	if err := os.WriteFile(string(p), fmt.Appendf(nil, "%d\n", st.PID), 0o600); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.statePath(), append(data, '\n'), 0o600)
}

func (p pidFile) remove() {
	_ = os.Remove(string(p))
	_ = os.Remove(p.statePath())
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
