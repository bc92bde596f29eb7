package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/daemon"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var daemonFlags struct {
	addr         string
	interval     time.Duration
	pidFile      string
	logFile      string
	eventsBuffer int
	detach       bool
	child        bool
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Serve the latest report over HTTP and stream workspace changes",
	Long: `Run a local service that polls the workspace and serves:

  GET /healthz      liveness
  GET /metrics      Prometheus gauges for the current report
  GET /v1/status    poll state and a compact summary
  GET /v1/report    snapshot plus full metrics report
  GET /v1/events    recent change events
  GET /v1/stream    server-sent events`,
	RunE: runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and API status",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	pf := daemonCmd.PersistentFlags()
	pf.StringVar(&daemonFlags.addr, "addr", "", "HTTP listen address (default from config)")
	pf.DurationVar(&daemonFlags.interval, "interval", 0, "Polling interval (default from config)")
	pf.StringVar(&daemonFlags.pidFile, "pid-file", filepath.Join(config.DataDir(), "saastrackd.pid"), "PID file path")
	pf.StringVar(&daemonFlags.logFile, "log-file", filepath.Join(config.DataDir(), "saastrackd.log"), "Log file path for detached mode")
	pf.IntVar(&daemonFlags.eventsBuffer, "events-buffer", 0, "Max in-memory events retained (default from config)")

	daemonCmd.Flags().BoolVar(&daemonFlags.detach, "detach", false, "Run daemon as a background process")
	daemonCmd.Flags().BoolVar(&daemonFlags.child, "child", false, "Internal: mark detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd, daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

// daemonConfig merges the daemon flags over the [daemon] config section.
func daemonConfig() daemon.Config {
	cfg := daemon.Config{
		DBPath:       appCfg.DBPath(),
		Addr:         appCfg.Daemon.Addr,
		Interval:     time.Duration(appCfg.Daemon.IntervalSec) * time.Second,
		EventsBuffer: appCfg.Daemon.EventsBuffer,
		Heuristics:   appCfg.Heuristics(),
	}
	if daemonFlags.addr != "" {
		cfg.Addr = daemonFlags.addr
	}
	if daemonFlags.interval > 0 {
		cfg.Interval = daemonFlags.interval
	}
	if daemonFlags.eventsBuffer > 0 {
		cfg.EventsBuffer = daemonFlags.eventsBuffer
	}
	return cfg
}

func runDaemon(_ *cobra.Command, _ []string) error {
	if daemonFlags.detach && daemonFlags.child {
		return errors.New("invalid daemon launch mode")
	}
	pf := pidFile(daemonFlags.pidFile)
	if err := pf.claim(); err != nil {
		return err
	}
	if daemonFlags.detach {
		return startDetached(daemonConfig())
	}
	return runForeground(pf, daemonConfig())
}

func startDetached(cfg daemon.Config) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	args := append(withoutDetach(os.Args[1:]), "--child")

	if err := os.MkdirAll(filepath.Dir(daemonFlags.logFile), 0o750); err != nil {
		return fmt.Errorf("create daemon log directory: %w", err)
	}
	//nolint:gosec // daemon log path is configured by the local user
	logf, err := os.OpenFile(daemonFlags.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, args...) //nolint:gosec // re-executes the current binary
	child.Stdout = logf
	child.Stderr = logf
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	fmt.Print(cli.RenderKeyValues("Started daemon", [][2]string{
		{"PID", fmt.Sprint(child.Process.Pid)},
		{"API", "http://" + cfg.Addr + "/v1/status"},
		{"PID file", daemonFlags.pidFile},
		{"Log", daemonFlags.logFile},
	}))
	return nil
}

func runForeground(pf pidFile, cfg daemon.Config) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	if err := pf.write(daemonState{
		PID:       os.Getpid(),
		Addr:      cfg.Addr,
		StartedAt: time.Now(),
		DBPath:    cfg.DBPath,
	}); err != nil {
		return err
	}
	defer pf.remove()

	svc := daemon.New(cfg, ws, componentLogger("daemon"))

	if !flagQuiet {
		fmt.Printf("  saastrack daemon listening on http://%s\n", cfg.Addr)
		fmt.Printf("  Polling %s every %s\n", cfg.DBPath, cfg.Interval)
		fmt.Printf("  Stop with: saastrack daemon stop --pid-file %s\n", string(pf))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runDaemonStatus(cmd *cobra.Command, _ []string) error {
	pf := pidFile(daemonFlags.pidFile)
	pid, err := pf.pid()
	if err != nil {
		fmt.Println("  Daemon: not running (pid file not found)")
		return nil
	}
	if !processAlive(pid) {
		fmt.Printf("  Daemon: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := daemonConfig().Addr
	if st, err := pf.state(); err == nil && st.Addr != "" {
		addr = st.Addr
	}

	st, err := fetchStatus(cmd.Context(), addr)
	if err != nil {
		fmt.Print(cli.RenderKeyValues("Daemon", [][2]string{
			{"PID", fmt.Sprint(pid)},
			{"Address", "http://" + addr},
			{"API", cli.Bad(err.Error())},
		}))
		return nil
	}

	lastPoll := "pending"
	if !st.LastPollAt.IsZero() {
		lastPoll = humanize.Time(st.LastPollAt)
	}
	rows := [][2]string{
		{"PID", fmt.Sprint(pid)},
		{"Address", "http://" + addr},
		{"Up since", humanize.Time(st.StartedAt)},
		{"Last poll", lastPoll},
		{"Polls", humanize.Comma(st.PollCount)},
		{"Workspace", st.DBPath},
		{"Subscribers", fmt.Sprint(st.SubscriberCount)},
	}
	if st.LastError != "" {
		rows = append(rows, [2]string{"Last error", cli.Bad(st.LastError)})
	}
	fmt.Print(cli.RenderKeyValues("Daemon", rows))
	fmt.Println()

	sum := st.Summary
	fmt.Print(cli.RenderKeyValues("Latest report", [][2]string{
		{"Business", sum.Name},
		{"Revision", sum.Revision},
		{"Users", fmt.Sprintf("%s / %s (%s)", cli.FormatNumber(int64(sum.CurrentUsers)), cli.FormatNumber(int64(sum.GoalUsers)), cli.FormatPercent(sum.UserProgress))},
		{"MRR", cli.FormatCurrency(sum.MRR)},
		{"ARR", cli.FormatCurrency(sum.ARR)},
		{"LTV:CAC", cli.FormatRatio(sum.LTVCACRatio)},
		{"NRR", cli.FormatPercent(sum.NRR)},
		{"Growth", string(sum.GrowthStatus)},
		{"Churn", string(sum.ChurnStatus)},
	}))
	return nil
}

func fetchStatus(ctx context.Context, addr string) (daemon.Status, error) {
	var st daemon.Status

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/status", nil)
	if err != nil {
		return st, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return st, fmt.Errorf("unreachable (%w)", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("malformed response (%w)", err)
	}
	return st, nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	pf := pidFile(daemonFlags.pidFile)
	pid, err := pf.pid()
	if err != nil {
		return errors.New("daemon is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal daemon process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			pf.remove()
			fmt.Printf("  Stopped daemon (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}
	return fmt.Errorf("daemon (pid %d) did not exit in time", pid)
}

func withoutDetach(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}
