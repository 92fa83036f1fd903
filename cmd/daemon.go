package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/cli"
	"github.com/copperfin/runway/internal/daemon"
	"github.com/copperfin/runway/internal/forecast"
)

var (
	flagDaemonAddr    string
	flagDaemonCron    string
	flagDaemonPIDFile string
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run a background forecast service with HTTP/SSE endpoints",
	Long: `Run a long-lived service that rebuilds every scenario's forecast on
a cron schedule and serves the latest results at /v1/forecast, with an
SSE stream at /v1/stream for dashboards.`,
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
	daemonCmd.PersistentFlags().StringVar(&flagDaemonAddr, "addr", "", "HTTP listen address (default from config)")
	daemonCmd.PersistentFlags().StringVar(&flagDaemonCron, "cron", "", "Rebuild schedule in cron syntax (default from config)")
	daemonCmd.PersistentFlags().StringVar(&flagDaemonPIDFile, "pid-file", "", "PID file path (default inside the data dir)")

	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

func daemonPIDFile(dataDir string) string {
	if flagDaemonPIDFile != "" {
		return flagDaemonPIDFile
	}
	return filepath.Join(dataDir, "runwayd.pid")
}

// rebuildFunc reopens the store every rebuild so the daemon picks up
// rows imported while it was running.
func rebuildFunc(cmd *cobra.Command) daemon.RebuildFunc {
	return func() (map[string]*forecast.Result, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		s, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		engine, err := newEngine(cfg)
		if err != nil {
			return nil, err
		}
		params, err := resolveParams(cmd, cfg)
		if err != nil {
			return nil, err
		}
		inputs, err := loadInputs(s, params)
		if err != nil {
			return nil, err
		}
		return runAllScenarios(cfg, engine, params, inputs)
	}
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Daemon.Addr
	if flagDaemonAddr != "" {
		addr = flagDaemonAddr
	}
	cronSpec := cfg.Daemon.RebuildCron
	if flagDaemonCron != "" {
		cronSpec = flagDaemonCron
	}

	pidFile := daemonPIDFile(cfg.DataDir())
	if err := ensureDaemonNotRunning(pidFile); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(pidFile), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}
	if err := writePID(pidFile, os.Getpid()); err != nil {
		return err
	}
	defer func() { _ = os.Remove(pidFile) }()

	svc := daemon.New(daemon.Config{
		Addr:     addr,
		CronSpec: cronSpec,
	}, rebuildFunc(cmd), newLogger())

	fmt.Printf("  runway daemon listening on http://%s\n", addr)
	fmt.Printf("  Rebuilding on schedule: %s\n", cronSpec)
	fmt.Printf("  Stop with: runway daemon stop\n")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runDaemonStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pidFile := daemonPIDFile(cfg.DataDir())

	pid, err := readPID(pidFile)
	if err != nil {
		fmt.Printf("  Daemon: not running (pid file not found)\n")
		return nil
	}
	if !processAlive(pid) {
		fmt.Printf("  Daemon: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := cfg.Daemon.Addr
	if flagDaemonAddr != "" {
		addr = flagDaemonAddr
	}

	fmt.Printf("  Daemon PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status")
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	if st.LastRebuildAt.IsZero() {
		fmt.Printf("  Last rebuild: pending\n")
	} else {
		fmt.Printf("  Last rebuild: %s\n", st.LastRebuildAt.Local().Format(time.RFC3339))
	}
	fmt.Printf("  Rebuild count: %d\n", st.RebuildCount)
	for _, sc := range st.Scenarios {
		runway := "beyond horizon"
		if sc.RunwayWeek != nil {
			runway = fmt.Sprintf("week %d", *sc.RunwayWeek)
		}
		fmt.Printf("  %-8s runway %s, final %s\n", sc.ScenarioID, runway, cli.FormatMoney(sc.FinalBalance))
	}
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pidFile := daemonPIDFile(cfg.DataDir())

	pid, err := readPID(pidFile)
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
			_ = os.Remove(pidFile)
			fmt.Printf("  Stopped daemon (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("daemon (pid %d) did not exit in time", pid)
}

func ensureDaemonNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
