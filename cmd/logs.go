package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/lectern/lectern/cli"
	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/logging"
	"github.com/lectern/lectern/tui/theme"
	"github.com/lectern/lectern/util/pathutil"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show Lectern's own log output for this project",
		Long: `Shows the tool's log file for the current project. Logs are written to
.lectern/logs/ at the project root (or the path configured under logging.file
in course.yml); this command reads the most recent file there.

Examples:
  # Print the full current log
  lectern logs

  # Follow new lines as they are written
  lectern logs -f

  # Last 100 lines, raw JSON passthrough
  lectern logs --tail 100 --json
`,
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end (default: all)")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	follow, _ := cmd.Flags().GetBool("follow")
	tailLines, _ := cmd.Flags().GetInt("tail")

	logFile, err := findLogFile()
	if err != nil {
		return err
	}

	if err := printTailLines(cmd.OutOrStdout(), logFile, tailLines, opts.JSONOutput); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	t, err := tail.TailFile(logFile, tail.Config{
		Follow: true,
		ReOpen: true,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
		Logger: tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("tail %s: %w", logFile, err)
	}
	defer t.Cleanup()

	go func() {
		<-cmd.Context().Done()
		t.Stop()
	}()

	for line := range t.Lines {
		if line.Err != nil {
			return line.Err
		}
		printLogLine(cmd.OutOrStdout(), line.Text, opts.JSONOutput)
	}
	return nil
}

// findLogFile resolves the log file for the current project: an explicitly
// configured logging.file path, or the newest file under .lectern/logs/.
func findLogFile() (string, error) {
	root := ""
	cfg, err := config.LoadDefault()
	if err == nil {
		root = cfg.ProjectRoot()

		var logCfg logging.Config
		if err := cfg.UnmarshalExtension("logging", &logCfg); err == nil {
			if logCfg.File.Enabled && logCfg.File.Path != "" {
				return pathutil.Expand(logCfg.File.Path)
			}
		}
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = cwd
	}

	return findLatestLogFile(filepath.Join(root, ".lectern", "logs"))
}

// findLatestLogFile returns the most recently modified non-empty file in a
// directory, falling back to the newest file when all are empty.
func findLatestLogFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("no logs found: could not read %s: %w", dir, err)
	}

	var latest, latestNonEmpty string
	var latestMod, latestNonEmptyMod time.Time

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if latest == "" || info.ModTime().After(latestMod) {
			latest = path
			latestMod = info.ModTime()
		}
		if info.Size() > 0 && (latestNonEmpty == "" || info.ModTime().After(latestNonEmptyMod)) {
			latestNonEmpty = path
			latestNonEmptyMod = info.ModTime()
		}
	}

	if latestNonEmpty != "" {
		return latestNonEmpty, nil
	}
	if latest == "" {
		return "", fmt.Errorf("no log files found in %s", dir)
	}
	return latest, nil
}

// printTailLines prints the last n lines of a file, or all of it when n is
// negative.
func printTailLines(w io.Writer, path string, n int, jsonOutput bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if n >= 0 && n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	for _, line := range lines {
		if line != "" {
			printLogLine(w, line, jsonOutput)
		}
	}
	return nil
}

func printLogLine(w io.Writer, line string, jsonOutput bool) {
	if jsonOutput {
		printLogJSON(w, line)
	} else {
		printLogText(w, line)
	}
}

// printLogJSON emits the line as JSON, wrapping non-JSON lines so the output
// stays one JSON object per line.
func printLogJSON(w io.Writer, line string) {
	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(line), &logMap); err != nil {
		fallback := map[string]interface{}{"raw_line": line}
		data, _ := json.Marshal(fallback)
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintln(w, line)
}

// printLogText pretty-prints a structured log line, passing through lines
// that are not JSON.
func printLogText(w io.Writer, line string) {
	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(line), &logMap); err != nil {
		fmt.Fprintln(w, line)
		return
	}

	ts, _ := logMap["time"].(string)
	level, _ := logMap["level"].(string)
	msg, _ := logMap["msg"].(string)
	component, _ := logMap["component"].(string)

	parsedTime, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		parsedTime, _ = time.Parse(time.RFC3339, ts)
	}
	timeStr := parsedTime.Format("15:04:05")

	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		levelStyle = theme.DefaultTheme.Error
	case "warning":
		levelStyle = theme.DefaultTheme.Warning
	case "info":
		levelStyle = theme.DefaultTheme.Info
	default:
		levelStyle = theme.DefaultTheme.Muted
	}
	levelStr := levelStyle.Render(strings.ToUpper(level))

	var sortedKeys []string
	for k := range logMap {
		if k != "time" && k != "level" && k != "msg" && k != "component" {
			sortedKeys = append(sortedKeys, k)
		}
	}
	sort.Strings(sortedKeys)

	var otherFields []string
	for _, k := range sortedKeys {
		otherFields = append(otherFields, fmt.Sprintf("%s=%v", theme.DefaultTheme.Muted.Render(k), logMap[k]))
	}

	fmt.Fprintf(w, "%s %s %s [%s] %s\n",
		timeStr,
		levelStr,
		msg,
		theme.DefaultTheme.Muted.Render(component),
		strings.Join(otherFields, " "),
	)
}
