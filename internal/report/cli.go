package report

import (
	"fmt"
	"strings"
)

// ANSI color codes.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiDim   = "\033[2m"
)

// CLIFormatter outputs a Result as a human-readable CLI report.
type CLIFormatter struct {
	Color bool
}

// NewCLIFormatter creates a new CLIFormatter.
func NewCLIFormatter(color bool) *CLIFormatter {
	return &CLIFormatter{Color: color}
}

func (f *CLIFormatter) Format(r Result) string {
	var b strings.Builder

	icon := f.colorize("✅", ansiGreen)
	status := "ready"
	if r.Error != "" {
		icon = f.colorize("❌", ansiRed)
		status = "failed"
	}

	b.WriteString(fmt.Sprintf("\n%s %s — %s in %dms\n", icon, f.colorize(r.Module, ansiBold), status, r.DurationMs))
	if r.ContainerID != "" {
		b.WriteString(fmt.Sprintf("  container %s %s\n", r.ContainerID, f.colorize("("+r.Image+")", ansiDim)))
	}
	for _, p := range r.Ports {
		b.WriteString(fmt.Sprintf("  port %d -> %d\n", p.ContainerPort, p.HostPort))
	}
	if r.Error != "" {
		b.WriteString(fmt.Sprintf("  %s\n", f.colorize(r.Error, ansiRed)))
	}
	if r.Stopped {
		b.WriteString("  stopped\n")
	}
	return b.String()
}

func (f *CLIFormatter) colorize(s, code string) string {
	if !f.Color {
		return s
	}
	return code + s + ansiReset
}
