package dispatch

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

// SystemClipboard is the host clipboard capability.
type SystemClipboard struct{}

// NewSystemClipboard returns the host clipboard.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// Write places text on the system clipboard.
func (*SystemClipboard) Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: %w", beacon.ErrCapabilityUnavailable)
	}

	return clipboard.WriteAll(text)
}

// ExecOpener opens URLs through the platform's default handler:
//   - Linux:   `xdg-open`
//   - macOS:   `open`
//   - Windows: `rundll32 url.dll,FileProtocolHandler`
//
// The command is started asynchronously; the hand-off is the whole contract.
type ExecOpener struct{}

// NewExecOpener returns the exec-based opener.
func NewExecOpener() *ExecOpener {
	return &ExecOpener{}
}

// Open launches the URL with the per-OS opener command.
func (*ExecOpener) Open(ctx context.Context, url string) error {
	osName := strings.ToLower(runtime.GOOS)

	switch {
	case strings.Contains(osName, "linux"):
		return exec.CommandContext(ctx, "xdg-open", url).Start()
	case strings.Contains(osName, "darwin"):
		return exec.CommandContext(ctx, "open", url).Start()
	case strings.Contains(osName, "windows"):
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("no URL opener for %s: %w", runtime.GOOS, beacon.ErrCapabilityUnavailable)
	}
}
