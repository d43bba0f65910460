// Package window implements the windowing capability on top of the system
// browser. Where a chromium-family browser is available, the authorization
// page opens as a dedicated app-mode window of fixed size whose process
// lifetime tracks the window, so closure is observable. Otherwise the
// platform's default browser is used and closure cannot be observed; the
// message path is then the only completion signal.
package window

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
	"github.com/pulseboard/pulseboard-cli/internal/logger"
)

// Ensure Browser implements the interface.
var _ driven.Windowing = (*Browser)(nil)

// Authorization window dimensions.
const (
	windowWidth  = 600
	windowHeight = 700
)

// appModeBrowsers are tried in order for an observable app-mode window.
var appModeBrowsers = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"brave-browser",
	"microsoft-edge",
}

// Browser opens authorization windows in the system browser.
type Browser struct {
	lookPath   func(string) (string, error)
	getRuntime func() string
}

// NewBrowser creates the default browser windowing.
func NewBrowser() *Browser {
	return &Browser{
		lookPath:   exec.LookPath,
		getRuntime: func() string { return runtime.GOOS },
	}
}

// Open opens the URL in a new browsing context. A nil window with a nil
// error means the platform refused to open one.
func (b *Browser) Open(url string) (driven.AuthWindow, error) {
	for _, name := range appModeBrowsers {
		path, err := b.lookPath(name)
		if err != nil {
			continue
		}
		// App mode: no browser chrome, fixed size, own process.
		cmd := exec.Command(path,
			"--app="+url,
			fmt.Sprintf("--window-size=%d,%d", windowWidth, windowHeight),
			"--new-window",
		)
		if err := cmd.Start(); err != nil {
			logger.Debug("window: %s failed to start: %v", name, err)
			continue
		}
		win := &processWindow{cmd: cmd}
		go win.wait()
		return win, nil
	}

	// Default browser fallback: closure is unobservable there.
	if err := b.openDefault(url); err != nil {
		return nil, err
	}
	return &unobservedWindow{}, nil
}

// openDefault opens the URL in the platform's default browser.
func (b *Browser) openDefault(url string) error {
	var cmd *exec.Cmd
	switch b.getRuntime() {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", b.getRuntime())
	}
	return cmd.Start()
}

// processWindow is an app-mode window whose closure is the process exit.
type processWindow struct {
	cmd *exec.Cmd

	mu     sync.Mutex
	exited bool
}

func (w *processWindow) wait() {
	_ = w.cmd.Wait()
	w.mu.Lock()
	w.exited = true
	w.mu.Unlock()
}

// Closed reports whether the window process has exited.
func (w *processWindow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.exited
}

// Close terminates the window process. Best effort.
func (w *processWindow) Close() error {
	if w.cmd.Process == nil {
		return nil
	}
	return w.cmd.Process.Kill()
}

// unobservedWindow is a tab in the default browser: never observably closed.
type unobservedWindow struct{}

func (*unobservedWindow) Closed() bool { return false }
func (*unobservedWindow) Close() error { return nil }
