package cli

import (
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/skyforge/swiget"
)

// progressMode returns the configured progress mode: "auto", "tty", or "plain".
func progressMode() string {
	mode := viper.GetString("progress")
	switch mode {
	case "auto", "tty", "plain":
		return mode
	default:
		return "auto"
	}
}

// shouldShowProgress returns true if download progress should be displayed.
func shouldShowProgress() bool {
	mode := progressMode()

	// Plain mode disables progress
	if mode == "plain" {
		return false
	}

	// TTY mode forces progress regardless of terminal detection
	if mode == "tty" {
		return true
	}

	// Auto mode: show progress only if connected to a TTY
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// newProgressBar creates a byte progress bar refreshing at most four
// times a second. A total of -1 renders a spinner.
func newProgressBar(total int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(250*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSpinnerType(14),
	)
}

// newDownloadProgress creates a progress callback for downloads.
// Returns the callback and a finish function to call when done.
// Returns nil callback if progress should not be shown.
func newDownloadProgress() (callback swiget.ProgressFunc, finish func()) {
	if !shouldShowProgress() {
		return nil, func() {}
	}

	var bar *progressbar.ProgressBar
	var once sync.Once

	callback = func(transferred, total int64) {
		once.Do(func() {
			bar = newProgressBar(total)
		})
		if bar != nil {
			//nolint:errcheck // progress bar errors are not critical
			bar.Set64(transferred)
		}
	}

	finish = func() {
		if bar != nil {
			//nolint:errcheck // progress bar errors are not critical
			bar.Finish()
		}
	}

	return callback, finish
}
