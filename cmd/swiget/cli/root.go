// Package cli implements the swiget command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skyforge/swiget"
	"github.com/skyforge/swiget/cmd/swiget/cli/config"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "swiget <specifier>",
	Short: "Resolve a SWI location specifier to a local path",
	Long: `Swiget resolves where a software image archive (SWI) lives -- an HTTP/FTP
server, a secure-shell host, a TFTP server, an NFS export, a block device
or partition label, or a plain local path -- and prints the local
filesystem path of the image.

The symbolic selector :latest picks the most recently built archive in a
directory, ranked by metadata embedded in the archives.

Examples:
  swiget http://server/images/onl.swi
  swiget nfs://10.0.0.1/export/images/onl.swi
  swiget /dev/sda1:images/onl.swi
  swiget ONL-IMAGES:latest`,
	Args:          cobra.ExactArgs(1),
	RunE:          runResolve,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
	rootCmd.Flags().String("progress", "auto", "Progress display: auto, tty, or plain")
	rootCmd.Flags().String("registry", "", "Mount registry file (default /etc/swiget/mounts.yml)")
	rootCmd.Flags().String("dest-dir", "", "Permanent mountpoint for fresh device mounts")
	//nolint:errcheck // flags exist, binding cannot fail
	viper.BindPFlag("progress", rootCmd.Flags().Lookup("progress"))
	//nolint:errcheck // flags exist, binding cannot fail
	viper.BindPFlag("registry", rootCmd.Flags().Lookup("registry"))
	//nolint:errcheck // flags exist, binding cannot fail
	viper.BindPFlag("dest_dir", rootCmd.Flags().Lookup("dest-dir"))

	cobra.OnInitialize(config.Init)
	rootCmd.Version = version
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

func runResolve(_ *cobra.Command, args []string) error {
	specifier := args[0]
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := []swiget.Option{
		swiget.WithLogger(logger),
	}
	if cfg.Registry != "" {
		opts = append(opts, swiget.WithRegistryPath(cfg.Registry))
	}
	if cfg.DestDir != "" {
		opts = append(opts, swiget.WithDestDir(cfg.DestDir))
	}
	callback, finish := newDownloadProgress()
	if callback != nil {
		opts = append(opts, swiget.WithProgress(callback))
	}

	resolver, err := swiget.New(opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	path, err := resolver.Resolve(ctx, specifier)
	finish()
	if err != nil {
		return err
	}

	if fi, statErr := os.Stat(path); statErr == nil {
		logger.Debug("resolved image", "path", path, "size", humanize.Bytes(uint64(fi.Size())))
	}

	// The resolved path is the only thing written to standard output.
	fmt.Println(path)
	return nil
}

// newLogger returns the resolver logger: stderr text output at error
// level, debug level with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// formatError converts swiget errors to user-friendly messages.
func formatError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, swiget.ErrInvalidSpecifier):
		return fmt.Sprintf("Error: %v", err)
	case errors.Is(err, swiget.ErrNotFound):
		return fmt.Sprintf("Error: not found: %v", err)
	case errors.Is(err, swiget.ErrMissingArchive):
		return fmt.Sprintf("Error: missing SWI: %v", err)
	case errors.Is(err, swiget.ErrTransport):
		return fmt.Sprintf("Error: transport failure: %v", err)
	case errors.Is(err, context.Canceled):
		return "Error: operation canceled"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
