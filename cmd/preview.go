package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/fincalc/internal/preview"
)

func init() {
	register(newPreviewCmd)
}

func newPreviewCmd() *cobra.Command {
	var (
		port     int
		attempts int
		noOpen   bool
	)

	c := &cobra.Command{
		Use:   "preview [dir]",
		Short: "Serve a directory on localhost and open it in the browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if attempts < 1 {
				return eris.Wrapf(preview.ErrInvalidAttempts, "--attempts %d", attempts)
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			info, err := os.Stat(dir)
			if err != nil {
				return eris.Wrap(err, "preview")
			}
			if !info.IsDir() {
				return eris.Errorf("preview: %s is not a directory", dir)
			}

			srv := preview.New(preview.Config{
				Dir:         dir,
				StartPort:   port,
				MaxAttempts: attempts,
				OpenBrowser: !noOpen,
			})

			ln, err := preview.Listen(preview.DefaultHost, port, attempts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			url := preview.URL(ln.Addr())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  Serving %s at %s\n", dir, url)
			fmt.Fprintln(out, "  Press Ctrl+C to stop.")
			zap.L().Info("preview started", zap.String("dir", dir), zap.String("url", url))

			if err := srv.Run(ctx, ln); err != nil {
				return err
			}
			fmt.Fprintln(out, "\n  Stopped.")
			return nil
		},
	}

	c.Flags().IntVarP(&port, "port", "p", preview.DefaultStartPort, "First port to try")
	c.Flags().IntVar(&attempts, "attempts", preview.DefaultMaxAttempts, "How many ports to try")
	c.Flags().BoolVar(&noOpen, "no-open", false, "Do not open the browser")
	return c
}
