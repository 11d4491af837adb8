// File: cmd/doctor.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/browsertap/internal/endpoint"
	"github.com/xkilldash9x/browsertap/internal/observability"
)

// newDoctorCmd creates and configures the `doctor` command.
func newDoctorCmd() *cobra.Command {
	var wait time.Duration

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Probe the debugging endpoint and report its health",
		Long: `Checks whether a Chromium debugging endpoint answers at the configured
address, reports its version information, and lists the page targets it
exposes. With --wait the probe polls until the endpoint answers or the wait
window expires, which distinguishes "no browser listening" from a browser
that is still starting up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			settings, err := settingsFromContext(cmd.Context())
			if err != nil {
				return err
			}
			client := endpoint.NewClient(settings.BrowserConfig().EndpointURL(), logger)
			return runDoctor(cmd.Context(), client, wait, cmd.OutOrStdout())
		},
	}

	doctorCmd.Flags().DurationVar(&wait, "wait", 0, "poll the endpoint until it answers or this duration passes")
	return doctorCmd
}

// runDoctor contains the core, testable logic for the endpoint probe.
func runDoctor(ctx context.Context, client *endpoint.Client, wait time.Duration, out io.Writer) error {
	if wait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		defer cancel()
		if err := client.WaitReady(waitCtx, 0); err != nil {
			return err
		}
	}

	version, err := client.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "endpoint:  %s\n", client.BaseURL())
	fmt.Fprintf(out, "browser:   %s\n", version.Browser)
	fmt.Fprintf(out, "protocol:  %s\n", version.ProtocolVersion)
	fmt.Fprintf(out, "webkit:    %s\n", version.WebKitVersion)
	fmt.Fprintf(out, "v8:        %s\n", version.V8Version)

	pages, err := client.Pages(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "pages:     %d\n", len(pages))
	for _, p := range pages {
		fmt.Fprintf(out, "  - %s", p.URL)
		if p.Title != "" {
			fmt.Fprintf(out, " (%s)", p.Title)
		}
		fmt.Fprintln(out)
	}
	return nil
}
