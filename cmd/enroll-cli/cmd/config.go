package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/enroll/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective server configuration (secrets redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "addr:                 %s\n", cfg.Addr)
			fmt.Fprintf(out, "app base url:         %s\n", cfg.AppBaseURL)
			fmt.Fprintf(out, "log:                  %s/%s\n", cfg.LogFormat, cfg.LogLevel)
			fmt.Fprintf(out, "account api:          %s %s (timeout %s)\n", cfg.AccountAPIProvider, cfg.AccountAPIBaseURL, cfg.AccountAPITimeout)
			fmt.Fprintf(out, "wizard ttl:           %s (swept every %s)\n", cfg.WizardTTL, cfg.WizardSweepInterval)
			fmt.Fprintf(out, "rate limit (per min): %g\n", cfg.RateLimitPerMin)
			fmt.Fprintf(out, "secure cookies:       %t\n", cfg.SecureCookies)
			fmt.Fprintf(out, "session secret:       %s\n", redact(cfg.SessionSecret))
			return nil
		},
	}
}

func redact(s string) string {
	if s == "" {
		return "(unset)"
	}
	return "(set)"
}
