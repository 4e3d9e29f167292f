package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdantdata/doltgo/config"
	"github.com/verdantdata/doltgo/notify"
	"github.com/verdantdata/doltgo/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the doltgo version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.Summary())
		return nil
	},
}

var (
	announceRef     string
	announceDryRun  bool
	announceMessage string
)

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Announce a tagged release to the configured webhooks",
	Long: `Announce a release for the current tag ref.

The ref comes from --ref or the GITHUB_REF environment variable and
must be a tag ref (refs/tags/<version>). The extracted version is
posted to the configured Discord and Slack webhooks.

Example:
  GITHUB_REF=refs/tags/0.3.1 doltgo announce`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := announceRef
		if ref == "" {
			ref = os.Getenv("GITHUB_REF")
		}
		if ref == "" {
			return fmt.Errorf("no ref: pass --ref or set GITHUB_REF")
		}
		if !version.IsTagRef(ref) {
			return fmt.Errorf("ref %q is not a tag ref", ref)
		}
		released := version.FromRef(ref)

		event := notify.ReleaseEvent(released)
		if announceMessage != "" {
			event.Message = announceMessage
		}

		if announceDryRun {
			fmt.Printf("would announce version %s\n", released)
			return nil
		}

		cfg := resolveConfig()
		if cfg.Get(config.KeyDiscordWebhook) == "" && cfg.Get(config.KeySlackWebhook) == "" {
			return fmt.Errorf("no webhooks configured: set %s or %s",
				config.KeyDiscordWebhook, config.KeySlackWebhook)
		}
		if err := notifierFromConfig().Notify(cmd.Context(), event); err != nil {
			return err
		}
		fmt.Printf("announced version %s\n", released)
		return nil
	},
}

func init() {
	announceCmd.Flags().StringVar(&announceRef, "ref", "", "Tag ref to announce (defaults to GITHUB_REF)")
	announceCmd.Flags().BoolVar(&announceDryRun, "dry-run", false, "Print the version without posting")
	announceCmd.Flags().StringVar(&announceMessage, "message", "", "Override the announcement message")
}
