package main

import (
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"ripple/client"
	"ripple/dto"
	"ripple/tui/feed"
	"strings"
)

type rootOptions struct {
	configPath string
	serverUrl  string
	apiKey     string
	viewerId   string
	timeZone   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "rippletui",
		Short:        "Read and ripple on your gratitude timeline",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			c := client.New(cfg)
			p := tea.NewProgram(appModel{feed: feed.New(c, dto.AuthorView{Id: cfg.ViewerId})}, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "client config file (default ~/.config/ripple/client.yaml)")
	cmd.PersistentFlags().StringVar(&opts.serverUrl, "server", "", "ripple server URL")
	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "API key")
	cmd.PersistentFlags().StringVar(&opts.viewerId, "viewer", "", "account id to act as")
	cmd.PersistentFlags().StringVar(&opts.timeZone, "tz", "", "IANA time zone for drop slots")

	cmd.AddCommand(newDropCommand(opts))
	return cmd
}

func newDropCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <text>",
		Short: "Offer a drop in the current slot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			drop, err := client.New(cfg).CreateDrop(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Offered in the %s slot of %s\n", drop.Slot.Period, drop.Slot.Date)
			return nil
		},
	}
}

// resolve loads the YAML config; flags that were set win over file values.
func (opts *rootOptions) resolve() (client.Config, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = client.DefaultConfigPath(); err != nil {
			return client.Config{}, err
		}
	}
	cfg, err := client.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if opts.serverUrl != "" {
		cfg.ServerUrl = opts.serverUrl
	}
	if opts.apiKey != "" {
		cfg.ApiKey = opts.apiKey
	}
	if opts.viewerId != "" {
		cfg.ViewerId = opts.viewerId
	}
	if opts.timeZone != "" {
		cfg.TimeZone = opts.timeZone
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
