package main

import (
	"fmt"

	"github.com/bastiangx/tagserve/pkg/config"
	"github.com/spf13/cobra"
)

var rebuildConfig bool

func init() {
	configCmd.Flags().BoolVar(&rebuildConfig, "rebuild", false, "Overwrite the default config.toml with defaults")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or reset the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rebuildConfig {
			path, err := config.RebuildConfigFile()
			if err != nil {
				return fmt.Errorf("rebuild config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rebuilt", path)
			return nil
		}
		cfg, path, err := config.LoadConfigWithPriority(cfgFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Config:", config.GetActiveConfigPath(path))
		fmt.Fprintf(out, "max_tags=%d allow_duplicates=%t max_limit=%d page_size=%d\n",
			cfg.Control.MaxTags, cfg.Control.AllowDuplicates, cfg.Server.MaxLimit, cfg.CLI.PageSize)
		return nil
	},
}
