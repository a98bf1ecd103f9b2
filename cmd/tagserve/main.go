// Copyright 2025 The TagServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the tagserve binary: a tag input controller served over
MessagePack IPC, with an interactive prompt for trying pools by hand.

# Usage

Serve a tag input for an editor or UI process:

	tagserve serve --pool pool.toml

Try the same pool and settings in the terminal:

	tagserve prompt --pool pool.yaml -d

# Pools

A pool is the list of options tags are picked from. It is read from TOML, YAML
or plain text; without --pool the working directory, the executable directory
and the config directory are searched for pool.toml, pool.yaml, pool.yml and
pool.txt.

	[[options]]
	label = "Books"
	value = "books"
	selected = true

Options marked selected become the initial tags when the config sets none.

# Configuration

	[control]
	max_tags = 5
	allow_duplicates = false
	placeholder = "Add tags"
	info_message = "You can add {{.MaxTags}} tags"
	error_display_ms = 3000
	initial_values = []

	[server]
	max_limit = 64

	[cli]
	page_size = 8

The config file is created with defaults at first run. Use
"tagserve config --rebuild" to reset it.
*/
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/tagserve/internal/logger"
	"github.com/bastiangx/tagserve/internal/utils"
	"github.com/bastiangx/tagserve/pkg/config"
	"github.com/bastiangx/tagserve/pkg/control"
	"github.com/bastiangx/tagserve/pkg/pool"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const gh = "https://github.com/bastiangx/tagserve"

// Version is set at build time.
var Version = "0.1.0-beta"

var (
	cfgFile   string
	poolFile  string
	debugMode bool
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   utils.AppName,
		Short: "Tag input controller over MessagePack IPC",
		Long: `tagserve keeps the state of a tag input: the picked tags, the
suggestions for the typed text and the rejection messages.
It serves a UI process over stdin/stdout or runs an interactive prompt.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(debugMode)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to a config.toml")
	rootCmd.PersistentFlags().StringVarP(&poolFile, "pool", "p", "", "Pool file (toml, yaml or txt)")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Toggle debug mode")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	return rootCmd
}

// session is what both serve and prompt need before they build a controller.
type session struct {
	cfg        *config.Config
	configPath string
	settings   control.Settings
	pool       *pool.Memory
}

func loadSession() (*session, error) {
	cfg, configPath, err := config.LoadConfigWithPriority(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	p, err := loadPool(poolFile)
	if err != nil {
		return nil, err
	}
	if len(cfg.Control.InitialValues) == 0 {
		for _, c := range p.Selected() {
			cfg.Control.InitialValues = append(cfg.Control.InitialValues, c.Value)
		}
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	log.Debug("Session ready", "config", config.GetActiveConfigPath(configPath), "options", p.Len(), "max_tags", settings.MaxTags)
	return &session{cfg: cfg, configPath: configPath, settings: settings, pool: p}, nil
}

// loadPool reads the pool file. Without an explicit file a missing pool is
// not fatal: the input starts with no options.
func loadPool(name string) (*pool.Memory, error) {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}
	path, err := resolver.FindPoolFile(name)
	if errors.Is(err, os.ErrNotExist) && name == "" {
		log.Warn("No pool file found, starting with an empty pool", "searched", resolver.ConfigDir())
		return pool.NewMemory(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("pool file %q: %w", name, err)
	}
	p, err := pool.LoadFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded pool", "path", path, "stats", p.Stats())
	return p, nil
}

func main() {
	sigHandler()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
