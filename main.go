// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cybrota/avlkit/avl"
)

const asciiLogo = `
 █████╗ ██╗   ██╗██╗     ██╗  ██╗██╗████████╗
██╔══██╗██║   ██║██║     ██║ ██╔╝██║╚══██╔══╝
███████║██║   ██║██║     █████╔╝ ██║   ██║
██╔══██║╚██╗ ██╔╝██║     ██╔═██╗ ██║   ██║
██║  ██║ ╚████╔╝ ███████╗██║  ██╗██║   ██║
╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═╝  ╚═╝╚═╝   ╚═╝
Self-balancing tree scripts, checked at every step [Version: %s%s%s]

`

// app carries what every command needs once the config is loaded
type app struct {
	configPath string
	config     *Config
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	path, err := getConfigPath(a.configPath)
	if err != nil {
		// no home directory, run on defaults
		path = ""
	}
	a.configPath = path

	config, err := LoadConfig(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%sFailed to load configuration: %v. Using default settings.%s\n", Warning, err, Reset)
	}
	a.config = config

	return setupLogging(config.Logging)
}

func newRootCommand() *cobra.Command {
	InitializeColors()
	a := &app{}
	logo := fmt.Sprintf(asciiLogo, Green, version, Reset)

	var rootCmd = &cobra.Command{
		Use:               "avlkit",
		Version:           version,
		Long:              logo,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			stopLogging()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/"+configFileName+")")

	var opts runOptions
	var cmdRun = &cobra.Command{
		Use:   "run",
		Short: "Replay a script and write the tree after every command",
		Long:  fmt.Sprintf("%s\n%s", logo, "Run replays insert/delete/search commands and writes one level-order line per command"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("input") {
				opts.Input = a.config.Script.Input
			}
			if !flags.Changed("output") {
				opts.Output = a.config.Script.Output
			}
			if !flags.Changed("render") {
				opts.Render = a.config.Render.Enabled
			}
			if !flags.Changed("keep-going") {
				opts.KeepGoing = !a.config.Script.StopOnViolation
			}
			opts.RenderCfg = a.config.Render

			report, err := runScriptFile(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), opts.Output, report)
			return nil
		},
	}
	cmdRun.Flags().StringVarP(&opts.Input, "input", "i", defaultConfig.Script.Input, "script to replay")
	cmdRun.Flags().StringVarP(&opts.Output, "output", "o", defaultConfig.Script.Output, "level-order output file")
	cmdRun.Flags().BoolVar(&opts.Render, "render", false, "draw the final tree with Graphviz")
	cmdRun.Flags().BoolVar(&opts.Steps, "steps", false, "draw the tree after every command")
	cmdRun.Flags().BoolVar(&opts.Progress, "progress", false, "show a progress bar")
	cmdRun.Flags().BoolVar(&opts.KeepGoing, "keep-going", false, "count balance violations instead of stopping")

	var checkFile string
	var cmdCheck = &cobra.Command{
		Use:   "check",
		Short: "Verify a level-order file holds valid AVL trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("file") {
				checkFile = a.config.Script.Output
			}
			_, err := checkLevelOrderFile(checkFile, cmd.OutOrStdout())
			return err
		},
	}
	cmdCheck.Flags().StringVarP(&checkFile, "file", "f", defaultConfig.Script.Output, "level-order file to check")

	var printInput string
	var cmdPrint = &cobra.Command{
		Use:   "print",
		Short: "Replay a script and draw the final tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("input") {
				printInput = a.config.Script.Input
			}
			return printTree(cmd.Context(), printInput, !a.config.Script.StopOnViolation, cmd.OutOrStdout())
		},
	}
	cmdPrint.Flags().StringVarP(&printInput, "input", "i", defaultConfig.Script.Input, "script to replay")

	var cmdShell = &cobra.Command{
		Use:   "shell",
		Short: "Edit a tree interactively",
		Long:  fmt.Sprintf("%s\n%s", logo, "Shell opens a terminal UI to insert, delete and search keys while watching the tree"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(avl.New())
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print avlkit usage guide",
		Long:  fmt.Sprintf("%s\n%s", logo, "Usage displays the avlkit CLI usage guide"),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), getHelpMessage())
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show the configuration, creating it if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.configPath == "" {
				return fmt.Errorf("no configuration path: set --config")
			}
			return displaySettings(cmd.OutOrStdout(), a.configPath)
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avlkit version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(cmdRun, cmdCheck, cmdPrint, cmdShell, cmdUsage, cmdSettings, cmdVersion)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stopLogging()
		fmt.Fprintf(os.Stderr, "%s❌ %v%s\n", Error, err, Reset)
		stop()
		os.Exit(1)
	}
}
