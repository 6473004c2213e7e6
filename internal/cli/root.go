/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cli implements the dfault operator command line.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"dirpx.dev/dfault/message"
)

// EnvLocale names the environment variable holding the default locale.
const EnvLocale = "DFAULT_LOCALE"

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// app holds the state shared by all commands of one invocation.
type app struct {
	envFile string
	debug   bool
	locale  string
	logger  *slog.Logger
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dfault",
		Short: "Inspect fault taxonomies, message bundles and status mappings",
		Long: `dfault is the operator tool for the dfault error-handling library.
It validates and renders YAML message bundles, lists the built-in fault
taxonomies and explains how faults map to HTTP and gRPC statuses.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before running")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")
	pf.StringVar(&a.locale, "locale", "", "message locale (default $"+EnvLocale+", then root)")

	root.AddCommand(a.messagesCmd(), a.faultsCmd(), a.explainCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(a.envFile); err != nil {
		if cmd.Flags().Changed("env-file") || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", a.envFile, err)
		}
	}

	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}))

	if a.locale == "" {
		a.locale = os.Getenv(EnvLocale)
	}
	a.locale = message.NormalizeLocale(a.locale)
	a.logger.Debug("cli configured", "locale", a.locale, "env_file", a.envFile)
	return nil
}
