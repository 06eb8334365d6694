/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomoncle/dbinit"
	"github.com/tomoncle/dbinit/database"
	"github.com/tomoncle/dbinit/prompt"
	"github.com/tomoncle/dbinit/utils"
)

const defaultEnvFile = ".env"

// errReported marks failures whose details were already printed.
var errReported = errors.New("dbinit failed")

type options struct {
	envFile  string
	seed     bool
	yes      bool
	email    string
	password string
	logLevel string
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "dbinit",
		Short: "Create the application tables and verify database access",
		Long: `dbinit reads DATABASE_URL from the environment file, creates any missing
tables, lists the tables present and counts users. When the users table is
empty it can create a test account.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd.Context(), opts, stdin, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", defaultEnvFile, "environment file holding DATABASE_URL")
	flags.BoolVar(&opts.seed, "seed", false, "create a test user when no users exist")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "do not ask for confirmation, use defaults for missing values")
	flags.StringVar(&opts.email, "email", "", "email of the test user")
	flags.StringVar(&opts.password, "password", "", "password of the test user")
	flags.StringVar(&opts.logLevel, "log-level", utils.EnvDefaultString("LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")
	return cmd
}

func execute(ctx context.Context, opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	reporter := dbinit.NewReporter(stdout)

	if _, err := os.Stat(opts.envFile); err != nil {
		reporter.MissingEnvFile(opts.envFile)
		return errReported
	}
	// Variables already set in the environment take precedence.
	if err := godotenv.Load(opts.envFile); err != nil {
		reporter.Failure("Failed to load %s: %v", opts.envFile, err)
		return errReported
	}

	utils.ConfigureLogOutput(stderr)
	utils.ConfigureLogLevel(opts.logLevel)

	if err := bootstrap(ctx, opts, reporter, stdin, stdout); err != nil {
		reporter.Troubleshoot(err, opts.envFile)
		return errReported
	}
	reporter.Ready()
	return nil
}

func bootstrap(ctx context.Context, opts *options, reporter *dbinit.Reporter, stdin io.Reader, stdout io.Writer) error {
	cfg, err := database.LoadConnectionConfig()
	if err != nil {
		return err
	}
	engine, err := database.NewEngine(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = engine.Close()
	}()

	result, err := dbinit.NewBootstrapper(engine, reporter).Run(ctx)
	if err != nil {
		return err
	}
	if result.UserCount > 0 {
		return nil
	}

	terminal := prompt.NewTerminal(stdin, stdout)
	if !opts.seed && !terminal.Interactive() {
		reporter.Detail("No users found. Run with --seed to create a test user.")
		return nil
	}
	_, err = dbinit.NewSeeder(engine, reporter).Seed(ctx, dbinit.SeedOptions{
		AssumeYes: opts.yes,
		Email:     opts.email,
		Password:  opts.password,
		Prompter:  terminal,
	})
	return err
}
