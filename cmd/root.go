// Copyright © 2025 The pycheck authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pycheck",
	Short: "pycheck — Python syntax checker",
	Long: `pycheck scans Python source files and reports structural syntax
problems before the code ever reaches an interpreter.

Getting started:
  pycheck check file.py        Check a single file
  pycheck check ./...          Check every .py file under the current tree
  pycheck tokens file.py       Dump the token stream (debugging aid)
  pycheck repl                 Check snippets interactively
  pycheck lsp                  Start a language server for editor integration

What it finds:
  Block headers missing their trailing colon, bodies that were never
  indented, tabs mixed with spaces, dedents that match no open block,
  unterminated strings, unbalanced brackets, malformed dict literals,
  dangling else/elif/except clauses, and a handful of advisory findings
  like (x) where a 1-tuple was probably intended.

pycheck never executes or imports the code it checks, and it keeps going
after the first problem: one run reports everything it can find.

More information:
  Source code:     https://github.com/luthersystems/pycheck`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pycheck.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".pycheck" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".pycheck")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
