package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/claude-buddy/claude-buddy/internal/hooks"
	"github.com/claude-buddy/claude-buddy/internal/install"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "claude-buddy",
		Short: "Claude Buddy hooks for validating commands and protecting files",
		Long:  `Claude Code PreToolUse hooks that classify proposed shell commands and file writes as allowed, warned, or blocked, based on configurable pattern rules.`,
	}

	rootCmd.AddCommand(newValidateCommandCmd())
	rootCmd.AddCommand(newGuardFileCmd())
	rootCmd.AddCommand(newInitCmd())

	return rootCmd
}

func newValidateCommandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-command",
		Short: "Validate a bash command before execution",
		Long:  `Reads a tool invocation from stdin as JSON and classifies the bash command against dangerous, performance, and best practice pattern rules. Exits 0 to allow, 2 to block, 1 on malformed input.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, hooks.NewCommandHook().Run)
		},
	}
}

func newGuardFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guard-file",
		Short: "Guard sensitive files against writes",
		Long:  `Reads a tool invocation from stdin as JSON and blocks writes to sensitive or critical system files. Exits 0 to allow, 2 to block, 1 on malformed input.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, hooks.NewFileHook().Run)
		},
	}
}

func runHook(cmd *cobra.Command, run func(in io.Reader, out io.Writer) (int, error)) error {
	code, err := run(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to parse tool input: %w", err)
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

func newInitCmd() *cobra.Command {
	var command string
	var global bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Register both hooks in .claude/settings.json",
		Long:  `Adds PreToolUse hook entries for validate-command and guard-file to the project's .claude/settings.json, preserving existing settings. With --global the entries go into the user-level settings file instead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			if global {
				baseDir, err = os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to get home directory: %w", err)
				}
			}

			installer := install.New(baseDir, command)
			if err := installer.Install(); err != nil {
				return fmt.Errorf("failed to install hooks: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Registered claude-buddy hooks in "+filepath.Join(baseDir, ".claude", "settings.json"))
			return nil
		},
	}
	initCmd.Flags().StringVar(&command, "command", "claude-buddy", "binary invocation to register for the hooks")
	initCmd.Flags().BoolVar(&global, "global", false, "register in the user-level settings instead of the project's")

	return initCmd
}
