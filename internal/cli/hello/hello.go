// Package hello implements the hello command.
package hello

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/relnotes/internal/build"
	"github.com/ariel-frischer/relnotes/internal/greet"
	"github.com/spf13/cobra"
)

// NewCmd builds the hello command.
func NewCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:           "hello",
		Short:         "Print a greeting",
		Example:       "  hello\n  hello --name Ada",
		Version:       build.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), greet.Message(name))
			return err
		},
	}

	cmd.SetVersionTemplate(build.Info("hello"))
	cmd.Flags().StringVarP(&name, "name", "n", greet.DefaultName, "Who to greet")

	return cmd
}

// Execute runs hello with the process arguments and returns the exit code.
func Execute() int {
	return ExecuteContext(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteContext runs hello with args and returns the exit code.
func ExecuteContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
