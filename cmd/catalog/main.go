package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalog",
		Short:        "In-process product catalog with search, recommendations and a cart",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newReplCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute every command in the input file and write the responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			in, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer in.Close()

			var out io.Writer = os.Stdout
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			return a.handler.Serve(cmd.Context(), in, out)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "input.txt", "file of commands, one per line")
	cmd.Flags().StringVarP(&output, "output", "o", "output.txt", "response file, '-' for stdout")
	return cmd
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read commands interactively from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			sc := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprint(out, "> ")
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				switch {
				case strings.EqualFold(line, "exit"), strings.EqualFold(line, "quit"):
					return nil
				case line != "":
					a.handler.Handle(out, line)
				}
				if err := cmd.Context().Err(); err != nil {
					return nil
				}
				fmt.Fprint(out, "> ")
			}
			return sc.Err()
		},
	}
}
