package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
	stderr  io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cliParser().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "symptree",
		Short: "symptree is a tool to diagnose from symptoms with random forests",
		Long:  `A tool to grow random forests from symptom data, store them, test them, and use them to rank diagnoses for observed symptoms`,
	}
	config := &rootCmdConfig{stderr: os.Stderr}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress to STDERR")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		predictCmd(config),
		testCmd(config),
		importanceCmd(config),
		treeCmd(config),
		listCmd(config),
	)
	return rootCmd
}

// Logf writes a progress line prefixed with the program name when verbose.
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	if !rcc.verbose {
		return
	}
	fmt.Fprint(rcc.stderr, "symptree: ")
	fmt.Fprintf(rcc.stderr, format, a...)
	fmt.Fprintln(rcc.stderr)
}
