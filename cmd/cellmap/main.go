package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	root := &cobra.Command{
		Use:           "cellmap",
		Short:         "Inspect bag-of-cells files and the dictionaries inside them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(inspectCommand())
	root.AddCommand(dictCommand())

	if err := root.Execute(); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		os.Exit(1)
	}
}
