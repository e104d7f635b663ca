package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/knowyourrights/cards/server/internal/client"
)

var (
	apiFlag string
	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rightsctl",
		Short:         "CLI client for the Know Your Rights Cards API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Rights service base URL")
	return cmd
}

func apiClient() *client.Client { return client.New(apiFlag) }

// printJSON writes v as indented JSON to the command's output.
func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
