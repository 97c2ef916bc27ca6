package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"siso/internal/client/apiclient"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "siso",
	Short: "Share audio tracks through the Siso API",
	Long: `siso uploads audio straight to object storage and records it with the Siso API.

Examples:
  siso upload --title "Night Drive" --file ./night-drive.mp3
  siso list --page 2`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(listCmd)

	rootCmd.PersistentFlags().String("api", envOr("SISO_API_URL", "http://localhost:8080"), "Siso API base URL")
	rootCmd.PersistentFlags().String("token", os.Getenv("SISO_TOKEN"), "Firebase ID token")
}

func newAPIClient(cmd *cobra.Command) (*apiclient.Client, error) {
	baseURL, _ := cmd.Flags().GetString("api")
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		return nil, fmt.Errorf("no token: pass --token or set SISO_TOKEN")
	}
	return apiclient.New(baseURL, token), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
