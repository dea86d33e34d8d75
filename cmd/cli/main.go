package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pixluck/wallet/internal/infrastructure/auth"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wallet-cli",
		Short: "Wallet CLI tool",
		Long:  `A command line interface for interacting with the wallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}
	accountCmd.AddCommand(&cobra.Command{
		Use:   "get <account-id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0])
		},
	})
	accountCmd.AddCommand(&cobra.Command{
		Use:   "entries <account-id>",
		Short: "List an account's settlement entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/entries")
		},
	})

	jackpotCmd := &cobra.Command{
		Use:   "jackpot",
		Short: "Jackpot operations",
	}
	jackpotCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the displayed jackpot value",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/jackpot")
		},
	})

	tokenCmd := &cobra.Command{
		Use:   "admin-token <secret> <subject>",
		Short: "Issue an admin JWT for the admin endpoints",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			manager := auth.NewJWTManager(args[0], 24*time.Hour)
			token, err := manager.Generate(args[1], auth.RoleAdmin)
			if err != nil {
				fmt.Printf("Error generating token: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(token)
		},
	}

	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(jackpotCmd)
	rootCmd.AddCommand(tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}
	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}
