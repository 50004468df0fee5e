package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	}

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency [account-id]",
		Short: "Check an account's ledger consistency",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency(args[0])
		},
	}

	accountCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(healthCmd, accountCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkHealth() {
	body, status := get(baseURL + "/ready")

	if status != http.StatusOK {
		fmt.Printf("Health check FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	fmt.Printf("Health check PASSED\n%s\n", string(body))
}

func checkConsistency(accountID string) {
	body, status := get(baseURL + "/api/v1/accounts/" + accountID + "/consistency")

	if status != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Printf("Consistency check PASSED\n")
	} else {
		fmt.Printf("Consistency check FAILED\n")
	}
	fmt.Printf("Balance: %v\nTransaction sum: %v\n", result["balance"], result["transaction_sum"])
}

func get(url string) ([]byte, int) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	return body, resp.StatusCode
}
