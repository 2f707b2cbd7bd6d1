package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	// Global flags
	serverURL string
	timeout   int

	// Generate command flags
	keyword   string
	subreddit string
	timeRange string
	analyze   bool

	// List command flags
	listLimit int

	// Feedback command flags
	ideaID    string
	visitorID string
	verdict   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "minectl",
	Short:   "Generate and inspect idea reports",
	Version: version,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a report for a keyword",
	Long: `Generate a report by mining recent discussions for a keyword.

Examples:
  # Heuristic scoring over the past week
  minectl generate --keyword "note taking"

  # Scope to one subreddit over the past month
  minectl generate --keyword "note taking" --subreddit productivity --range month

  # Model-based synthesis instead of the heuristic scorer
  minectl generate --keyword "note taking" --analyze`,
	RunE: runGenerate,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent reports",
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get <report-id>",
	Short: "Fetch a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <report-id>",
	Short: "Record a verdict on one idea of a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedback,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(), "miner server base URL")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 180, "request timeout in seconds")

	generateCmd.Flags().StringVar(&keyword, "keyword", "", "search keyword (required)")
	generateCmd.Flags().StringVar(&subreddit, "subreddit", "", "restrict the search to one subreddit")
	generateCmd.Flags().StringVar(&timeRange, "range", "week", "time window: week, month or year")
	generateCmd.Flags().BoolVar(&analyze, "analyze", false, "use model-based synthesis")
	_ = generateCmd.MarkFlagRequired("keyword")

	feedbackCmd.Flags().StringVar(&ideaID, "idea", "", "idea id (required)")
	feedbackCmd.Flags().StringVar(&visitorID, "visitor", "", "visitor id (required)")
	feedbackCmd.Flags().StringVar(&verdict, "verdict", "", "like or dislike (required)")
	_ = feedbackCmd.MarkFlagRequired("idea")
	_ = feedbackCmd.MarkFlagRequired("visitor")
	_ = feedbackCmd.MarkFlagRequired("verdict")

	listCmd.Flags().IntVar(&listLimit, "limit", 20, "number of reports to list")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func defaultServerURL() string {
	if url := os.Getenv("MINER_URL"); url != "" {
		return url
	}
	return "http://localhost:9020"
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: time.Duration(timeout) * time.Second}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := "/v1/reports"
	if analyze {
		path = "/v1/reports/analyze"
	}

	payload, _ := json.Marshal(map[string]string{
		"keyword":   keyword,
		"subreddit": subreddit,
		"range":     timeRange,
	})

	resp, err := newHTTPClient().Post(serverURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	return printIndented(body)
}

func runList(cmd *cobra.Command, args []string) error {
	resp, err := newHTTPClient().Get(fmt.Sprintf("%s/v1/reports?limit=%d", serverURL, listLimit))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	return printIndented(body)
}

func runGet(cmd *cobra.Command, args []string) error {
	resp, err := newHTTPClient().Get(serverURL + "/v1/reports/" + args[0])
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("report %s not found", args[0])
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	return printIndented(body)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	payload, _ := json.Marshal(map[string]string{
		"ideaId":    ideaID,
		"visitorId": visitorID,
		"verdict":   verdict,
	})

	resp, err := newHTTPClient().Post(
		serverURL+"/v1/reports/"+args[0]+"/feedback",
		"application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	fmt.Println("Feedback recorded.")
	return nil
}

func printIndented(body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return nil
	}
	fmt.Println(buf.String())
	return nil
}
