package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-screener/internal/dialogue"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the reply rules in priority order",
	Run: func(_ *cobra.Command, _ []string) {
		printRules(dialogue.Describe())
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func printRules(statuses []dialogue.Status) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tRULE\tDESCRIPTION\tDETAILS")
	for i, status := range statuses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, status.Name, status.Description, formatDetails(status.Details))
	}
	w.Flush()
}

func formatDetails(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+details[key])
	}
	return strings.Join(parts, " ")
}
