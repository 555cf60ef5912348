package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := application.Store.Stats()

		fmt.Printf("total: %d  live: %d  trashed: %d  pinned: %d\n\n",
			st.Total, st.Live, st.Trashed, st.Pinned)

		fmt.Println("by category:")
		for _, line := range sortedCounts(st.ByCategory) {
			fmt.Println("  " + line)
		}

		fmt.Println("by domain:")
		for _, line := range sortedCounts(st.ByDomain) {
			fmt.Println("  " + line)
		}
		return nil
	},
}

// sortedCounts renders a count map as "name: n" lines, highest count first,
// name as tie-breaker.
func sortedCounts(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%s: %d", name, counts[name])
	}
	return lines
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
