package advisor

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
)

// BuildPrompt asks for a health score, leaks and one personalised move, followed by the
// figures the advice is based on.
func BuildPrompt(summary stats.Summary, goals []goal.Goal) string {
	var b strings.Builder

	b.WriteString("Act as an elite financial advisor. Analyze the following data and provide 3 brief, high-impact sections:\n")
	b.WriteString("1. Financial Health Score (out of 100)\n")
	b.WriteString("2. Immediate Leaks/Warnings\n")
	b.WriteString("3. A \"Prosperity Move\" (personalized advice).\n")
	b.WriteString("Keep it professional, encouraging, and punchy.\n\n")

	b.WriteString("DATA:\n")
	fmt.Fprintf(&b, "- Income: %s Dh\n", summary.TotalIncome)
	fmt.Fprintf(&b, "- Expenses: %s Dh (Fixed: %s, Variable: %s)\n",
		summary.TotalExpenses, summary.FixedExpenses, summary.VariableExpenses)
	fmt.Fprintf(&b, "- Current Balance: %s Dh\n", summary.Balance)
	fmt.Fprintf(&b, "- Active Goals: %d (Total progress: %d%%)\n", len(goals), stats.AverageProgress(goals))

	return b.String()
}
