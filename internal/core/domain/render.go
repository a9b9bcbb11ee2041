package domain

import (
	"fmt"
	"strings"
)

// ProgressView is the state rendered into an intermediate progress update.
type ProgressView struct {
	Keyword        string
	KeywordIndex   int
	KeywordCount   int
	Total          int
	Page           int
	UpdateInterval int

	// Prior holds the finalised summary lines of earlier keywords.
	Prior []string
}

// RenderProgress renders an intermediate progress update.
// The output is deterministic for a given view.
func RenderProgress(v ProgressView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Intermediate results (%d/%d):\n\n", v.KeywordIndex, v.KeywordCount)
	if len(v.Prior) > 0 {
		b.WriteString(strings.Join(v.Prior, "\n"))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "🔎 Keyword %q (updated every %d pages):\n", v.Keyword, v.UpdateInterval)
	fmt.Fprintf(&b, "  • Total products: %d\n", v.Total)
	fmt.Fprintf(&b, "  • Current page: %d\n", v.Page)
	b.WriteString("  • Status: searching, please wait...")
	return b.String()
}

// RenderOutcomeLine renders the summary line for the idx-th keyword (1-based).
func RenderOutcomeLine(idx int, o RankOutcome) string {
	switch o.Kind {
	case OutcomeFound:
		return fmt.Sprintf("  %d. Keyword %q:\n    • Total products: %d\n    • Position: %d\n    • Page: %d",
			idx, o.Keyword, o.Total, o.Rank, o.Page)
	case OutcomeNotFound:
		return fmt.Sprintf("  %d. Keyword %q:\n    • Total products: %d\n    • Product not found",
			idx, o.Keyword, o.Total)
	case OutcomeCancelled:
		return fmt.Sprintf("  %d. Keyword %q: search cancelled", idx, o.Keyword)
	default:
		return fmt.Sprintf("  %d. Keyword %q: search failed", idx, o.Keyword)
	}
}

// RenderReport renders the final report text for either status.
func RenderReport(r Report) string {
	if r.Status == ReportCancelled {
		if len(r.Lines) == 0 {
			return "❌ Search cancelled!\n\n📊 No results yet."
		}
		return "❌ Search cancelled!\n\n📊 Results so far:\n\n" + strings.Join(r.Lines, "\n")
	}
	return "✅ Search complete!\n\n📊 Results:\n" + strings.Join(r.Lines, "\n")
}
