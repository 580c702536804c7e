package render

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ndille/ghia/internal/analyzer"
)

// Band is the display-only severity classification derived from the leading
// digit of the priority score. It is never used for sorting or filtering.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// Decoration is the fixed display label and icon for an issue type.
type Decoration struct {
	Icon  string
	Label string
}

var decorations = map[string]Decoration{
	analyzer.TypeBug:            {Icon: "🐛", Label: "Bug"},
	analyzer.TypeFeatureRequest: {Icon: "✨", Label: "Feature Request"},
	analyzer.TypeDocumentation:  {Icon: "📚", Label: "Documentation"},
	analyzer.TypeQuestion:       {Icon: "❓", Label: "Question"},
	analyzer.TypeOther:          {Icon: "📌", Label: "Other"},
}

// Decorate maps an issue type to its display decoration. Unknown types get
// the "other" icon with the humanized raw value rather than failing.
func Decorate(issueType string) Decoration {
	if d, ok := decorations[issueType]; ok {
		return d
	}
	return Decoration{Icon: decorations[analyzer.TypeOther].Icon, Label: humanize(issueType)}
}

func humanize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return decorations[analyzer.TypeOther].Label
	}
	words := strings.Split(strings.ReplaceAll(value, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// PriorityDigit parses the leading digit of a priority score. ok is false
// when the score does not begin with a digit.
func PriorityDigit(score string) (int, bool) {
	score = strings.TrimSpace(score)
	if score == "" || score[0] < '0' || score[0] > '9' {
		return 0, false
	}
	return int(score[0] - '0'), true
}

// SeverityBand is total: 4-5 band high, 2-3 medium, everything else
// (including unparseable scores) low.
func SeverityBand(score string) Band {
	digit, ok := PriorityDigit(score)
	if !ok {
		return BandLow
	}
	switch {
	case digit >= 4:
		return BandHigh
	case digit >= 2:
		return BandMedium
	default:
		return BandLow
	}
}

// Overview renders the summary-metrics view: decorated type, priority digit
// with its band, label count, then summary, labels and impact.
func Overview(a analyzer.Analysis) string {
	deco := Decorate(a.Type)
	band := SeverityBand(a.PriorityScore)
	priority := a.PriorityScore
	if digit, ok := PriorityDigit(a.PriorityScore); ok {
		priority = fmt.Sprintf("%d (%s)", digit, band)
	} else {
		priority = fmt.Sprintf("%s (%s)", a.PriorityScore, band)
	}

	var b strings.Builder
	b.WriteString("✅ Analysis complete\n\n")
	fmt.Fprintf(&b, "Type: %s %s  Priority: %s  Labels: %d\n\n", deco.Icon, deco.Label, priority, len(a.SuggestedLabels))
	b.WriteString("📝 Summary\n")
	fmt.Fprintf(&b, "  %s\n\n", a.Summary)
	b.WriteString("🏷️ Suggested Labels\n")
	if len(a.SuggestedLabels) == 0 {
		b.WriteString("  (none)\n")
	} else {
		fmt.Fprintf(&b, "  %s\n", badges(a.SuggestedLabels))
	}
	b.WriteString("\n💥 Potential Impact\n")
	fmt.Fprintf(&b, "  %s\n", a.PotentialImpact)
	return b.String()
}

func badges(labels []string) string {
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, "["+label+"]")
	}
	return strings.Join(parts, " ")
}

// Report renders the full textual report with a heading per field.
func Report(a analyzer.Analysis) string {
	deco := Decorate(a.Type)
	var b strings.Builder
	b.WriteString("## Summary\n")
	b.WriteString(a.Summary + "\n\n")
	b.WriteString("## Type\n")
	fmt.Fprintf(&b, "%s %s\n\n", deco.Icon, deco.Label)
	b.WriteString("## Priority Score\n")
	fmt.Fprintf(&b, "%s (severity: %s)\n\n", a.PriorityScore, SeverityBand(a.PriorityScore))
	b.WriteString("## Suggested Labels\n")
	if len(a.SuggestedLabels) == 0 {
		b.WriteString("None\n")
	} else {
		for _, label := range a.SuggestedLabels {
			b.WriteString("- " + label + "\n")
		}
	}
	b.WriteString("\n## Potential Impact\n")
	b.WriteString(a.PotentialImpact + "\n")
	return b.String()
}

// RawJSON renders the machine-readable dump. Field order follows the struct,
// but no field is added, removed or altered, so re-parsing the dump yields a
// value equal to the original analysis.
func RawJSON(a analyzer.Analysis) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}
	return string(data) + "\n", nil
}

// ExportJSON writes the dump to a file for archival or sharing.
func ExportJSON(a analyzer.Analysis, path string) error {
	dump, err := RawJSON(a)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(dump), 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// RequestError renders a classified failure with its remediation text. Every
// error kind gets a distinct, actionable message.
func RequestError(err *analyzer.RequestError) string {
	return fmt.Sprintf("❌ %s\n%s\n", err.Error(), err.Remediation())
}
