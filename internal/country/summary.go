package country

import (
	"bytes"
	"countries/internal/domain"
	"encoding/xml"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// TimestampLayout is the UTC ISO-8601 form with milliseconds used in the
// summary and in API responses.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	summaryWidth  = 800
	summaryHeight = 600
)

// SummaryRenderer draws the refresh summary as an SVG document.
type SummaryRenderer struct{}

func NewSummaryRenderer() *SummaryRenderer {
	return &SummaryRenderer{}
}

// Render lays out the total, the refresh time and the top countries as text
// lines. Output depends only on the arguments.
func (r *SummaryRenderer) Render(top []domain.Country, total int, refreshedAt time.Time) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", summaryWidth, summaryHeight)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	lines := []string{
		fmt.Sprintf("Total Countries: %d", total),
		"Last Refreshed: " + refreshedAt.UTC().Format(TimestampLayout),
		"Top 5 Countries by GDP:",
	}
	for i, c := range top {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, c.Name, formatGDP(c.EstimatedGDP)))
	}

	for i, line := range lines {
		fmt.Fprintf(&buf, `  <text x="50" y="%d" font-family="Arial" font-size="20" fill="black">`, 50*(i+1))
		if err := xml.EscapeText(&buf, []byte(line)); err != nil {
			return "", fmt.Errorf("failed to escape summary line: %w", err)
		}
		buf.WriteString("</text>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.String(), nil
}

// formatGDP stays in float64 since GDP values can exceed the int64 range.
func formatGDP(gdp float64) string {
	r := math.Round(gdp)
	if r == 0 {
		r = 0 // drops -0
	}
	return humanize.Commaf(r)
}
