package ui

import (
	"strings"

	"loandesk/internal/schema"
)

// RenderReview draws the read-only application summary: every section of
// the projection with its label-expanded rows, plus the edit/submit hints.
func RenderReview(styles Styles, sections []schema.Section) string {
	var b strings.Builder
	for _, section := range sections {
		b.WriteString(styles.SectionTitle.Render(section.Title))
		b.WriteString("\n")
		for _, row := range section.Rows {
			if row.Value == "" {
				continue
			}
			b.WriteString("  ")
			b.WriteString(styles.RowLabel.Render(row.Label))
			b.WriteString(styles.RowValue.Render(row.Value))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Press 1/2/3 to edit a section · enter to submit the application"))
	return b.String()
}
