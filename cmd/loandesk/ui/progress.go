package ui

import (
	"fmt"
	"strings"

	"loandesk/internal/schema"
)

// RenderProgress draws the step indicator line, e.g.
//
//	[✓] 1 Personal Information  ›  [2] Property Details  ›  ...
//
// Completed steps carry a check, the active step is highlighted, and
// everything else stays muted. Hidden entirely on the confirmation page.
func RenderProgress(styles Styles, current int, completed func(schema.StepID) bool) string {
	var parts []string
	for i, title := range schema.StepTitles {
		label := fmt.Sprintf("[%d] %s", i+1, title)
		switch {
		case i == current:
			parts = append(parts, styles.StepActive.Render(label))
		case completed(schema.StepID(i)):
			parts = append(parts, styles.StepComplete.Render(fmt.Sprintf("[✓] %s", title)))
		default:
			parts = append(parts, styles.StepPending.Render(label))
		}
	}
	return strings.Join(parts, styles.Muted.Render("  ›  "))
}
