package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderConfirmation draws the terminal thank-you page. The body is
// markdown rendered through glamour; if the renderer cannot be built the
// raw markdown is shown, which still reads fine.
func RenderConfirmation(styles Styles, applicantName, applicationID string, width int) string {
	md := fmt.Sprintf(`# Thank You, %s!

Your loan application has been submitted successfully.

**Application ID:** %s

Our team will review your application and contact you within **1-2 business
days**. A confirmation email with your application details is on its way.

Please keep your application ID for reference in any follow-up.
`, applicantName, applicationID)

	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out + styles.Muted.Render("Press q to exit.")
}
