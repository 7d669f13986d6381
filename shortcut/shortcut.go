// Package shortcut formats extraction results into a note blob and the
// deep link that pipes it into a pre-existing Shortcuts automation.
package shortcut

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/use-agent/ladle/config"
)

// Note joins ingredient lines into the note body: one "- " bullet per line,
// newline separated. When pageMarkdown is non-empty it is appended below the
// bullets so the note carries the full recipe as well.
func Note(ingredients []string, pageMarkdown string) string {
	var sb strings.Builder
	for i, line := range ingredients {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("- ")
		sb.WriteString(line)
	}
	if pageMarkdown != "" {
		sb.WriteString("\n\n")
		sb.WriteString(pageMarkdown)
	}
	return sb.String()
}

// Link builds the deep link that runs the configured automation with the
// note as its text input:
//
//	shortcuts://run-shortcut?name=Add%20to%20Notes&input=text&text=<encoded>
//
// The automation must already exist on the user's device under cfg.Name.
func Link(cfg config.ShortcutConfig, note string) string {
	return fmt.Sprintf("%s://run-shortcut?name=%s&input=text&text=%s",
		cfg.Scheme, encode(cfg.Name), encode(note))
}

// encode percent-encodes a query value with %20 for spaces. Shortcuts does
// not decode "+" as a space, so url.QueryEscape alone is not enough.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
