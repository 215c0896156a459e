package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/aula/internal/domain"
)

// FormatError renders err as "error [kind/CODE]: message" followed by one
// line per offending field. Errors outside the domain render as internal.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		return StyleRed.Render(fmt.Sprintf("error [%s]:", domain.KindInternal)) + " " + err.Error()
	}

	msg := de.Message
	if msg == "" {
		msg = strings.ToLower(strings.ReplaceAll(string(de.Code), "_", " "))
	}
	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("error [%s/%s]:", de.Kind, de.Code)))
	b.WriteString(" ")
	b.WriteString(msg)
	for _, f := range de.Fields {
		b.WriteString("\n  ")
		b.WriteString(StyleYellow.Render(f.Field))
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	return b.String()
}
