// Package escape converts arbitrary values into text safe for HTML text
// content and quoted attribute values. It is the single sanitization point
// for dictionary values entering generated markup: callers escape exactly
// once, when building the markup string.
package escape

import (
	"fmt"
	"strings"
)

var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// HTML escapes v for use as element text. A nil value yields "".
func HTML(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return replacer.Replace(s)
	case fmt.Stringer:
		return replacer.Replace(s.String())
	default:
		return replacer.Replace(fmt.Sprint(v))
	}
}

// Attr escapes v for use inside a double- or single-quoted attribute value.
func Attr(v any) string {
	return HTML(v)
}
