// Package preview assembles the three code panes of a project into one
// renderable document. The result is handed wholesale to an isolated rendering
// context (a sandboxed iframe via srcdoc, or the live-preview websocket
// channel); isolation is the delivery mechanism, so composition itself does no
// escaping or error containment.
package preview

import "strings"

// Compose concatenates the HTML body, a style block wrapping the CSS and a
// script block wrapping the JS, in that order.
func Compose(html, css, js string) string {
	var b strings.Builder
	b.Grow(len(html) + len(css) + len(js) + len("<style></style><script></script>"))
	b.WriteString(html)
	b.WriteString("<style>")
	b.WriteString(css)
	b.WriteString("</style>")
	b.WriteString("<script>")
	b.WriteString(js)
	b.WriteString("</script>")
	return b.String()
}
