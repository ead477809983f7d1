package components

import (
	"strings"
	"unicode"
	"unicode/utf8"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func Logo(siteName string) g.Node {
	return Span(
		Class("logo"),
		Span(Class("logo-mark"), g.Attr("aria-hidden", "true"), g.Text("C")),
		Span(Class("logo-text"), g.Text(siteName)),
	)
}

// Icon renders a decorative icon placeholder styled by name.
func Icon(name, tone string) g.Node {
	classes := "icon icon-" + name
	if tone != "" {
		classes += " tone-" + tone
	}
	return Span(Class(classes), g.Attr("aria-hidden", "true"))
}

func SectionHeading(title, lead string) g.Node {
	return Div(
		Class("section-heading"),
		H2(g.Text(title)),
		g.If(lead != "", P(Class("lead"), g.Text(lead))),
	)
}

// Initials returns the upper-cased first letter of each word in name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// splitTitle breaks a title after its first word.
func splitTitle(title string) g.Node {
	first, rest, ok := strings.Cut(title, " ")
	if !ok {
		return g.Text(title)
	}
	return g.Group([]g.Node{g.Text(first), Br(), g.Text(rest)})
}
