package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func PageFooter(siteName string, year int) g.Node {
	return Footer(
		Class("footer"),
		Div(
			Class("container footer-inner"),
			Div(
				Class("footer-brand"),
				Logo(siteName),
				Span(Class("muted"), g.Text(fmt.Sprintf("© %d %s. All rights reserved.", year, siteName))),
			),
			Nav(
				Class("footer-nav"),
				A(Href("/privacy"), g.Text("Privacy Policy")),
				A(Href("/terms"), g.Text("Terms of Service")),
				A(Href("/contact"), g.Text("Contact")),
			),
		),
	)
}
