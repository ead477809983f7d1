package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func Topbar(siteName string) g.Node {
	return Header(
		Class("topbar"),
		Div(
			Class("container topbar-inner"),

			A(
				Href("#hero"),
				Class("brand"),
				g.Attr("data-scroll", ""),
				Logo(siteName),
			),

			Nav(
				Class("topbar-nav"),
				g.Attr("aria-label", "Primary"),
				g.Group(g.Map(navLinks, func(l navLink) g.Node {
					return A(Href("#"+l.Anchor), g.Attr("data-scroll", ""), g.Text(l.Label))
				})),
				A(Href("#waitlist"), Class("btn btn-sm"), g.Attr("data-scroll", ""), g.Text("Join Waitlist")),
			),

			g.El("details",
				Class("mobile-menu"),
				g.El("summary",
					Class("btn btn-outline btn-icon"),
					Span(Class("icon icon-menu"), g.Attr("aria-hidden", "true")),
					Span(Class("sr-only"), g.Text("Toggle Menu")),
				),
				Nav(
					Class("mobile-menu-panel"),
					g.Attr("aria-label", "Mobile"),
					Div(Class("mobile-menu-title"), Logo(siteName)),
					g.Group(g.Map(navLinks, func(l navLink) g.Node {
						return A(Href("#"+l.Anchor), g.Attr("data-scroll", ""), g.Attr("data-close-menu", ""), g.Text(l.Label))
					})),
					A(Href("#waitlist"), Class("btn btn-lg"), g.Attr("data-scroll", ""), g.Attr("data-close-menu", ""), g.Text("Join Waitlist Now")),
				),
			),
		),
	)
}
