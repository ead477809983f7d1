package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title        string
	Description  string
	CanonicalURL string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "ContrActually - Understand Contracts Instantly"
	}

	if config.Description == "" {
		config.Description = "AI-powered contract analysis. Decode legal jargon, identify risks, and save time."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				g.If(config.CanonicalURL != "", Link(Rel("canonical"), Href(config.CanonicalURL))),

				Link(Rel("icon"), Href("/static/logo.svg"), Type("image/svg+xml")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),
			),
			Body(
				Class("page"),
				g.Group(content),

				Script(Src("/static/app.js"), g.Attr("defer")),
			),
		),
	})
}
