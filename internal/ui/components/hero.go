package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func Hero() g.Node {
	return Section(
		ID("hero"),
		Class("hero"),
		Div(
			Class("container hero-grid"),

			Div(
				Class("hero-copy"),
				H1(
					g.Text("Stop Signing Blindly."),
					Br(),
					Span(Class("accent"), g.Text("Understand Contracts")),
					g.Text(" Instantly."),
				),
				P(
					Class("lead"),
					g.Text("ContrActually uses AI to decode complex terms & conditions and legal agreements. Get clear summaries, identify hidden risks, and save hours of review time."),
				),
				Div(
					Class("hero-actions"),
					A(Href("#waitlist"), Class("btn btn-lg"), g.Attr("data-scroll", ""), g.Text("Get Early Access")),
					A(Href("#features"), Class("btn btn-lg btn-outline"), g.Attr("data-scroll", ""), g.Text("Learn More")),
				),
				P(Class("hero-note"), g.Text("Join thousands securing their spot.")),
			),

			SampleAnalysis(),
		),
	)
}

// SampleAnalysis is the illustrative report card beside the hero copy.
func SampleAnalysis() g.Node {
	return Div(
		Class("sample-card"),
		Div(
			Class("sample-card-header"),
			Icon("file-text", "primary"),
			Span(g.Text("AI Contract Analysis")),
		),
		Div(
			Class("sample-card-body"),
			g.Group(g.Map(sampleAnalysis, func(row RiskRow) g.Node {
				return Div(
					Class("risk-row"),
					Div(
						Class("risk-row-head"),
						Span(Class("risk-label"), g.Text(row.Label)),
						Span(Class("badge tone-"+row.Tone), g.Text(row.Risk)),
					),
					P(g.Text(row.Summary)),
				)
			})),
			Button(
				Type("button"),
				Class("btn btn-sm btn-block"),
				Disabled(),
				g.Text("Full Report (Example)"),
				Icon("chevron-right", ""),
			),
		),
	)
}

func SocialProof() g.Node {
	return Section(
		Class("social-proof"),
		Div(
			Class("container social-proof-inner"),
			P(Class("eyebrow"), g.Text("Trusted by early users from")),
			Div(
				Class("social-proof-logos"),
				g.Group(g.Map(trustedBy, func(name string) g.Node {
					return Span(g.Text(name))
				})),
			),
		),
	)
}
