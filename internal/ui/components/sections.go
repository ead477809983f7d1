package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func Benefits() g.Node {
	return Section(
		ID("benefits"),
		Class("section"),
		Div(
			Class("container"),
			SectionHeading("Why You'll Love ContrActually", "Go beyond simple summaries. Gain true understanding and control over your agreements."),
			Div(
				Class("grid grid-4"),
				g.Group(g.Map(benefits, func(b Card) g.Node {
					return Div(
						Class("card card-center"),
						Icon(b.Icon, b.Tone),
						H3(splitTitle(b.Title)),
						P(Class("muted"), g.Text(b.Description)),
					)
				})),
			),
		),
	)
}

func Features() g.Node {
	return Section(
		ID("features"),
		Class("section section-tinted"),
		Div(
			Class("container"),
			Div(
				Class("section-heading"),
				Span(Class("pill"), g.Text("Core Features")),
				H2(g.Text("How ContrActually Works For You")),
				P(Class("lead"), g.Text("Simple inputs, powerful insights. Our streamlined process gets you answers fast.")),
			),
			Div(
				Class("grid grid-2"),
				g.Group(g.Map(features, func(f Card) g.Node {
					return Div(
						Class("card card-row"),
						Icon(f.Icon, f.Tone),
						Div(
							H3(g.Text(f.Title)),
							P(Class("muted"), g.Text(f.Description)),
						),
					)
				})),
			),
		),
	)
}

func HowItWorks() g.Node {
	return Section(
		ID("how-it-works"),
		Class("section"),
		Div(
			Class("container"),
			SectionHeading("Get Clarity in 3 Simple Steps", ""),
			Ol(
				Class("steps"),
				g.Group(g.Map(steps, func(s ProcessStep) g.Node {
					return Li(
						Class("step"),
						Div(
							Class("step-head"),
							Span(Class("step-number"), g.Text(strconv.Itoa(s.Number))),
							Icon(s.Icon, "primary"),
						),
						H3(g.Text(s.Title)),
						P(Class("muted"), g.Text(s.Description)),
					)
				})),
			),
		),
	)
}

func Testimonials() g.Node {
	return Section(
		ID("testimonials"),
		Class("section section-accent"),
		Div(
			Class("container"),
			SectionHeading("Don't Just Take Our Word For It", "See how ContrActually is already making a difference for early users."),
			Div(
				Class("grid grid-2 narrow"),
				g.Group(g.Map(testimonials, func(t Testimonial) g.Node {
					return g.El("figure",
						Class("card testimonial"),
						Icon("quote", "primary"),
						g.El("blockquote", P(g.Textf("“%s”", t.Quote))),
						g.El("figcaption",
							Span(Class("avatar"), g.Attr("aria-hidden", "true"), g.Text(Initials(t.Author))),
							Div(
								P(Class("author"), g.Text(t.Author)),
								P(Class("muted small"), g.Text(t.Role)),
							),
						),
					)
				})),
			),
		),
	)
}

// FAQ renders the questions as exclusive details elements so at most one is open.
func FAQ() g.Node {
	return Section(
		ID("faq"),
		Class("section"),
		Div(
			Class("container narrow"),
			SectionHeading("Frequently Asked Questions", ""),
			Div(
				Class("accordion"),
				g.Group(g.Map(questions, func(q Question) g.Node {
					return g.El("details",
						ID(q.ID),
						Class("accordion-item"),
						Name("faq"),
						g.El("summary", g.Text(q.Question)),
						P(Class("muted"), g.Text(q.Answer)),
					)
				})),
			),
		),
	)
}
