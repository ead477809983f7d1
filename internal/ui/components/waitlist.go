package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Its-donkey/contractually/internal/waitlist"
)

// Form field names shared with the submit handlers.
const (
	FieldVisit = "visit"
	FieldName  = "name"
	FieldEmail = "email"
)

// WaitlistView is what the signup section needs to render one visit.
type WaitlistView struct {
	VisitID string
	State   waitlist.State
	// Action is the form post target; APIAction is used by the page script.
	Action    string
	APIAction string
}

func Waitlist(view WaitlistView) g.Node {
	return Section(
		ID("waitlist"),
		Class("section section-waitlist"),
		Div(
			Class("container"),
			Div(
				Class("card waitlist-card"),
				g.Attr("data-status", view.State.Status.String()),
				Div(
					Class("waitlist-header"),
					Icon("award", "primary"),
					H2(g.Text("Be Among the First")),
					P(Class("lead"), g.Text("Join the ContrActually waitlist for exclusive early access, founder pricing, and updates.")),
				),
				Div(
					Class("waitlist-body"),
					g.If(view.State.Status == waitlist.Succeeded, WaitlistSuccess()),
					g.If(view.State.Status != waitlist.Succeeded, WaitlistForm(view)),
					g.If(view.State.Status != waitlist.Succeeded, g.El("template", ID("waitlist-success-template"), WaitlistSuccess())),
				),
			),
		),
	)
}

func WaitlistSuccess() g.Node {
	return Div(
		ID("waitlist-success"),
		Class("waitlist-success"),
		Icon("check-circle", "success"),
		H3(g.Text("Success! You're on the list.")),
		P(Class("muted"), g.Text("Thank you for joining! We'll email you soon with your exclusive access details.")),
	)
}

// WaitlistForm renders the signup form. While a submission is in flight the
// inputs and button are disabled and the button reads "Submitting...".
func WaitlistForm(view WaitlistView) g.Node {
	busy := view.State.Status == waitlist.Submitting
	label := "Secure My Spot"
	if busy {
		label = "Submitting..."
	}
	action := view.Action
	if action == "" {
		action = "/waitlist"
	}

	return g.El("form",
		ID("waitlist-form"),
		Class("waitlist-form"),
		Method("post"),
		Action(action),
		g.If(view.APIAction != "", g.Attr("data-api", view.APIAction)),
		g.If(busy, g.Attr("aria-busy", "true")),

		Input(Type("hidden"), Name(FieldVisit), Value(view.VisitID)),

		Div(
			Class("field"),
			Label(For("name"), g.Text("Full Name")),
			Input(
				ID("name"),
				Type("text"),
				Name(FieldName),
				Placeholder("Your Name"),
				Value(view.State.Input.Name),
				g.Attr("autocomplete", "name"),
				Required(),
				g.If(busy, Disabled()),
			),
		),
		Div(
			Class("field"),
			Label(For("email"), g.Text("Email Address")),
			Input(
				ID("email"),
				Type("email"),
				Name(FieldEmail),
				Placeholder("you@example.com"),
				Value(view.State.Input.Email),
				g.Attr("autocomplete", "email"),
				Required(),
				g.If(busy, Disabled()),
			),
		),
		Button(
			Type("submit"),
			Class("btn btn-lg btn-block"),
			g.If(busy, Disabled()),
			g.Text(label),
		),
		P(
			Class("muted small center"),
			g.Text("We respect your privacy. No spam, ever. Read our "),
			A(Href("/privacy"), g.Text("Privacy Policy")),
			g.Text("."),
		),
	)
}
