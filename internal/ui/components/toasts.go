package components

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Its-donkey/contractually/internal/waitlist"
)

// ToastLifetime is how long a toast stays on screen before the page script
// removes it.
const ToastLifetime = 5 * time.Second

// Toasts renders the live region in the bottom-right corner. It is always
// present so the page script can append notifications to it.
func Toasts(notifications []waitlist.Notification) g.Node {
	return Div(
		ID("toasts"),
		Class("toasts"),
		g.Attr("aria-live", "polite"),
		g.Attr("data-lifetime", strconv.FormatInt(ToastLifetime.Milliseconds(), 10)),
		g.Group(g.Map(notifications, Toast)),
	)
}

func Toast(n waitlist.Notification) g.Node {
	return Div(
		Class("toast toast-"+string(n.Kind)),
		g.Attr("role", "status"),
		Strong(Class("toast-title"), g.Text(n.Title)),
		g.If(n.Description != "", P(Class("toast-description"), g.Text(n.Description))),
	)
}
