package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Its-donkey/contractually/internal/waitlist"
)

// LandingData carries everything the landing page renders for one visit.
type LandingData struct {
	SiteName      string
	Page          PageConfig
	Year          int
	Waitlist      WaitlistView
	Notifications []waitlist.Notification
}

func LandingPage(data LandingData) g.Node {
	siteName := data.SiteName
	if siteName == "" {
		siteName = "ContrActually"
	}

	return Layout(
		data.Page,
		Topbar(siteName),
		Main(
			Hero(),
			SocialProof(),
			Benefits(),
			Features(),
			HowItWorks(),
			Testimonials(),
			FAQ(),
			Waitlist(data.Waitlist),
		),
		PageFooter(siteName, data.Year),
		Toasts(data.Notifications),
	)
}
