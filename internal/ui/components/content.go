package components

// Card is a titled blurb used by the benefit and feature grids.
type Card struct {
	Icon        string
	Title       string
	Description string
	Tone        string
}

// ProcessStep is one entry of the "how it works" sequence.
type ProcessStep struct {
	Number      int
	Icon        string
	Title       string
	Description string
}

// Testimonial is a quote attributed to an early user.
type Testimonial struct {
	Quote  string
	Author string
	Role   string
}

// Question is one FAQ accordion item.
type Question struct {
	ID       string
	Question string
	Answer   string
}

// RiskRow is one line of the sample analysis card.
type RiskRow struct {
	Label   string
	Risk    string
	Tone    string
	Summary string
}

var benefits = []Card{
	{"check-circle", "Instant Clarity", "Transform dense legal jargon into plain English summaries. Understand key points and obligations in seconds.", "neutral"},
	{"alert-triangle", "Identify Hidden Risks", "Automatically flags concerning clauses like auto-renewals, data sharing, and hidden fees with clear risk indicators.", "danger"},
	{"zap", "Save Review Time", "Stop wading through pages of legalese. Get the crucial information you need in minutes, not hours.", "warning"},
	{"shield-check", "Sign with Confidence", "Know exactly what you're agreeing to. Make informed decisions and avoid costly surprises.", "success"},
}

var features = []Card{
	{"file-text", "Upload or Paste", "Analyze contracts from documents, pasted text, or even website URLs via our browser extension.", "primary"},
	{"search", "AI-Powered Analysis", "Our intelligent engine reads and interprets legal language, identifying key terms and potential issues.", "primary"},
	{"clock", "Layered Summaries", "Get quick insights with 30-second overviews or dive deeper with categorized 2-minute summaries.", "primary"},
	{"users", "Personalized Focus", "Tell ContrActually what matters most to you (privacy, fees, cancellation) for tailored risk scoring.", "primary"},
}

var steps = []ProcessStep{
	{1, "file-text", "Submit Your Document", "Upload a file, paste text, or use our browser extension to grab T&Cs directly from websites."},
	{2, "search", "AI Analyzes Instantly", "Our engine reads the document, identifies key clauses, and assesses potential risks based on common patterns."},
	{3, "check-circle", "Receive Clear Insights", "Get easy-to-understand summaries, visual risk indicators, and highlights of important sections."},
}

var testimonials = []Testimonial{
	{
		Quote:  "ContrActually saved me hours reviewing a complex SaaS agreement. It instantly highlighted a problematic auto-renewal clause I might have missed. Indispensable for any small business owner.",
		Author: "Alex Chen",
		Role:   "Founder, Tech Startup",
	},
	{
		Quote:  "As someone who cares deeply about privacy, wading through privacy policies was a nightmare. ContrActually gives me a clear, concise breakdown of data usage in minutes. Finally, peace of mind!",
		Author: "Sarah Miller",
		Role:   "Privacy Advocate",
	},
}

var questions = []Question{
	{
		ID:       "faq-1",
		Question: "What types of contracts can ContrActually analyze?",
		Answer:   "Virtually any text-based legal document: Terms of Service, Privacy Policies, NDAs, employment contracts, rental agreements, software licenses, vendor agreements, and more. If you can copy or upload it, we can likely analyze it.",
	},
	{
		ID:       "faq-2",
		Question: "How secure is my data and uploaded documents?",
		Answer:   "Security is paramount. We use industry-standard encryption (both in transit and at rest). Uploaded documents are processed securely and are not stored long-term unless you explicitly save them to your account (a future feature). We are committed to GDPR and CCPA compliance.",
	},
	{
		ID:       "faq-3",
		Question: "Is this a replacement for a lawyer?",
		Answer:   "No. ContrActually is a powerful first-pass analysis tool designed to provide clarity and identify potential risks quickly. It empowers you to understand agreements better and ask more informed questions. For complex situations or legally binding advice, always consult with a qualified legal professional.",
	},
	{
		ID:       "faq-4",
		Question: "How does the AI work? Is it accurate?",
		Answer:   "We utilize advanced Natural Language Processing (NLP) models specifically trained on legal text. While we strive for high accuracy in identifying common clauses and risks, AI is not infallible. It's designed to augment human review, not replace critical thinking.",
	},
}

var sampleAnalysis = []RiskRow{
	{"Summary", "High Risk", "danger", "Key points: 3-year term, auto-renews yearly, data shared with affiliates."},
	{"Cancellation", "Medium Risk", "warning", "Requires 90-day notice before renewal, penalty applies."},
	{"Data Privacy", "Low Risk", "success", "Compliant with standard regulations."},
}

var trustedBy = []string{"Major Tech", "Leading SaaS", "Top Agencies", "Universities"}

type navLink struct {
	Label  string
	Anchor string
}

// navLinks are the in-page anchors shown in the header.
var navLinks = []navLink{
	{"Features", "features"},
	{"How It Works", "how-it-works"},
	{"FAQ", "faq"},
}
