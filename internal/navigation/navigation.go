// Package navigation holds the page state machine. Pages form a star around
// Home: Home links to every feature page and each feature page links back.
package navigation

type Page string

const (
	Home        Page = "Home"
	UploadImage Page = "Upload Image"
	Chatbot     Page = "Chatbot"
	MealPlan    Page = "Personalized Meal Plan"
)

var Pages = []Page{Home, UploadImage, Chatbot, MealPlan}

// ParsePage maps a stored or submitted identifier back to a Page. Unknown
// identifiers yield Home and false.
func ParsePage(s string) (Page, bool) {
	for _, p := range Pages {
		if string(p) == s {
			return p, true
		}
	}
	return Home, false
}

func (p Page) String() string { return string(p) }

// State is the per-session navigation state.
type State struct {
	Page Page
}

func Initial() State {
	return State{Page: Home}
}

// Action is a user-triggered transition request.
type Action struct {
	Label  string
	Target Page
}

func Navigate(target Page) Action {
	return Action{Label: labels[target], Target: target}
}

var labels = map[Page]string{
	Home:        "Back to Home",
	UploadImage: "Upload Image",
	Chatbot:     "Chatbot",
	MealPlan:    "Personalized Meal Plan",
}

// Reduce applies an action. Navigation is unguarded: the resulting page is
// always the action's target, or Home when the target is not a known page.
func Reduce(_ State, a Action) State {
	target, ok := ParsePage(string(a.Target))
	if !ok {
		return Initial()
	}
	return State{Page: target}
}

// Actions lists the transitions a page exposes.
func Actions(p Page) []Action {
	if p == Home {
		return []Action{Navigate(UploadImage), Navigate(Chatbot), Navigate(MealPlan)}
	}
	return []Action{Navigate(Home)}
}
