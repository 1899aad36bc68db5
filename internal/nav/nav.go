package nav

import "strings"

// Name identifies one of the client's screens.
type Name string

const (
	Home              Name = "home"
	RestaurantPreview Name = "viewRestaurantDetails"
	SignIn            Name = "signIn"
	VerifyCode        Name = "verifyCode"
	AccountDetails    Name = "accountDetails"
	ChangeEmail       Name = "changeEmail"
	PlaceReview       Name = "placeReview"
	PlaceReservation  Name = "placeReservation"
	ViewReservations  Name = "viewReservations"
	PlaceFoodOrder    Name = "placeFoodOrder"
	OrderStatus       Name = "orderStatus"
	ControlPanel      Name = "restaurantControlPanel"
	OrderQueue        Name = "orderQueue"
	ManageMenu        Name = "manageMenu"
	ManageTables      Name = "manageTables"
	ManageHours       Name = "manageOpeningHours"
)

// View references a screen to display, optionally carrying one string
// parameter such as a restaurant or order identifier. Views are encoded
// as "<name>" or "<name>:<parameter>".
type View struct {
	Name  Name
	Param string
}

// To builds a view reference without a parameter.
func To(name Name) View {
	return View{Name: name}
}

// ToParam builds a view reference carrying a parameter.
func ToParam(name Name, param string) View {
	return View{Name: name, Param: param}
}

// Parse decodes a view reference from its string form. Unknown names are
// not rejected here; the view layer falls back to the home screen for
// names it does not recognise.
func Parse(s string) View {
	if name, param, ok := strings.Cut(s, ":"); ok {
		return View{Name: Name(name), Param: param}
	}
	return View{Name: Name(s)}
}

func (v View) String() string {
	if v.Param == "" {
		return string(v.Name)
	}
	return string(v.Name) + ":" + v.Param
}

// Stack records the screens visited during this session. The last entry
// is the screen currently displayed, and the stack always holds at least
// the initial home entry, so there is always a current view.
type Stack struct {
	entries []View
}

// NewStack returns a history positioned on the home screen.
func NewStack() *Stack {
	return &Stack{entries: []View{{Name: Home}}}
}

// Push appends v to the history and makes it current.
func (s *Stack) Push(v View) {
	s.entries = append(s.entries, v)
}

// Back discards the current entry and returns the one before it. Calling
// Back with only the initial entry left is a no-op; the history never
// navigates past the first view.
func (s *Stack) Back() View {
	if len(s.entries) > 1 {
		s.entries = s.entries[:len(s.entries)-1]
	}
	return s.entries[len(s.entries)-1]
}

// Current returns the view at the top of the history.
func (s *Stack) Current() View {
	return s.entries[len(s.entries)-1]
}

// Depth reports how many entries the history holds.
func (s *Stack) Depth() int {
	return len(s.entries)
}
