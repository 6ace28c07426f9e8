// Package nav holds the screen identifiers and the navigation stack.
package nav

import "github.com/zjrosen/feeportal/internal/log"

// Route identifies a screen.
type Route int

const (
	RouteHome Route = iota
	RouteRegister
	RouteLogin
	RoutePaymentOptions
	RoutePaymentHistory
	RouteSupport
)

var routeNames = map[Route]string{
	RouteHome:           "home",
	RouteRegister:       "register",
	RouteLogin:          "login",
	RoutePaymentOptions: "payment-options",
	RoutePaymentHistory: "payment-history",
	RouteSupport:        "support",
}

func (r Route) String() string {
	if name, ok := routeNames[r]; ok {
		return name
	}
	return "unknown"
}

// Title is the header shown for the screen.
func (r Route) Title() string {
	switch r {
	case RouteHome:
		return "Institute Payment"
	case RouteRegister:
		return "Student Registration"
	case RouteLogin:
		return "Student Login"
	case RoutePaymentOptions:
		return "Payment Options"
	case RoutePaymentHistory:
		return "Payment History"
	case RouteSupport:
		return "Support"
	}
	return ""
}

// Stack is the navigation history. The root is never popped.
type Stack struct {
	routes []Route
}

// NewStack returns a stack rooted at root.
func NewStack(root Route) Stack {
	return Stack{routes: []Route{root}}
}

// Current returns the top of the stack.
func (s Stack) Current() Route {
	return s.routes[len(s.routes)-1]
}

// Depth returns the number of screens on the stack.
func (s Stack) Depth() int {
	return len(s.routes)
}

// CanGoBack reports whether Back would pop anything.
func (s Stack) CanGoBack() bool {
	return len(s.routes) > 1
}

// Push navigates to r.
func (s *Stack) Push(r Route) {
	from := s.Current()
	s.routes = append(s.routes, r)
	log.Debug(log.CatNav, "Push", "from", from, "to", r, "depth", len(s.routes))
}

// Back pops the current screen and returns it. ok is false at the root.
func (s *Stack) Back() (popped Route, ok bool) {
	if !s.CanGoBack() {
		return s.Current(), false
	}
	popped = s.Current()
	s.routes = s.routes[:len(s.routes)-1]
	log.Debug(log.CatNav, "Back", "from", popped, "to", s.Current(), "depth", len(s.routes))
	return popped, true
}

// Routes returns a copy of the stack, bottom first.
func (s Stack) Routes() []Route {
	return append([]Route(nil), s.routes...)
}
