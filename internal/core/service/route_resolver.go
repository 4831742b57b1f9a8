package service

import "github.com/tavolo/ordering-gateway/internal/core/domain"

// ViewID names a client view the resolver can direct a navigation to.
type ViewID string

const (
	ViewHome          ViewID = "home"
	ViewLogin         ViewID = "login"
	ViewSignup        ViewID = "signup"
	ViewOrders        ViewID = "orders"
	ViewAdmin         ViewID = "admin"
	ViewRoleSelection ViewID = "role-selection"
	ViewProfile       ViewID = "profile"
	ViewUsers         ViewID = "users"
	ViewMenu          ViewID = "menu"
	ViewCreateOrders  ViewID = "create-orders"
	ViewNotFound      ViewID = "not-found"
)

// Decision is the outcome of resolving a navigation target: exactly one of
// Render and RedirectTo is set.
type Decision struct {
	Render     ViewID `json:"render,omitempty"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

type routePolicy struct {
	view ViewID
	// allow is nil for unconditional routes.
	allow    func(s domain.Session) bool
	fallback string
}

func authenticated(s domain.Session) bool {
	return s.IsAuthenticated()
}

func anonymousOnly(s domain.Session) bool {
	return !s.IsAuthenticated()
}

func anyOrderingRole(s domain.Session) bool {
	return s.IsAuthenticated() && (s.HasRole(domain.RoleUser) || s.HasRole(domain.RoleAdmin))
}

func adminOnly(s domain.Session) bool {
	return s.IsAuthenticated() && s.HasRole(domain.RoleAdmin)
}

// routeTable is the gating policy, keyed by navigation path. Gating always
// derives from the full role set; the selected role only influences view
// content, not access.
var routeTable = map[string]routePolicy{
	"/":               {view: ViewHome},
	"/login":          {view: ViewLogin, allow: anonymousOnly, fallback: "/"},
	"/signup":         {view: ViewSignup},
	"/orders":         {view: ViewOrders, allow: anyOrderingRole, fallback: "/login"},
	"/admin":          {view: ViewAdmin, allow: adminOnly, fallback: "/login"},
	"/role-selection": {view: ViewRoleSelection, allow: authenticated, fallback: "/login"},
	"/profile":        {view: ViewProfile},
	"/users":          {view: ViewUsers},
	"/menuitems":      {view: ViewMenu},
	"/create-orders":  {view: ViewCreateOrders},
}

// RouteResolver decides, per navigation target, whether to render the
// destination or redirect elsewhere.
type RouteResolver struct{}

func NewRouteResolver() *RouteResolver {
	return &RouteResolver{}
}

// Resolve maps a path and session to a render-or-redirect decision. Unknown
// paths render the not-found view.
func (r *RouteResolver) Resolve(path string, session domain.Session) Decision {
	policy, ok := routeTable[path]
	if !ok {
		return Decision{Render: ViewNotFound}
	}
	if policy.allow != nil && !policy.allow(session) {
		return Decision{RedirectTo: policy.fallback}
	}
	return Decision{Render: policy.view}
}

// DefaultLanding returns the path a principal lands on after login or role
// selection: admins to the dashboard, everyone else to orders. A multi-role
// principal without a selected role is sent to role selection first.
func (r *RouteResolver) DefaultLanding(session domain.Session) string {
	if !session.IsAuthenticated() {
		return "/login"
	}
	if session.MultiRole() && session.SelectedRole == "" {
		return "/role-selection"
	}
	if r.activeRole(session) == domain.RoleAdmin {
		return "/admin"
	}
	return "/orders"
}

// ShowAdminNav reports whether admin affordances (nav entries, action
// buttons) should be shown. Keyed off the active role for consistency with
// the role-selection flow, not the full role set.
func (r *RouteResolver) ShowAdminNav(session domain.Session) bool {
	return r.activeRole(session) == domain.RoleAdmin
}

// activeRole is the single role view content keys off: the selected role when
// one is set, otherwise the principal's only role.
func (r *RouteResolver) activeRole(session domain.Session) string {
	if session.SelectedRole != "" {
		return session.SelectedRole
	}
	if roles := session.Roles(); len(roles) == 1 {
		return roles[0]
	}
	return ""
}
