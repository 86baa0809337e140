package services

import (
	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/navigator"
)

// Decision is the outcome of guarding a protected screen.
type Decision struct {
	Allow    bool
	Wait     bool   // session still loading
	Redirect string // where to go instead, when not allowed
}

// Guard decides whether the session may open a protected screen. Anonymous
// users go to the login page; non-admins asking for an admin screen go to
// the dashboard.
func Guard(s Session, adminOnly bool) Decision {
	switch {
	case s.Loading:
		return Decision{Wait: true}
	case s.User == nil:
		return Decision{Redirect: navigator.LoginPath}
	case adminOnly && s.User.Role != models.RoleAdmin:
		return Decision{Redirect: navigator.DashboardPath}
	default:
		return Decision{Allow: true}
	}
}
