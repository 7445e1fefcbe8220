// Package policy decides whether a principal may perform an action on a
// target. Every mutation orchestration consults Authorize with the same
// tagged action/target pair instead of repeating inline role checks.
package policy

import (
	"github.com/dmitrijs2005/catkeeper/internal/common"
	"github.com/dmitrijs2005/catkeeper/internal/server/auth"
	"github.com/dmitrijs2005/catkeeper/internal/server/models"
)

type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionDelete
)

type Target int

const (
	// TargetUser is a user record addressed by identifier.
	TargetUser Target = iota
	// TargetCurrentUser is the principal's own record.
	TargetCurrentUser
	// TargetCat is a cat record.
	TargetCat
)

// Authorize returns nil when the principal may perform action on target.
//
// User records addressed by identifier are admin-only to mutate. The
// principal's own record and cat records only require an authenticated
// principal; cat update/delete deliberately does not re-check ownership
// (user and cat mutation rules are intentionally asymmetric).
func Authorize(p *auth.Principal, action Action, target Target) error {
	switch target {
	case TargetUser:
		if p == nil || p.Role != models.RoleAdmin {
			return common.E(common.ErrForbidden, "Admin only")
		}
	case TargetCurrentUser, TargetCat:
		if p == nil {
			return common.E(common.ErrPrincipalMissing, "User missing")
		}
	}
	return nil
}
