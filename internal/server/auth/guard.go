package auth

import (
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Policy is the access requirement attached to an endpoint.
//
// Public endpoints skip authentication entirely. Otherwise an identity is
// required and, when Roles is non-empty, it must hold at least one of them.
type Policy struct {
	Public bool
	Roles  []models.Role
}

func Public() Policy {
	return Policy{Public: true}
}

func Authenticated() Policy {
	return Policy{}
}

func RequireRoles(roles ...models.Role) Policy {
	return Policy{Roles: roles}
}

// Authorize decides whether identity satisfies policy. It returns nil on
// allow, common.ErrorUnauthenticated when there is no identity and
// common.ErrorForbidden when the roles do not intersect.
func Authorize(identity *models.Identity, policy Policy) error {
	if policy.Public {
		return nil
	}
	if identity == nil {
		return common.ErrorUnauthenticated
	}
	if len(policy.Roles) == 0 {
		return nil
	}
	if !models.HasAnyRole(identity.Roles, policy.Roles) {
		return common.ErrorForbidden
	}
	return nil
}
