// Package access produces the visibility predicate for a caller on a record
// type. The query pipeline treats the result as a black box: it only ever
// ANDs the fragment with its own predicate and never inspects its internals.
package access

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gestionale/gestionale/internal/core/identity"
)

// Decider yields the filter fragment expressing which records of a type the
// caller may see. A nil fragment means "no restriction".
type Decider interface {
	FilterFor(ctx context.Context, caller identity.Identity, typeSlug string) (sq.Sqlizer, error)
}

// RoleDecider is the default policy: admins see everything; everyone else
// sees records they own, records with no visibility restriction, and records
// whose visibility roles overlap the caller's roles.
type RoleDecider struct{}

func NewRoleDecider() *RoleDecider {
	return &RoleDecider{}
}

func (d *RoleDecider) FilterFor(_ context.Context, caller identity.Identity, _ string) (sq.Sqlizer, error) {
	if caller.IsAdmin {
		return nil, nil
	}

	frag := sq.Or{
		sq.Expr("visibility_roles = '{}'"),
		sq.Eq{"owner_id": caller.UserID},
	}
	if len(caller.Roles) > 0 {
		frag = append(frag, sq.Expr("visibility_roles && ?", pq.Array(caller.Roles)))
	}
	return frag, nil
}
