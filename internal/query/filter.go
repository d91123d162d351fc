package query

import (
	sq "github.com/Masterminds/squirrel"
)

// DomainOptions carries the optional restrictions a list call may impose on
// top of the search condition.
type DomainOptions struct {
	Search         sq.Sqlizer
	AttachmentType string
	VisibilityRole string
}

// DomainFilter ANDs whichever of the search, attachment-type and
// visibility-role conditions are present. Absent conditions are omitted, not
// replaced with a vacuous TRUE, so the resulting predicate stays minimal.
func DomainFilter(opts DomainOptions) sq.Sqlizer {
	var conds sq.And
	if opts.Search != nil {
		conds = append(conds, opts.Search)
	}
	if opts.AttachmentType != "" {
		conds = append(conds, sq.Eq{"attachment_type": opts.AttachmentType})
	}
	if opts.VisibilityRole != "" {
		conds = append(conds, sq.Expr("? = ANY(visibility_roles)", opts.VisibilityRole))
	}

	switch len(conds) {
	case 0:
		return nil
	case 1:
		return conds[0]
	default:
		return conds
	}
}

// Combine merges the domain filter with the opaque access fragment. When one
// side is absent the other passes through unwrapped — a single condition is
// never wrapped in a redundant AND.
func Combine(domain, access sq.Sqlizer) sq.Sqlizer {
	if domain == nil {
		return access
	}
	if access == nil {
		return domain
	}
	return sq.And{domain, access}
}
