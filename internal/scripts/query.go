package scripts

import (
	"context"
	"fmt"

	"workshop/internal/auth"
	"workshop/internal/common"
)

const (
	// DefaultLimit applies when the caller supplies no page size.
	DefaultLimit = 30
	// MaxLimit caps the page size; larger requests are clamped, not refused.
	MaxLimit = 100

	// legacyDefaultSort is what the original system fell back to for a
	// missing sort option. It was never added to the allowed set, so it maps
	// to no ordering at all; supplied explicitly it fails validation like any
	// other unknown value. Preserved as observable behavior rather than
	// silently fixed.
	legacyDefaultSort = "newest"
)

// SortKey is the normalized ordering of a listing.
type SortKey int

const (
	SortNone SortKey = iota
	SortNewest
	SortPopular
)

// Options are the raw caller-supplied listing filters. Nil pointer fields
// mean "not provided".
type Options struct {
	Language string
	Author   string
	Limit    *int
	Sort     string
}

// Query is the bounded, normalized descriptor handed to the repository.
// Building it never touches script storage.
type Query struct {
	// Search expands to an OR of contains-matches over name, description,
	// and code. Case sensitivity is whatever the store's LIKE provides.
	Search     string
	Language   string
	Author     string
	Visibility auth.Visibility
	Sort       SortKey
	Limit      int
}

// QueryBuilder translates free text plus filter options into a Query,
// consulting the access engine for the visibility clause.
type QueryBuilder struct {
	access *auth.Access
}

func NewQueryBuilder(access *auth.Access) *QueryBuilder {
	return &QueryBuilder{access: access}
}

// Build normalizes opts in order: language/author, limit (default, lower
// bound, clamp), sort (default-then-validate), free text, visibility, sort
// key. A nil opts takes every default.
func (b *QueryBuilder) Build(ctx context.Context, search string, opts *Options, token string) (Query, error) {
	q := Query{Search: search, Limit: DefaultLimit}

	if opts != nil {
		q.Language = opts.Language
		q.Author = opts.Author

		if opts.Limit != nil {
			limit := *opts.Limit
			if limit < 1 {
				return Query{}, fmt.Errorf("%w: limit below 1", common.ErrInvalidFilter)
			}
			if limit > MaxLimit {
				limit = MaxLimit
			}
			q.Limit = limit
		}

		sort := opts.Sort
		supplied := sort != ""
		if !supplied {
			sort = legacyDefaultSort
		}
		switch sort {
		case "new":
			q.Sort = SortNewest
		case "popular":
			q.Sort = SortPopular
		case legacyDefaultSort:
			if supplied {
				// The legacy default never made it into the allowed set, so
				// asking for it by name is rejected exactly like "oldest".
				return Query{}, fmt.Errorf("%w: unknown sort %q", common.ErrInvalidFilter, sort)
			}
			q.Sort = SortNone
		default:
			return Query{}, fmt.Errorf("%w: unknown sort %q", common.ErrInvalidFilter, sort)
		}
	}

	q.Visibility = b.access.VisibilityClause(ctx, token)
	return q, nil
}
