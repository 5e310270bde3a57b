// Package catalog holds the record-level rules of the OpenNGC catalog that sit
// between identifier lookup and search.
package catalog

import (
	"context"
	"strings"

	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/lookup"
	"github.com/mohammed-shakir/ongc/internal/names"
)

// MaxRedirects is how many duplicate hops ResolveDuplicate follows.
const MaxRedirects = 1

// ResolveDuplicate replaces a Dup record with the main record it points to:
// the first NGC cross reference when there is one, else the first IC one.
// Non-duplicates, and any record when keepDup is set, are returned as is.
// A redirect that ends on another duplicate, or that names nothing
// recognizable, fails with model.ErrUnresolvedDuplicate; a well-formed target
// missing from the store fails with model.ErrObjectNotFound.
func ResolveDuplicate(ctx context.Context, l lookup.Lookup, o *model.Object, keepDup bool) (*model.Object, error) {
	if keepDup || !o.IsDuplicate() {
		return o, nil
	}

	chain := []string{o.Name}
	cur := o
	for hop := 0; hop < MaxRedirects; hop++ {
		target, ok := redirectTarget(cur)
		if !ok {
			return nil, &model.DuplicateChainError{Chain: chain, Reason: "no NGC or IC cross reference to redirect to"}
		}
		id, err := names.Parse(target)
		if err != nil {
			return nil, &model.DuplicateChainError{Chain: append(chain, target), Reason: "redirect target is not a catalog name"}
		}
		next, err := l.LookupOne(ctx, id)
		if err != nil {
			return nil, err
		}
		chain = append(chain, next.Name)
		if !next.IsDuplicate() {
			return next, nil
		}
		cur = next
	}
	return nil, &model.DuplicateChainError{Chain: chain, Reason: "redirect ends on another duplicate"}
}

func redirectTarget(o *model.Object) (string, bool) {
	if ref := first(o.NGC); ref != "" {
		return "NGC" + ref, true
	}
	if ref := first(o.IC); ref != "" {
		return "IC" + ref, true
	}
	return "", false
}

func first(list string) string {
	head, _, _ := strings.Cut(list, ",")
	return strings.TrimSpace(head)
}
