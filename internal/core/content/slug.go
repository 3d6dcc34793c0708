// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Assigner picks a slug that is unique within a content kind.
//
// It keeps no state between calls; uniqueness is decided entirely by the
// injected [SlugChecker].
type Assigner struct {
	checker    SlugChecker
	collisions *prometheus.CounterVec
}

// NewAssigner builds an [Assigner]. collisions may be nil.
func NewAssigner(checker SlugChecker, collisions *prometheus.CounterVec) *Assigner {
	return &Assigner{checker: checker, collisions: collisions}
}

/*
AssignUnique returns base, or the first of base-1, base-2, ... that no other
item of kind holds.

Description: A candidate held by excludeID counts as free, which lets an
item keep its own slug on update. An empty base falls back to the kind name
so the result is never empty. The search has no upper bound; every rejected
candidate is counted in the slug collision metric. It stops early only when
ctx is cancelled or the checker fails.
*/
func (assigner *Assigner) AssignUnique(ctx context.Context, kind Kind, base, excludeID string) (string, error) {
	if base == "" {
		base = kind.Name
	}

	candidate := base
	for counter := 1; ; counter++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		holder, err := assigner.checker.FindBySlug(ctx, kind.Name, candidate)
		if err != nil {
			return "", err
		}
		if holder == nil || (excludeID != "" && holder.ID == excludeID) {
			return candidate, nil
		}

		if assigner.collisions != nil {
			assigner.collisions.WithLabelValues(kind.Name).Inc()
		}
		candidate = base + "-" + strconv.Itoa(counter)
	}
}
