package ledger

import (
	"time"

	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/pkg/points"
)

// Decay reduces value across the interval [from, to) using the decay rate of
// whichever policy version was active during each sub-interval. The interval
// is split at every activation boundary inside it, so a mid-interval policy
// change applies the old rate up to the boundary and the new rate after it.
// The result floors at zero and, once zero, stays zero.
//
// Versions must be ordered ascending by activation time; versions activated
// after to are ignored. No version active during a sub-interval means no
// decay accrues for it.
func Decay(value points.Points, from, to time.Time, versions []policy.PolicyVersion) points.Points {
	if value == points.Zero || !to.After(from) {
		return value
	}

	cursor := from
	governing := -1
	for i := range versions {
		if !versions[i].ActivatedAt.After(from) {
			governing = i
		}
	}

	for i := governing + 1; i <= len(versions); i++ {
		end := to
		if i < len(versions) && versions[i].ActivatedAt.Before(to) {
			end = versions[i].ActivatedAt
		}

		if governing >= 0 && end.After(cursor) {
			elapsed := end.Unix() - cursor.Unix()
			value = value.Sub(versions[governing].DecayPerDay.DecayOver(elapsed))
			if value == points.Zero {
				return value
			}
		}

		cursor = end
		governing = i
	}

	return value
}
