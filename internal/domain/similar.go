package domain

import "iranconnect-web/internal/util"

// Similar returns up to n jobs from all, other than j, that share at least
// one skill with j. Skills are compared folded. Order follows all.
func Similar(j Job, all []Job, n int) []Job {
	if n <= 0 || len(j.Skills) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(j.Skills))
	for _, s := range j.Skills {
		want[util.Fold(s)] = struct{}{}
	}

	var out []Job
	for _, o := range all {
		if o.ID == j.ID {
			continue
		}
		for _, s := range o.Skills {
			if _, ok := want[util.Fold(s)]; ok {
				out = append(out, o)
				break
			}
		}
		if len(out) == n {
			break
		}
	}
	return out
}
