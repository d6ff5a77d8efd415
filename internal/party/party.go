// Package party maps raw affiliation labels from the tweet datasets onto
// the canonical party names used by every aggregated view.
package party

// Canonical party names.
const (
	HadashTaal         = "Hadash-Ta'al"
	Raam               = "Ra'am"
	IslamicIndependent = "Islamic / Independent"
	Activists          = "Activists"
)

// groupMap is the one raw-label lookup table. Every consumer of a raw
// group label goes through Normalize so a label always lands in the same
// bucket.
var groupMap = map[string]string{
	"Hadash-Ta'al":        HadashTaal,
	"Ra'am":               Raam,
	"Islamic/Independent": IslamicIndependent,
	"Activist":            Activists,
}

// Normalize returns the canonical party for a raw group label. Labels
// missing from the table are returned unchanged and form their own bucket.
func Normalize(group string) string {
	if canonical, ok := groupMap[group]; ok {
		return canonical
	}
	return group
}

// All returns the canonical parties in sidebar order.
func All() []string {
	return []string{HadashTaal, Raam, IslamicIndependent, Activists}
}

// IsCanonical reports whether name is one of the canonical parties.
func IsCanonical(name string) bool {
	for _, p := range All() {
		if p == name {
			return true
		}
	}
	return false
}
