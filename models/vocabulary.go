package models

// Fixed tag vocabularies. These mirror the options compiled into the posting
// form; a post must carry one value from each list.
var (
	Positions = []string{"Point Guard", "Shooting Guard", "Small Forward", "Power Forward", "Center"}
	Regions   = []string{"Northeast", "Southeast", "Midwest", "Southwest", "West Coast", "International"}
	Divisions = []string{"NCAA D1", "NCAA D2", "NCAA D3", "NAIA", "JUCO", "High School", "Overseas Pro"}
)

// ValidPosition reports whether s is one of the known positions.
func ValidPosition(s string) bool { return containsTag(Positions, s) }

// ValidRegion reports whether s is one of the known regions.
func ValidRegion(s string) bool { return containsTag(Regions, s) }

// ValidDivision reports whether s is one of the known divisions.
func ValidDivision(s string) bool { return containsTag(Divisions, s) }

func containsTag(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
