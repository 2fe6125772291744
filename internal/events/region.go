package events

// RegionMatches reports whether an event at (city, country) falls inside
// a tracked-region list. A region is an opaque city or country name;
// the check is plain set membership, not geographic containment. Tracking
// a country does not match a city unless the row's country field matches.
//
// An empty tracked list never matches; interpreting "no regions set" is
// the caller's policy.
func RegionMatches(city, country string, tracked []string) bool {
	for _, region := range tracked {
		if region == city || region == country {
			return true
		}
	}
	return false
}
