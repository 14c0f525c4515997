package campus

import "regexp"

var (
	mainEntrancePattern = regexp.MustCompile(`(?i)main|entrance|entry|principal|primary`)
	sideEntrancePattern = regexp.MustCompile(`(?i)\b(back|rear|side)\b`)
	doorPattern         = regexp.MustCompile(`(?i)door|entrance|gate`)
)

// IsMainEntranceName reports whether a POI called name is a main entrance.
// Back, rear and side entrances never count as main entrances.
func IsMainEntranceName(name string) bool {
	return mainEntrancePattern.MatchString(name) && !sideEntrancePattern.MatchString(name)
}

// IsSideEntranceName reports whether name describes a back, rear or side door.
func IsSideEntranceName(name string) bool {
	return sideEntrancePattern.MatchString(name)
}

// IsDoorName reports whether name refers to a door, entrance or gate.
func IsDoorName(name string) bool {
	return doorPattern.MatchString(name)
}
