package path

// SearchOptions restrict which edges a search may use.
type SearchOptions byte

const (
	accessibleOnly SearchOptions = 1 << iota // skip edges which are not wheelchair accessible
	avoidStairs                              // skip stairs edges
)

// Create a new SearchOptions (which in initially empty)
func MakeSearchOptions() SearchOptions {
	return SearchOptions(0)
}

// Set the defined options and return a new SearchOptions
func (so SearchOptions) Set(o SearchOptions) SearchOptions {
	return so | o
}

// Reset the defined options and return a new SearchOptions
func (so SearchOptions) Reset(o SearchOptions) SearchOptions {
	return so & ^o
}

func (so SearchOptions) SetAccessibleOnly(flag bool) SearchOptions {
	if flag {
		return so.Set(accessibleOnly)
	}
	return so.Reset(accessibleOnly)
}

func (so SearchOptions) IsAccessibleOnly() bool {
	return so&accessibleOnly != 0
}

func (so SearchOptions) SetAvoidStairs(flag bool) SearchOptions {
	if flag {
		return so.Set(avoidStairs)
	}
	return so.Reset(avoidStairs)
}

func (so SearchOptions) AvoidsStairs() bool {
	return so&avoidStairs != 0
}
