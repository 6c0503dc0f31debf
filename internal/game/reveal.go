package game

// RevealState holds the found flag of every indexed key.
// Flags only ever go from false to true.
type RevealState struct {
	found map[string]bool
	count int
}

// NewRevealState starts every key of ix hidden.
func NewRevealState(ix *Index) *RevealState {
	rs := &RevealState{found: make(map[string]bool, ix.Len())}
	for _, k := range ix.keys {
		rs.found[k] = false
	}
	return rs
}

// Revealed reports whether key has been found.
func (rs *RevealState) Revealed(key string) bool { return rs.found[key] }

// Has reports whether key belongs to the state's universe.
func (rs *RevealState) Has(key string) bool {
	_, ok := rs.found[key]
	return ok
}

// Mark reveals key. It reports whether the flag changed; unknown and
// already-revealed keys leave the state alone.
func (rs *RevealState) Mark(key string) bool {
	done, ok := rs.found[key]
	if !ok || done {
		return false
	}
	rs.found[key] = true
	rs.count++
	return true
}

// MarkAll reveals every key and returns how many changed.
func (rs *RevealState) MarkAll() int {
	n := 0
	for k, done := range rs.found {
		if !done {
			rs.found[k] = true
			n++
		}
	}
	rs.count += n
	return n
}

// Found is the number of revealed keys.
func (rs *RevealState) Found() int { return rs.count }

// Len is the number of keys.
func (rs *RevealState) Len() int { return len(rs.found) }

// Hidden is the number of keys still to find.
func (rs *RevealState) Hidden() int { return len(rs.found) - rs.count }
