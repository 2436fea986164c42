package catalog

// Remap reports an input whose requested id was already taken and was given
// a fresh one instead.
type Remap struct {
	Index     int   `json:"index"`
	Requested int64 `json:"requested"`
	Assigned  int64 `json:"assigned"`
}

// Normalize fills defaults and resolves id collisions for a batch of inputs.
//
// An input without an id gets its 1-based position in the batch. An id that
// was already used earlier in the batch, or (unless forceReplace) one that is
// present in current, is replaced by the next id above every id seen so far.
// With forceReplace the result depends only on the batch, so replacing with
// the same input always yields the same records.
func Normalize(current []Record, candidates []Input, forceReplace bool) ([]Record, []Remap) {
	ids := make([]int64, len(candidates))
	requested := make([]bool, len(candidates))
	for i, in := range candidates {
		if in.ID == nil {
			ids[i] = int64(i + 1)
			continue
		}
		ids[i] = *in.ID
		requested[i] = true
	}

	existing := map[int64]struct{}{}
	var maxID int64
	if !forceReplace {
		for _, r := range current {
			existing[r.ID] = struct{}{}
			if r.ID > maxID {
				maxID = r.ID
			}
		}
	}
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}

	out := make([]Record, 0, len(candidates))
	var remaps []Remap
	used := make(map[int64]struct{}, len(candidates))
	for i, in := range candidates {
		id := ids[i]
		_, dup := used[id]
		_, clash := existing[id]
		if dup || clash {
			maxID++
			if requested[i] {
				remaps = append(remaps, Remap{Index: i, Requested: id, Assigned: maxID})
			}
			id = maxID
		}
		used[id] = struct{}{}
		out = append(out, FillDefaults(in, id))
	}
	return out, remaps
}

// AppendUnique returns current followed by the normalized candidates.
// Existing records are never changed. A candidate whose id is missing, zero
// or already taken receives the next free id above the current maximum.
func AppendUnique(current []Record, candidates []Input) ([]Record, []Remap) {
	taken := make(map[int64]struct{}, len(current)+len(candidates))
	var maxID int64
	for _, r := range current {
		taken[r.ID] = struct{}{}
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	next := maxID + 1

	out := make([]Record, len(current), len(current)+len(candidates))
	copy(out, current)
	var remaps []Remap
	for i, in := range candidates {
		var id int64
		if in.ID != nil {
			id = *in.ID
		}
		_, clash := taken[id]
		if id == 0 || clash {
			for {
				if _, ok := taken[next]; !ok {
					break
				}
				next++
			}
			if in.ID != nil && id != 0 {
				remaps = append(remaps, Remap{Index: i, Requested: id, Assigned: next})
			}
			id = next
			next++
		}
		taken[id] = struct{}{}
		out = append(out, FillDefaults(in, id))
	}
	return out, remaps
}

// UniqueIDs reports whether every record has a distinct id.
func UniqueIDs(records []Record) bool {
	seen := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			return false
		}
		seen[r.ID] = struct{}{}
	}
	return true
}
