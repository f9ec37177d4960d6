package ledger

// TopN is the maximum number of ranked rows kept per challenge.
const TopN = 20

// upsertTop merges a row into the challenge's top table: an existing row for
// the same player is replaced in place, a table under capacity appends, and
// a full table admits the row only by displacing a strictly smaller current
// minimum. Any mutation re-sorts the whole table.
func (l *Leaderboard) upsertTop(challengeID uint32, row Row) {
	key := TopKey(challengeID)
	stored, _ := getAs[[]Row](l.store, key)
	top := append([]Row(nil), stored...)

	existing := -1
	for i := range top {
		if top[i].Player == row.Player {
			existing = i
			break
		}
	}

	switch {
	case existing >= 0:
		top[existing] = row
	case len(top) < TopN:
		top = append(top, row)
	default:
		minIdx := 0
		for i := 1; i < len(top); i++ {
			if top[i].Score < top[minIdx].Score {
				minIdx = i
			}
		}
		if row.Score <= top[minIdx].Score {
			return
		}
		top[minIdx] = row
	}

	sortRows(top)
	if len(top) > TopN {
		top = top[:TopN]
	}
	l.store.Set(key, top)
}

// rowLess is the ranking order: higher score first, ties broken by ascending
// player address. The comparator is total, so equal scores always land in
// the same order regardless of submission order.
func rowLess(a, b Row) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Player.Cmp(b.Player) < 0
}

// sortRows orders rows by rowLess. Selection sort is plenty at N <= 20.
func sortRows(rows []Row) {
	for i := 0; i < len(rows); i++ {
		best := i
		for j := i + 1; j < len(rows); j++ {
			if rowLess(rows[j], rows[best]) {
				best = j
			}
		}
		if best != i {
			rows[i], rows[best] = rows[best], rows[i]
		}
	}
}
