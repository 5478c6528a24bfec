package planner

// RemediationMemory is the planner's escalation ladder: a mapping from
// ProblemInfo to the last Action emitted for it. Owned solely by the
// reconciliation loop's single goroutine — no locking required (spec.md
// §5: "Remediation memory is owned by the planner alone and requires no
// lock").
//
// Entries also track the last cycle they were observed in, so that stale
// problems (ones that stopped appearing in classification output) can be
// purged rather than retained for the process lifetime — the bounded GC
// policy spec.md §9 leaves as an open re-architecture note and SPEC_FULL.md
// resolves concretely: an entry is purged once it has gone two consecutive
// cycles without being observed.
type RemediationMemory struct {
	entries map[ProblemInfo]memoryEntry
}

type memoryEntry struct {
	action        ActionKind
	lastSeenCycle int
}

// NewRemediationMemory returns an empty RemediationMemory.
func NewRemediationMemory() *RemediationMemory {
	return &RemediationMemory{entries: make(map[ProblemInfo]memoryEntry)}
}

// Observe marks p as seen during cycle and returns the last action
// recorded for it, if any. The classifier calls this once per non-coherent
// component it examines, which both consults and keeps the entry alive.
func (m *RemediationMemory) Observe(p ProblemInfo, cycle int) (ActionKind, bool) {
	entry, ok := m.entries[p]
	if !ok {
		return 0, false
	}
	entry.lastSeenCycle = cycle
	m.entries[p] = entry
	return entry.action, true
}

// Record stores the action the planner emitted for p during cycle,
// overwriting any prior entry.
func (m *RemediationMemory) Record(p ProblemInfo, action ActionKind, cycle int) {
	m.entries[p] = memoryEntry{action: action, lastSeenCycle: cycle}
}

// Purge removes every entry that has not been Observe'd or Record'ed in
// either of the two most recent cycles (cycle and cycle-1), per the
// bounded GC policy above.
func (m *RemediationMemory) Purge(cycle int) {
	for p, entry := range m.entries {
		if cycle-entry.lastSeenCycle > 1 {
			delete(m.entries, p)
		}
	}
}

// Len reports the number of retained entries, for tests and metrics.
func (m *RemediationMemory) Len() int {
	return len(m.entries)
}
