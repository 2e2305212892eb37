package dataprocessing

import "gdchart/pkg/contracts/domain"

// GroupByManagerType partitions records into the three tenure-type buckets,
// always returned in the order Permanent, Interim, Caretaker, and each bucket
// by manager in order of first appearance. Both levels keep input order.
// Records without a recognized manager type are returned as ungrouped.
func GroupByManagerType(records []domain.MatchRecord) ([]domain.ManagerTypeGroup, []domain.MatchRecord) {
	types := domain.ManagerTypes()
	groups := make([]domain.ManagerTypeGroup, len(types))
	bucket := make(map[domain.ManagerType]int, len(types))
	for i, t := range types {
		groups[i] = domain.ManagerTypeGroup{Type: t, Managers: []domain.ManagerGroup{}}
		bucket[t] = i
	}

	// manager index within each bucket
	managerIdx := make([]map[string]int, len(types))
	for i := range managerIdx {
		managerIdx[i] = make(map[string]int)
	}

	var ungrouped []domain.MatchRecord
	for _, rec := range records {
		b, ok := bucket[rec.ManagerType]
		if !ok || !rec.HasManager() {
			ungrouped = append(ungrouped, rec)
			continue
		}

		g := &groups[b]
		m, seen := managerIdx[b][rec.Manager]
		if !seen {
			m = len(g.Managers)
			managerIdx[b][rec.Manager] = m
			g.Managers = append(g.Managers, domain.ManagerGroup{Manager: rec.Manager, Type: rec.ManagerType})
		}
		g.Managers[m].Records = append(g.Managers[m].Records, rec)
	}

	return groups, ungrouped
}

// ManagerRuns splits records into maximal runs of consecutive matches with
// the same manager and manager type. Consecutive records without a manager
// form a run of their own.
func ManagerRuns(records []domain.MatchRecord) [][]domain.MatchRecord {
	var runs [][]domain.MatchRecord
	start := 0
	for i := 1; i <= len(records); i++ {
		if i < len(records) &&
			records[i].Manager == records[start].Manager &&
			records[i].ManagerType == records[start].ManagerType {
			continue
		}
		if i > start {
			runs = append(runs, records[start:i])
		}
		start = i
	}
	return runs
}
