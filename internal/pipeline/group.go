package pipeline

import (
	"log"
	"sort"
)

// SectionGroup is one section's students in display order.
type SectionGroup struct {
	Section  string
	Students []FinalRecord
}

// GroupBySection partitions records by section. Sections come out in sorted
// order and students within a section sort by last name then first name, so
// reports are reproducible run to run. Per-section counts are logged as they
// are in the original workflow.
func GroupBySection(recs []FinalRecord) []SectionGroup {
	bySection := map[string][]FinalRecord{}
	for _, r := range recs {
		bySection[r.Section] = append(bySection[r.Section], r)
	}

	sections := make([]string, 0, len(bySection))
	for s := range bySection {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	groups := make([]SectionGroup, 0, len(sections))
	for _, s := range sections {
		students := bySection[s]
		sort.Slice(students, func(i, j int) bool {
			if students[i].LastName != students[j].LastName {
				return students[i].LastName < students[j].LastName
			}
			return students[i].FirstName < students[j].FirstName
		})
		log.Printf("section %s: %d students", s, len(students))
		groups = append(groups, SectionGroup{Section: s, Students: students})
	}
	return groups
}
