package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/tickal/pkg/ticket"
)

// ReportItem is a ticket due inside the report window.
type ReportItem struct {
	Ticket  *ticket.Ticket
	Due     time.Time
	Overdue bool
}

// ReportSection groups due tickets by project.
type ReportSection struct {
	Project string
	Items   []ReportItem
}

// ReportResult is the due-date report for a window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
	Overdue  int
}

// Report returns tickets due between since and until, inclusive, grouped
// by project and ordered by due date. Unresolved tickets due before the
// service clock's now are flagged overdue.
func (s *Service) Report(ctx context.Context, f Filter, since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	now := s.now()
	result := ReportResult{Since: since, Until: until}

	grouped := make(map[string][]ReportItem)
	for _, t := range s.Query(ctx, f) {
		due, ok := ticket.DueDate.Of(t)
		if !ok || due.Before(since) || due.After(until) {
			continue
		}
		item := ReportItem{
			Ticket:  t,
			Due:     due,
			Overdue: !t.Status.Resolved() && due.Before(now),
		}
		grouped[t.Project] = append(grouped[t.Project], item)
		result.Total++
		if item.Overdue {
			result.Overdue++
		}
	}

	projects := make([]string, 0, len(grouped))
	for project := range grouped {
		projects = append(projects, project)
	}
	sort.Strings(projects)

	for _, project := range projects {
		items := grouped[project]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Due.Before(items[j].Due)
		})
		result.Sections = append(result.Sections, ReportSection{Project: project, Items: items})
	}
	return result
}
