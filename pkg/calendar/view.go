package calendar

import "tableflip.dev/tickal/pkg/ticket"

// View is a fully computed render of a configuration: either a grid with
// its buckets, or a list projection.
type View struct {
	Config  ViewConfig
	Grid    Grid
	Buckets Buckets
	List    *ListProjection
}

// Build validates c and computes the view over tickets. Owner filtering
// applies to every granularity.
func Build(c ViewConfig, tickets []*ticket.Ticket) (View, error) {
	if err := c.Validate(); err != nil {
		return View{}, err
	}
	v := View{Config: c}
	if c.Granularity == List {
		p, err := ProjectList(c, tickets)
		if err != nil {
			return View{}, err
		}
		v.List = &p
		return v, nil
	}

	grid, err := BuildGrid(c.Anchor, c.Granularity, c.BusinessHoursOnly)
	if err != nil {
		return View{}, err
	}
	buckets, err := Bucket(grid, FilterOwners(tickets, c.Owners), c.DateField)
	if err != nil {
		return View{}, err
	}
	v.Grid = grid
	v.Buckets = buckets
	return v, nil
}

// FilterOwners keeps tickets assigned to one of owners; an empty owner set
// keeps everything.
func FilterOwners(tickets []*ticket.Ticket, owners []string) []*ticket.Ticket {
	if len(owners) == 0 {
		return tickets
	}
	want := make(map[string]bool, len(owners))
	for _, o := range owners {
		want[o] = true
	}
	out := make([]*ticket.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t != nil && want[t.Assignee] {
			out = append(out, t)
		}
	}
	return out
}
