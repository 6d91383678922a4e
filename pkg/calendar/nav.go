package calendar

import "tableflip.dev/tickal/pkg/timeutil"

// Advance moves the anchor forward by one unit of the view.
func Advance(c ViewConfig) (ViewConfig, error) {
	return Step(c, 1)
}

// Retreat moves the anchor back by one unit of the view.
func Retreat(c ViewConfig) (ViewConfig, error) {
	return Step(c, -1)
}

// Step moves the anchor by n units of the view; negative n moves back.
func Step(c ViewConfig, n int) (ViewConfig, error) {
	unit, err := c.Granularity.Unit()
	if err != nil {
		return c, err
	}
	c.Anchor = timeutil.AddUnits(c.Anchor, n, unit)
	return c, nil
}
