package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/timeutil"
)

// ReportOptions bound the report window around now.
type ReportOptions struct {
	Last  string
	Ahead string
}

var (
	defaultReportLast  = timeutil.Span{Days: 14}
	defaultReportAhead = timeutil.Span{Days: 7}
)

func AddReportArgs(cmd *cobra.Command, o *ReportOptions) {
	cmd.Flags().StringVar(&o.Last, "last", timeutil.FormatSpan(defaultReportLast),
		"How far back to look (for example 3d, 2w, 1mo).")
	cmd.Flags().StringVar(&o.Ahead, "ahead", timeutil.FormatSpan(defaultReportAhead),
		"How far ahead to look.")
}

// Spans parses the window flags.
func (o *ReportOptions) Spans() (last, ahead timeutil.Span, err error) {
	if last, err = timeutil.ParseSpan(o.Last, defaultReportLast); err != nil {
		return
	}
	ahead, err = timeutil.ParseSpan(o.Ahead, defaultReportAhead)
	return
}
