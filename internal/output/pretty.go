package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/bgricker/tcreport/internal/report"
	"github.com/bgricker/tcreport/internal/status"
)

const unknownField = "UNKNOWN"

// PrettyRenderer renders a report as a text table followed by a summary.
type PrettyRenderer struct {
	out    io.Writer
	styles map[status.Code]lipgloss.Style
	header lipgloss.Style
}

// NewPretty creates a PrettyRenderer writing to the provided writer. Colour
// is only emitted when out is a terminal.
func NewPretty(out io.Writer) *PrettyRenderer {
	r := lipgloss.NewRenderer(out)
	return &PrettyRenderer{
		out: out,
		styles: map[status.Code]lipgloss.Style{
			status.Passed:      r.NewStyle().Foreground(lipgloss.Color("2")),
			status.Failed:      r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			status.Manual:      r.NewStyle().Foreground(lipgloss.Color("3")),
			status.NotFound:    r.NewStyle().Faint(true),
			status.UnknownType: r.NewStyle().Foreground(lipgloss.Color("5")),
			status.Invalid:     r.NewStyle().Foreground(lipgloss.Color("1")),
		},
		header: r.NewStyle().Bold(true),
	}
}

// Render writes one line per entry in catalog order, then the summary.
func (p *PrettyRenderer) Render(rep report.Report) error {
	var buf bytes.Buffer
	for _, e := range rep.Entries {
		fmt.Fprintf(&buf, "%-5s | %-13s | %s\n", orUnknown(e.ID), orUnknown(e.Type), p.styleStatus(e.Status))
	}
	p.writeSummary(&buf, rep.Counters)
	_, err := buf.WriteTo(p.out)
	return err
}

func (p *PrettyRenderer) writeSummary(buf *bytes.Buffer, c report.Counters) {
	fmt.Fprintf(buf, "\n%s\n", p.header.Render("Summary"))
	fmt.Fprintf(buf, "  Total tests: %d\n", c.Total)
	fmt.Fprintf(buf, "  Manual: %d (%s)\n", c.Manual, report.Percent(c.Manual, c.Total))
	fmt.Fprintf(buf, "  Automated unit: %d (%s)\n", c.Automated, report.Percent(c.Automated, c.Total))
	if c.Other > 0 {
		fmt.Fprintf(buf, "  Other: %d (%s)\n", c.Other, report.Percent(c.Other, c.Total))
	}
	fmt.Fprintf(buf, "  Automated unit tests:\n")
	fmt.Fprintf(buf, "    With execution records: %d (%s)\n", c.WithRecords, report.Percent(c.WithRecords, c.Automated))
	fmt.Fprintf(buf, "    Passed: %d (%s)\n", c.Passed, report.Percent(c.Passed, c.Automated))
	fmt.Fprintf(buf, "    Failed: %d (%s)\n", c.Failed, report.Percent(c.Failed, c.Automated))
	fmt.Fprintf(buf, "    Not found: %d (%s)\n", c.NotFound, report.Percent(c.NotFound, c.Automated))
}

func (p *PrettyRenderer) styleStatus(st status.Status) string {
	style, ok := p.styles[st.Code]
	if !ok {
		return st.Text
	}
	return style.Render(st.Text)
}

func orUnknown(s string) string {
	if s == "" {
		return unknownField
	}
	return s
}
