// Package export simulates report export. It validates the selection,
// waits out a fixed delay and reports the filename a real export would
// have written. No file is produced.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrNoSections is returned when an export is requested with nothing selected.
var ErrNoSections = errors.New("please select at least one section to export")

// ErrUnknownFormat is returned by ParseFormat for unsupported formats.
var ErrUnknownFormat = errors.New("unknown export format")

// DefaultDelay is how long the simulated export takes.
const DefaultDelay = 2 * time.Second

// Format is an output file type.
type Format string

// Supported formats.
const (
	PDF  Format = "pdf"
	CSV  Format = "csv"
	PPTX Format = "pptx"
)

// Formats lists every format in display order.
var Formats = []Format{PDF, CSV, PPTX}

// ParseFormat converts user input into a Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, ".")))
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Description is the one-line blurb shown under the format choice.
func (f Format) Description() string {
	switch f {
	case PDF:
		return "Comprehensive report with charts and tables"
	case CSV:
		return "Raw data export for spreadsheet analysis"
	case PPTX:
		return "Presentation slides for investor meetings"
	}
	return ""
}

// EstimatedSize is the size hint shown in the export preview.
func (f Format) EstimatedSize() string {
	switch f {
	case PDF:
		return "2-5 MB"
	case PPTX:
		return "1-3 MB"
	}
	return "< 100 KB"
}

// Section is one report section.
type Section string

// Report sections.
const (
	SectionBudget    Section = "budget"
	SectionFunding   Section = "funding"
	SectionRunway    Section = "runway"
	SectionScenarios Section = "scenarios"
	SectionMetrics   Section = "metrics"
)

// Sections lists every section in display order.
var Sections = []Section{
	SectionBudget,
	SectionFunding,
	SectionRunway,
	SectionScenarios,
	SectionMetrics,
}

// Title is the checkbox label, e.g. "Budget Analysis".
func (s Section) Title() string {
	name := strings.ToUpper(string(s[:1])) + string(s[1:])
	if s == SectionMetrics {
		return name + " Summary"
	}
	return name + " Analysis"
}

// Blurb describes what the section contains.
func (s Section) Blurb() string {
	switch s {
	case SectionBudget:
		return "Budget breakdown & expense tracking"
	case SectionFunding:
		return "Investment rounds & dilution analysis"
	case SectionRunway:
		return "Cash flow projections & burn rate"
	case SectionScenarios:
		return "Growth scenarios & planning"
	case SectionMetrics:
		return "Key financial metrics & KPIs"
	}
	return ""
}

// Selection is the set of sections to include.
type Selection map[Section]bool

// AllSections returns a selection with every section enabled.
func AllSections() Selection {
	sel := make(Selection, len(Sections))
	for _, s := range Sections {
		sel[s] = true
	}
	return sel
}

// Toggle flips one section.
func (sel Selection) Toggle(s Section) {
	sel[s] = !sel[s]
}

// Count returns how many sections are enabled.
func (sel Selection) Count() int {
	n := 0
	for _, s := range Sections {
		if sel[s] {
			n++
		}
	}
	return n
}

// ParseSections builds a selection from a comma-separated list. Empty
// input selects everything.
func ParseSections(s string) (Selection, error) {
	if strings.TrimSpace(s) == "" {
		return AllSections(), nil
	}
	sel := make(Selection)
	for _, part := range strings.Split(s, ",") {
		name := Section(strings.ToLower(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		known := false
		for _, k := range Sections {
			if k == name {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown section %q", name)
		}
		sel[name] = true
	}
	return sel, nil
}

// Request describes one export.
type Request struct {
	Format   Format
	Sections Selection
}

// Record is one entry in the recent-exports list.
type Record struct {
	Name string
	Date time.Time
	Size string
}

// Exporter runs simulated exports and remembers them for the session.
// It is safe to read History or change the delay while an Export is in
// flight; a running export keeps the delay it started with.
type Exporter struct {
	now func() time.Time

	mu      sync.Mutex
	delay   time.Duration
	history []Record
}

// New returns an exporter with the given delay, seeded with the sample
// history. A non-positive delay uses DefaultDelay.
func New(delay time.Duration) *Exporter {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Exporter{
		delay:   delay,
		now:     time.Now,
		history: SampleHistory(),
	}
}

// Delay returns the current simulated export duration.
func (e *Exporter) Delay() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.delay
}

// SetDelay changes the duration of later exports. Non-positive values are
// ignored.
func (e *Exporter) SetDelay(d time.Duration) {
	if d <= 0 {
		return
	}
	e.mu.Lock()
	e.delay = d
	e.mu.Unlock()
}

// Filename returns the name an export of format f on day would be saved as.
func Filename(f Format, day time.Time) string {
	return fmt.Sprintf("financial-report-%s.%s", day.Format(time.DateOnly), f)
}

// Export waits out the delay and returns the record of the simulated file.
// Cancelling ctx aborts the wait; nothing is recorded in that case.
func (e *Exporter) Export(ctx context.Context, req Request) (Record, error) {
	if req.Sections.Count() == 0 {
		return Record{}, ErrNoSections
	}
	if req.Format == "" {
		req.Format = PDF
	}

	timer := time.NewTimer(e.Delay())
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return Record{}, ctx.Err()
	case <-timer.C:
	}

	now := e.now()
	rec := Record{
		Name: Filename(req.Format, now),
		Date: now,
		Size: req.Format.EstimatedSize(),
	}
	e.mu.Lock()
	e.history = append([]Record{rec}, e.history...)
	e.mu.Unlock()
	return rec, nil
}

// History returns recent exports, newest first.
func (e *Exporter) History() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Record, len(e.history))
	copy(out, e.history)
	return out
}

// SampleHistory returns the recent-exports list a fresh session shows.
func SampleHistory() []Record {
	day := func(s string) time.Time {
		t, _ := time.Parse(time.DateOnly, s)
		return t
	}
	return []Record{
		{Name: "financial-report-2024-01-15.pdf", Date: day("2024-01-15"), Size: "3.2 MB"},
		{Name: "budget-analysis-2024-01-10.csv", Date: day("2024-01-10"), Size: "45 KB"},
		{Name: "investor-deck-2024-01-05.pptx", Date: day("2024-01-05"), Size: "2.1 MB"},
	}
}
