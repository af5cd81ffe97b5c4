// Package report turns derived series into chart pages and binds them into
// one report document.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gitdrift/gitdrift/internal/report/htmlpage"
	"github.com/gitdrift/gitdrift/internal/series"
)

// DefaultTitle is the report document title when none is configured.
const DefaultTitle = "Summary Variables Across Git Commits"

const indexDescription = "One page per tracked field; charts are interactive."

// Sink receives the derived series of each classified field, then the
// cross-field overview, and finally Finish to seal the report document. A
// field whose Write call fails is omitted from the document entirely.
type Sink interface {
	WriteNumeric(field string, dist series.Distribution, sums series.Summary) error
	WriteCategorical(field string, counts series.ValueCounts, trans series.Transitions) error
	WriteOverview(overview series.Overview) error
	Finish() error
}

// HTMLSink renders one HTML page per field plus an index document carrying
// the report title, author and creation timestamp in its metadata.
type HTMLSink struct {
	renderer *htmlpage.MultiPageRenderer
	cOpts    *htmlpage.ChartOpts
	palette  htmlpage.Palette
	pages    []htmlpage.PageMeta
	used     map[string]bool
	log      *slog.Logger
}

var _ Sink = (*HTMLSink)(nil)

// NewHTMLSink creates the output directory and an HTMLSink writing into it.
func NewHTMLSink(dir, title, author string, theme htmlpage.Theme, logger *slog.Logger) (*HTMLSink, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if title == "" {
		title = DefaultTitle
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	return &HTMLSink{
		renderer: &htmlpage.MultiPageRenderer{OutputDir: dir, Title: title, Author: author, Theme: theme},
		cOpts:    htmlpage.NewChartOpts(theme),
		palette:  htmlpage.GetPalette(theme),
		used:     make(map[string]bool),
		log:      logger,
	}, nil
}

// WriteNumeric renders a numeric field's page: the per-commit boxplot and
// the column-sum line.
func (s *HTMLSink) WriteNumeric(field string, dist series.Distribution, sums series.Summary) error {
	sections := []htmlpage.Section{
		{
			Title:    "Distribution",
			Subtitle: "per-record values for each commit",
			Hint: htmlpage.Hint{Items: []string{
				"Each box spans min, lower quartile, median, upper quartile and max across record identifiers.",
			}},
			Chart: distributionChart(s.cOpts, dist),
		},
		{
			Title:    "Column Sum",
			Subtitle: "sum across record identifiers per commit",
			Chart:    summaryChart(s.cOpts, s.palette, sums),
		},
	}

	return s.renderFieldPage(field, "numeric", len(dist.Commits), sections)
}

// WriteCategorical renders a categorical field's page: stacked value counts
// and, when more than one commit carried the field, grouped transitions.
func (s *HTMLSink) WriteCategorical(field string, counts series.ValueCounts, trans series.Transitions) error {
	sections := []htmlpage.Section{
		{
			Title:    "Value Counts",
			Subtitle: "records per value for each commit",
			Hint: htmlpage.Hint{Items: []string{
				"Bars stack to the number of records carrying the field at that commit.",
			}},
			Chart: valueCountChart(s.cOpts, s.palette, counts),
		},
	}

	if len(trans.Steps) > 0 {
		sections = append(sections, htmlpage.Section{
			Title:    "Transitions",
			Subtitle: "value changes between adjacent commits",
			Hint: htmlpage.Hint{Items: []string{
				"Unchanged pairs come first and share the muted color.",
			}},
			Chart: transitionChart(s.cOpts, s.palette, trans),
		})
	}

	return s.renderFieldPage(field, "categorical", len(counts.Commits), sections)
}

// WriteOverview renders the cross-field numeric summary page. An overview
// without numeric fields renders nothing.
func (s *HTMLSink) WriteOverview(overview series.Overview) error {
	if len(overview.Fields) == 0 {
		return nil
	}

	id := s.pageID("overview")
	description := fmt.Sprintf("%d numeric fields · %d commits", len(overview.Fields), len(overview.Commits))
	sections := []htmlpage.Section{
		{
			Title:    "Numeric Overview",
			Subtitle: "per-commit sums of every numeric field",
			Chart:    overviewChart(s.cOpts, s.palette, overview),
		},
	}

	err := s.renderer.RenderPage(id, "Numeric Overview", description, sections)
	if err != nil {
		return fmt.Errorf("render overview page: %w", err)
	}

	s.pages = append(s.pages, htmlpage.PageMeta{ID: id, Title: "Numeric Overview", Description: description})

	return nil
}

// Finish writes the index document binding every rendered page.
func (s *HTMLSink) Finish() error {
	err := s.renderer.RenderIndex(indexDescription, s.pages)
	if err != nil {
		return fmt.Errorf("render report index: %w", err)
	}

	s.log.Info("report written", "dir", s.renderer.OutputDir, "pages", len(s.pages))

	return nil
}

func (s *HTMLSink) renderFieldPage(field, kind string, commits int, sections []htmlpage.Section) error {
	id := s.pageID(field)
	description := fmt.Sprintf("%s field · %d commits", kind, commits)

	err := s.renderer.RenderPage(id, field, description, sections)
	if err != nil {
		return fmt.Errorf("render field page %q: %w", field, err)
	}

	s.pages = append(s.pages, htmlpage.PageMeta{ID: id, Title: field, Description: description})
	s.log.Debug("rendered field page", "field", field, "page", id+".html")

	return nil
}

// pageID derives a unique filename stem from a field name.
func (s *HTMLSink) pageID(name string) string {
	base := sanitizeID(name)

	id := base
	for n := 2; s.used[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}

	s.used[id] = true

	return id
}

// sanitizeID maps a field name onto a safe filename stem.
func sanitizeID(name string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	id := strings.Trim(b.String(), "-")
	if id == "" {
		return "field"
	}

	return id
}
