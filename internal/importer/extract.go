// Package importer turns raw positional spreadsheet rows into canonical
// employee records using a column mapping configuration.
//
// Extraction is strictly index-based. The mapping is compiled once into an
// indexed plan so the per-row loop does no map lookups over column entries.
package importer

import (
	"errors"

	"paydesk/internal/mapping"
	"paydesk/internal/payroll"
)

// ErrEmptyData indicates the sheet has no data rows below the configured
// title and header rows. The import is aborted; no partial record set is
// committed.
var ErrEmptyData = errors.New("importer: no data rows found below title rows")

// plan is the compiled form of a mapping.Config: canonical field -> source
// index, plus the display-only columns surfaced under their raw headers.
type plan struct {
	fields  map[payroll.Field]int
	display []displayColumn
}

type displayColumn struct {
	header string
	index  int
}

func compilePlan(cfg mapping.Config) plan {
	p := plan{fields: make(map[payroll.Field]int, len(cfg.Columns))}
	for _, c := range cfg.Columns {
		if c.SourceIndex == nil {
			continue
		}
		if c.Field != "" {
			// First mapping wins for duplicated fields.
			if _, ok := p.fields[c.Field]; !ok {
				p.fields[c.Field] = *c.SourceIndex
			}
			continue
		}
		if c.ShowOnDashboard {
			p.display = append(p.display, displayColumn{header: c.Header, index: *c.SourceIndex})
		}
	}
	return p
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Extract builds canonical employee records from raw rows.
//
// Rows above TitleRows+1 are skipped (title rows plus the header row itself;
// header text was already captured by the mapping out of band). Rows that
// carry none of net pay, name, or employee code are treated as spacer rows
// and dropped. Input order is preserved; serials reflect the row's 1-based
// position among the data rows, including any dropped spacers.
//
// Errors:
//   - ErrEmptyData when the sheet has no rows below the header.
//   - Nothing else: per-cell problems coerce to zero/empty, never abort.
func Extract(rows [][]string, cfg mapping.Config) ([]*payroll.Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataStart := cfg.TitleRows + 1
	if len(rows) <= dataStart {
		return nil, ErrEmptyData
	}

	p := compilePlan(cfg)

	out := make([]*payroll.Record, 0, len(rows)-dataStart)
	for i, row := range rows[dataStart:] {
		rec := payroll.NewRecord(i + 1)

		for f, idx := range p.fields {
			if v := cellAt(row, idx); v != "" {
				rec.Values[f] = v
			}
		}
		for _, d := range p.display {
			if v := cellAt(row, d.index); v != "" {
				rec.Extra[d.header] = v
			}
		}

		if !rec.Identifiable() {
			continue
		}
		out = append(out, rec)
	}

	return out, nil
}
