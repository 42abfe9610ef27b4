package dataset

import "github.com/garda-insights/riskmap/internal/model"

// Filter narrows the working set of records. Nil or empty slices leave
// that dimension unrestricted; region and offence values match exactly
// as they appear in the data.
type Filter struct {
	Quarters []model.Period
	Regions  []string
	Offences []string
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return len(f.Quarters) == 0 && len(f.Regions) == 0 && len(f.Offences) == 0
}

// Apply returns the records passing every restriction, preserving input
// order.
func (f Filter) Apply(records []model.Record) []model.Record {
	if f.IsZero() {
		return records
	}

	quarters := make(map[model.Period]bool, len(f.Quarters))
	for _, q := range f.Quarters {
		quarters[q] = true
	}
	regions := make(map[string]bool, len(f.Regions))
	for _, r := range f.Regions {
		regions[r] = true
	}
	offences := make(map[string]bool, len(f.Offences))
	for _, o := range f.Offences {
		offences[o] = true
	}

	var out []model.Record
	for _, rec := range records {
		if len(quarters) > 0 && !quarters[rec.Period] {
			continue
		}
		if len(regions) > 0 && !regions[rec.Region] {
			continue
		}
		if len(offences) > 0 && !offences[rec.Offence] {
			continue
		}
		out = append(out, rec)
	}
	return out
}
