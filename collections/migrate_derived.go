package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

// DerivedFix describes the stored derived fields of a calculator collection
// and how to recompute them from a record's dimensions.
type DerivedFix struct {
	Collection string
	Derive     func(*core.Record) map[string]any
}

// MigrateStaleDerived recomputes the derived fields of every row in the
// given collections and saves the rows whose stored values disagree. Rows
// written before a formula change are brought back in line on startup.
// Returns the number of rows rewritten.
func MigrateStaleDerived(app core.App, fixes ...DerivedFix) (int, error) {
	fixed := 0
	for _, fix := range fixes {
		records, err := app.FindAllRecords(fix.Collection)
		if err != nil {
			return fixed, fmt.Errorf("migrate_derived: could not query %s: %w", fix.Collection, err)
		}

		for _, rec := range records {
			stale := false
			for field, want := range fix.Derive(rec) {
				if cast.ToFloat64(rec.Get(field)) != cast.ToFloat64(want) {
					rec.Set(field, want)
					stale = true
				}
			}
			if !stale {
				continue
			}
			if err := app.Save(rec); err != nil {
				log.Error().Err(err).Str("collection", fix.Collection).Str("id", rec.Id).
					Msg("migrate_derived: failed to save recomputed row")
				continue
			}
			fixed++
		}
	}

	if fixed > 0 {
		log.Info().Int("rows", fixed).Msg("migrate_derived: recomputed stale derived fields")
	}
	return fixed, nil
}
