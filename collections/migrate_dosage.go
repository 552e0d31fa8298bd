package collections

import (
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"cubicacion/services"
)

// MigrateDefaultDosage creates the default sika_config record for every mix
// type that is missing one. Safe to call on every startup.
func MigrateDefaultDosage(app core.App) error {
	col, err := app.FindCollectionByNameOrId(SikaConfig)
	if err != nil {
		return fmt.Errorf("migrate_dosage: could not find sika_config collection: %w", err)
	}

	for _, mix := range services.MixTypes {
		n, err := app.CountRecords(col, dbx.HashExp{"tipo": mix})
		if err != nil {
			return fmt.Errorf("migrate_dosage: count %s: %w", mix, err)
		}
		if n > 0 {
			continue
		}

		cfg, err := services.DefaultDosage(mix)
		if err != nil {
			return err
		}
		record := core.NewRecord(col)
		SetDosage(record, cfg)

		if err := app.Save(record); err != nil {
			log.Error().Err(err).Str("tipo", mix).Msg("migrate_dosage: failed to create default config")
			continue
		}
		log.Info().Str("tipo", mix).Msg("migrate_dosage: created default config")
	}
	return nil
}

// SetDosage copies a dosage config onto a sika_config record.
func SetDosage(record *core.Record, cfg services.DosageConfig) {
	record.Set("tipo", cfg.MixType)
	record.Set("cement", cfg.Cement)
	record.Set("sand", cfg.Sand)
	record.Set("gravel", cfg.Gravel)
	record.Set("water", cfg.Water)
	record.Set("sika_dosage", cfg.SikaDosage)
	record.Set("sika_container", cfg.SikaContainer)
	record.Set("waste", cfg.Waste)
}
