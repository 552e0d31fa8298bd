package store

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/pocketbase/pocketbase/core"

	"cubicacion/collections"
	"cubicacion/services"
)

// DosageInput carries the editable rates of a dosage config. Nil fields
// keep their stored or default value.
type DosageInput struct {
	Cement        *float64 `json:"cement" validate:"omitempty,min=0"`
	Sand          *float64 `json:"sand" validate:"omitempty,min=0"`
	Gravel        *float64 `json:"gravel" validate:"omitempty,min=0"`
	Water         *float64 `json:"water" validate:"omitempty,min=0"`
	SikaDosage    *float64 `json:"sika_dosage" validate:"omitempty,min=0"`
	SikaContainer *float64 `json:"sika_container" validate:"omitempty,min=0"`
	Waste         *float64 `json:"waste" validate:"omitempty,min=0"`
}

func (in DosageInput) merge(cfg services.DosageConfig) services.DosageConfig {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.Cement, in.Cement)
	set(&cfg.Sand, in.Sand)
	set(&cfg.Gravel, in.Gravel)
	set(&cfg.Water, in.Water)
	set(&cfg.SikaDosage, in.SikaDosage)
	set(&cfg.SikaContainer, in.SikaContainer)
	set(&cfg.Waste, in.Waste)
	return cfg
}

// Dosage stores one dosage config per mix type.
type Dosage struct {
	app core.App
}

func decodeDosage(rec *core.Record) services.DosageConfig {
	return services.DosageConfig{
		ID:            rec.Id,
		MixType:       rec.GetString("tipo"),
		Cement:        rec.GetFloat("cement"),
		Sand:          rec.GetFloat("sand"),
		Gravel:        rec.GetFloat("gravel"),
		Water:         rec.GetFloat("water"),
		SikaDosage:    rec.GetFloat("sika_dosage"),
		SikaContainer: rec.GetFloat("sika_container"),
		Waste:         rec.GetFloat("waste"),
	}
}

func checkMix(mix string) error {
	if !slices.Contains(services.MixTypes, mix) {
		return invalid("tipo", "tipo de hormigón desconocido")
	}
	return nil
}

// List returns the stored configs.
func (s *Dosage) List(ctx context.Context) ([]services.DosageConfig, error) {
	records, err := s.app.FindAllRecords(collections.SikaConfig)
	if err != nil {
		return nil, fail(ctx, "sika_config.list", "Error al obtener la configuración", nil, err)
	}
	out := make([]services.DosageConfig, 0, len(records))
	for _, rec := range records {
		out = append(out, decodeDosage(rec))
	}
	return out, nil
}

// GetOrCreateDefault returns the config of a mix type, inserting the
// built-in defaults the first time it is asked for.
func (s *Dosage) GetOrCreateDefault(ctx context.Context, mix string) (services.DosageConfig, error) {
	const op, msg = "sika_config.get", "Error al obtener la configuración"
	if err := checkMix(mix); err != nil {
		return services.DosageConfig{}, err
	}

	rec, err := s.app.FindFirstRecordByData(collections.SikaConfig, "tipo", mix)
	if err == nil {
		return decodeDosage(rec), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return services.DosageConfig{}, fail(ctx, op, msg, nil, err)
	}

	cfg, _ := services.DefaultDosage(mix)
	created, err := s.insert(cfg)
	if err != nil {
		return services.DosageConfig{}, fail(ctx, op, msg, nil, err)
	}
	return created, nil
}

// Update writes the given rates for a mix type, creating the config from
// the defaults when none exists yet.
func (s *Dosage) Update(ctx context.Context, mix string, in DosageInput) (services.DosageConfig, error) {
	const op, msg = "sika_config.update", "Error al actualizar la configuración"
	if err := checkMix(mix); err != nil {
		return services.DosageConfig{}, err
	}

	rec, err := s.app.FindFirstRecordByData(collections.SikaConfig, "tipo", mix)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		cfg, _ := services.DefaultDosage(mix)
		created, err := s.insert(in.merge(cfg))
		if err != nil {
			return services.DosageConfig{}, fail(ctx, op, msg, nil, err)
		}
		return created, nil
	case err != nil:
		return services.DosageConfig{}, fail(ctx, op, msg, nil, err)
	}

	collections.SetDosage(rec, in.merge(decodeDosage(rec)))
	if err := s.app.Save(rec); err != nil {
		return services.DosageConfig{}, fail(ctx, op, msg, nil, err)
	}
	return decodeDosage(rec), nil
}

// Pair returns the radier and zapata configs.
func (s *Dosage) Pair(ctx context.Context) (radier, zapata services.DosageConfig, err error) {
	if radier, err = s.GetOrCreateDefault(ctx, services.MixRadier); err != nil {
		return
	}
	zapata, err = s.GetOrCreateDefault(ctx, services.MixZapata)
	return
}

func (s *Dosage) insert(cfg services.DosageConfig) (services.DosageConfig, error) {
	col, err := s.app.FindCollectionByNameOrId(collections.SikaConfig)
	if err != nil {
		return services.DosageConfig{}, err
	}
	rec := core.NewRecord(col)
	collections.SetDosage(rec, cfg)
	if err := s.app.Save(rec); err != nil {
		return services.DosageConfig{}, err
	}
	return decodeDosage(rec), nil
}
