package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/carecompass/backend/internal/catalog"
	"github.com/carecompass/backend/internal/infrastructure/clients/postgres"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS catalog_meta (
		version           TEXT PRIMARY KEY,
		default_specialty TEXT NOT NULL,
		near_term_labels  TEXT[] NOT NULL DEFAULT '{}',
		common_symptoms   TEXT[] NOT NULL DEFAULT '{}',
		loaded_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_symptoms (
		catalog_version    TEXT NOT NULL REFERENCES catalog_meta(version) ON DELETE CASCADE,
		position           INT NOT NULL,
		key                TEXT NOT NULL,
		analysis           TEXT NOT NULL,
		treatment          TEXT NOT NULL,
		precautions        TEXT[] NOT NULL DEFAULT '{}',
		when_to_see_doctor TEXT NOT NULL,
		specialty          TEXT,
		PRIMARY KEY (catalog_version, key)
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_doctors (
		catalog_version    TEXT NOT NULL REFERENCES catalog_meta(version) ON DELETE CASCADE,
		position           INT NOT NULL,
		id                 TEXT NOT NULL,
		name               TEXT NOT NULL,
		specialty          TEXT NOT NULL,
		location           TEXT NOT NULL,
		distance           DOUBLE PRECISION NOT NULL CHECK (distance >= 0),
		availability       TEXT NOT NULL,
		timings            TEXT NOT NULL,
		available_slots    TEXT[] NOT NULL DEFAULT '{}',
		rating             DOUBLE PRECISION NOT NULL CHECK (rating BETWEEN 0 AND 5),
		insurance_accepted TEXT[] NOT NULL DEFAULT '{}',
		phone              TEXT NOT NULL DEFAULT '',
		image              TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (catalog_version, id)
	)`,
	`CREATE TABLE IF NOT EXISTS analysis_feedback (
		id         UUID PRIMARY KEY,
		concern_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		helpful    BOOLEAN NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_feedback_concern ON analysis_feedback (concern_id)`,
}

// EnsureSchema creates the catalog and feedback tables when missing.
func EnsureSchema(ctx context.Context, client *postgres.Client) error {
	for _, stmt := range schemaStatements {
		if _, err := client.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// SeedCatalog writes doc as a new catalog version in one transaction. An
// existing row set for the same version is replaced.
func SeedCatalog(ctx context.Context, client *postgres.Client, doc *catalog.Document) error {
	if err := catalog.Validate(doc); err != nil {
		return fmt.Errorf("refusing to seed invalid catalog: %w", err)
	}

	dialect := goqu.Dialect("postgres")
	statements := make([]string, 0, 4)

	del, _, err := dialect.Delete(catalogMetaTable).Where(goqu.C("version").Eq(doc.Version)).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build catalog delete: %w", err)
	}
	statements = append(statements, del)

	meta, _, err := dialect.Insert(catalogMetaTable).Rows(goqu.Record{
		"version":           doc.Version,
		"default_specialty": doc.DefaultSpecialty,
		"near_term_labels":  pq.StringArray(doc.NearTerm),
		"common_symptoms":   pq.StringArray(doc.CommonSymptoms),
		"loaded_at":         time.Now().UTC(),
	}).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build catalog meta insert: %w", err)
	}
	statements = append(statements, meta)

	symptomRows := make([]interface{}, 0, len(doc.Symptoms))
	for i, s := range doc.Symptoms {
		var specialty interface{}
		if sp, ok := doc.Specialties[s.Key]; ok {
			specialty = sp
		}
		symptomRows = append(symptomRows, goqu.Record{
			"catalog_version":    doc.Version,
			"position":           i,
			"key":                s.Key,
			"analysis":           s.Analysis,
			"treatment":          s.Treatment,
			"precautions":        pq.StringArray(s.Precautions),
			"when_to_see_doctor": s.WhenToSeeDoctor,
			"specialty":          specialty,
		})
	}
	symptoms, _, err := dialect.Insert(catalogSymptomsTable).Rows(symptomRows...).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build symptoms insert: %w", err)
	}
	statements = append(statements, symptoms)

	if len(doc.Doctors) > 0 {
		doctorRows := make([]interface{}, 0, len(doc.Doctors))
		for i, d := range doc.Doctors {
			doctorRows = append(doctorRows, goqu.Record{
				"catalog_version":    doc.Version,
				"position":           i,
				"id":                 d.ID,
				"name":               d.Name,
				"specialty":          d.Specialty,
				"location":           d.Location,
				"distance":           d.Distance,
				"availability":       d.Availability,
				"timings":            d.Timings,
				"available_slots":    pq.StringArray(d.AvailableSlots),
				"rating":             d.Rating,
				"insurance_accepted": pq.StringArray(d.InsuranceAccepted),
				"phone":              d.Phone,
				"image":              d.Image,
			})
		}
		doctors, _, err := dialect.Insert(catalogDoctorsTable).Rows(doctorRows...).ToSQL()
		if err != nil {
			return fmt.Errorf("failed to build doctors insert: %w", err)
		}
		statements = append(statements, doctors)
	}

	tx, err := client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to seed catalog %s: %w", doc.Version, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog %s: %w", doc.Version, err)
	}
	return nil
}

// ResetCatalog removes every catalog version. Feedback rows are kept.
func ResetCatalog(ctx context.Context, client *postgres.Client) error {
	if _, err := client.DB().ExecContext(ctx, `TRUNCATE TABLE catalog_meta CASCADE`); err != nil {
		return fmt.Errorf("failed to reset catalog tables: %w", err)
	}
	return nil
}
