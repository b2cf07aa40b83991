package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/carecompass/backend/internal/catalog"
	"github.com/carecompass/backend/internal/domain/entities"
	"github.com/carecompass/backend/internal/domain/repositories"
	"github.com/carecompass/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

const (
	catalogMetaTable     = "catalog_meta"
	catalogSymptomsTable = "catalog_symptoms"
	catalogDoctorsTable  = "catalog_doctors"
)

type catalogMetaRow struct {
	Version          string         `db:"version"`
	DefaultSpecialty string         `db:"default_specialty"`
	NearTerm         pq.StringArray `db:"near_term_labels"`
	CommonSymptoms   pq.StringArray `db:"common_symptoms"`
}

type symptomRow struct {
	Key             string         `db:"key"`
	Analysis        string         `db:"analysis"`
	Treatment       string         `db:"treatment"`
	Precautions     pq.StringArray `db:"precautions"`
	WhenToSeeDoctor string         `db:"when_to_see_doctor"`
	Specialty       sql.NullString `db:"specialty"`
}

type doctorRow struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Specialty         string         `db:"specialty"`
	Location          string         `db:"location"`
	Distance          float64        `db:"distance"`
	Availability      string         `db:"availability"`
	Timings           string         `db:"timings"`
	AvailableSlots    pq.StringArray `db:"available_slots"`
	Rating            float64        `db:"rating"`
	InsuranceAccepted pq.StringArray `db:"insurance_accepted"`
	Phone             string         `db:"phone"`
	Image             string         `db:"image"`
}

// CatalogAdapter loads the catalog from Postgres tables written by cmd/seed.
type CatalogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) repositories.CatalogSource {
	return &CatalogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Load reads the newest catalog version with its symptoms and doctors.
func (a *CatalogAdapter) Load(ctx context.Context) (*entities.Catalog, error) {
	meta, err := a.loadMeta(ctx)
	if err != nil {
		return nil, err
	}

	doc := &catalog.Document{
		Version:          meta.Version,
		DefaultSpecialty: meta.DefaultSpecialty,
		NearTerm:         []string(meta.NearTerm),
		CommonSymptoms:   []string(meta.CommonSymptoms),
		Specialties:      make(map[string]string),
	}

	symptoms, err := a.loadSymptoms(ctx, meta.Version)
	if err != nil {
		return nil, err
	}
	for _, row := range symptoms {
		doc.Symptoms = append(doc.Symptoms, entities.SymptomEntry{
			Key:             row.Key,
			Analysis:        row.Analysis,
			Treatment:       row.Treatment,
			Precautions:     []string(row.Precautions),
			WhenToSeeDoctor: row.WhenToSeeDoctor,
		})
		if row.Specialty.Valid && row.Specialty.String != "" {
			doc.Specialties[row.Key] = row.Specialty.String
		}
	}

	doctors, err := a.loadDoctors(ctx, meta.Version)
	if err != nil {
		return nil, err
	}
	for _, row := range doctors {
		doc.Doctors = append(doc.Doctors, entities.Doctor{
			ID:                row.ID,
			Name:              row.Name,
			Specialty:         row.Specialty,
			Location:          row.Location,
			Distance:          row.Distance,
			Availability:      row.Availability,
			Timings:           row.Timings,
			AvailableSlots:    []string(row.AvailableSlots),
			Rating:            row.Rating,
			InsuranceAccepted: []string(row.InsuranceAccepted),
			Phone:             row.Phone,
			Image:             row.Image,
		})
	}

	cat, err := catalog.Build(doc)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("catalog %s in database is invalid", meta.Version), err)
	}
	return cat, nil
}

func (a *CatalogAdapter) loadMeta(ctx context.Context) (*catalogMetaRow, error) {
	query, args, err := a.db.From(catalogMetaTable).
		Select("version", "default_specialty", "near_term_labels", "common_symptoms").
		Order(goqu.C("loaded_at").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build catalog meta query", err)
	}

	var meta catalogMetaRow
	if err := a.client.DBx().GetContext(ctx, &meta, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no catalog has been seeded")
		}
		return nil, apperrors.NewExternalError("failed to load catalog meta", err)
	}
	return &meta, nil
}

func (a *CatalogAdapter) loadSymptoms(ctx context.Context, version string) ([]symptomRow, error) {
	query, args, err := a.db.From(catalogSymptomsTable).
		Select("key", "analysis", "treatment", "precautions", "when_to_see_doctor", "specialty").
		Where(goqu.C("catalog_version").Eq(version)).
		Order(goqu.C("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build symptoms query", err)
	}

	var rows []symptomRow
	if err := a.client.DBx().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewExternalError("failed to load catalog symptoms", err)
	}
	return rows, nil
}

func (a *CatalogAdapter) loadDoctors(ctx context.Context, version string) ([]doctorRow, error) {
	query, args, err := a.db.From(catalogDoctorsTable).
		Select("id", "name", "specialty", "location", "distance", "availability", "timings",
			"available_slots", "rating", "insurance_accepted", "phone", "image").
		Where(goqu.C("catalog_version").Eq(version)).
		Order(goqu.C("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctors query", err)
	}

	var rows []doctorRow
	if err := a.client.DBx().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewExternalError("failed to load catalog doctors", err)
	}
	return rows, nil
}
