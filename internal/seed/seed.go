// Package seed loads the default Spanish subsidy catalogue. It is a
// bootstrap convenience for local and demo environments; production
// deployments manage the catalogue through the API.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	subsidydomain "github.com/sunstack-labs/sunstack/internal/subsidy/domain"
	"gorm.io/gorm"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func catalogue() []subsidydomain.SubsidyRecord {
	return []subsidydomain.SubsidyRecord{
		{
			Name:           "Ayuda Nacional Autoconsumo Residencial 2024",
			RegionCode:     "ES",
			Kind:           subsidydomain.KindAmountPerKwp,
			Value:          300.0,
			MaxAmountEUR:   f(3000.0),
			MinKwpRequired: 1.0,
			MaxKwpEligible: f(10.0),
			EntityType:     subsidydomain.EntityResidential,
			StartDate:      s("2024-01-01"),
			EndDate:        s("2024-12-31"),
			IsActive:       true,
			ConditionsText: s("Para instalaciones residenciales conectadas a red. Requiere factura de empresa instaladora certificada."),
			SourceURL:      s("http://example.com/ayuda-nacional-2024"),
		},
		{
			Name:           "Subvención Comunidad de Madrid - Eficiencia Energética",
			RegionCode:     "ES-MD",
			Kind:           subsidydomain.KindPercentageCost,
			Value:          0.20,
			MaxAmountEUR:   f(4000.0),
			MinKwpRequired: 2.0,
			EntityType:     subsidydomain.EntityResidential,
			StartDate:      s("2024-03-01"),
			EndDate:        s("2024-11-30"),
			IsActive:       true,
			ConditionsText: s("IVA no incluido en la base subvencionable. Solo para la Comunidad de Madrid."),
			SourceURL:      s("http://example.com/ayuda-madrid-2024"),
		},
		{
			Name:           "Plan Impulso Solar Barcelona (Empresas)",
			RegionCode:     "ES-CT-B",
			Kind:           subsidydomain.KindAmountPerKwp,
			Value:          200.0,
			MaxAmountEUR:   f(10000.0),
			MinKwpRequired: 5.0,
			MaxKwpEligible: f(50.0),
			EntityType:     subsidydomain.EntityBusiness,
			StartDate:      s("2024-02-01"),
			IsActive:       true,
			ConditionsText: s("Para PYMES y grandes empresas en el término municipal de Barcelona."),
		},
		{
			Name:           "Ayuda Fija Ayuntamiento XYZ",
			RegionCode:     "ES-XX-XYZ",
			Kind:           subsidydomain.KindFixedAmount,
			Value:          500.0,
			MaxAmountEUR:   f(500.0),
			EntityType:     subsidydomain.EntityResidential,
			IsActive:       true,
			ConditionsText: s("Para cualquier tipo de instalación en el municipio XYZ. Unifamiliar."),
		},
		{
			Name:         "Subvención Inactiva de Ejemplo",
			RegionCode:   "ES",
			Kind:         subsidydomain.KindPercentageCost,
			Value:        0.50,
			MaxAmountEUR: f(1000.0),
			EntityType:   subsidydomain.EntityResidential,
			StartDate:    s("2023-01-01"),
			EndDate:      s("2023-12-31"),
			IsActive:     false,
		},
	}
}

// EnsureCatalogue inserts the default catalogue. Records already present
// (matched by name and region) are left untouched, so repeated startups do
// not duplicate rows.
func EnsureCatalogue(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range catalogue() {
			var count int64
			err := tx.Model(&subsidydomain.SubsidyRecord{}).
				Where("name = ? AND region_code = ?", record.Name, record.RegionCode).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			record.ID = node.Generate()
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
