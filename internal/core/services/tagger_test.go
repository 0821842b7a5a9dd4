package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

func TestExtractTags(t *testing.T) {
	t.Run("tags a fully matching filename", func(t *testing.T) {
		tags := ExtractTags("baltic_seagrass_sustainability_report.pdf")

		assert.Equal(t, domain.DocTypeSustainabilityReport, tags.DocType)
		assert.Equal(t, domain.RegionBalticSea, tags.GeographicFocus)
		assert.Equal(t, domain.TopicSeagrassRestoration, tags.Topic)
	})

	t.Run("unmatched fields resolve to unknown, never empty", func(t *testing.T) {
		tags := ExtractTags("notes.txt")

		assert.Equal(t, domain.Unknown, tags.DocType)
		assert.Equal(t, domain.Unknown, tags.GeographicFocus)
		assert.Equal(t, domain.Unknown, tags.Topic)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		tags := ExtractTags("BALTIC_Coral_ESG.md")

		assert.Equal(t, domain.DocTypeSustainabilityReport, tags.DocType)
		assert.Equal(t, domain.RegionBalticSea, tags.GeographicFocus)
		assert.Equal(t, domain.TopicCoralConservation, tags.Topic)
	})

	t.Run("first matching rule wins", func(t *testing.T) {
		// "sustainability" outranks "annual" in the doc-type rules.
		tags := ExtractTags("annual_sustainability_report.txt")

		assert.Equal(t, domain.DocTypeSustainabilityReport, tags.DocType)
	})

	t.Run("classifies document types", func(t *testing.T) {
		cases := map[string]string{
			"acme_esg_2024.txt":        domain.DocTypeSustainabilityReport,
			"acme_csr_summary.txt":     domain.DocTypeSustainabilityReport,
			"acme_annual_2024.txt":     domain.DocTypeCompanyReport,
			"acme_quarterly_q3.txt":    domain.DocTypeCompanyReport,
			"acme_financial_2024.txt":  domain.DocTypeCompanyReport,
			"esrs_e4_biodiversity.txt": domain.DocTypeESRSDocument,
		}
		for filename, want := range cases {
			assert.Equal(t, want, ExtractTags(filename).DocType, filename)
		}
	})

	t.Run("classifies regions", func(t *testing.T) {
		cases := map[string]string{
			"north_sea_wind.txt":          domain.RegionNorthSea,
			"mediterranean_fisheries.md":  domain.RegionMediterraneanSea,
			"atlantic_currents.txt":       domain.RegionAtlanticOcean,
			"pacific_plastic_survey.txt":  domain.RegionPacificOcean,
			"arctic_ice_monitoring.txt":   domain.RegionArcticOcean,
			"global_ocean_assessment.md":  domain.Unknown,
		}
		for filename, want := range cases {
			assert.Equal(t, want, ExtractTags(filename).GeographicFocus, filename)
		}
	})

	t.Run("classifies topics", func(t *testing.T) {
		cases := map[string]string{
			"blue_carbon_sinks.txt":      domain.TopicBlueCarbon,
			"plastic_pollution_2024.txt": domain.TopicMarinePollution,
			"fisheries_yield.txt":        domain.TopicSustainableFisheries,
			"offshore_wind_impact.txt":   domain.TopicOffshoreRenewableEnergy,
			"biodiversity_index.txt":     domain.TopicMarineBiodiversity,
		}
		for filename, want := range cases {
			assert.Equal(t, want, ExtractTags(filename).Topic, filename)
		}
	})

	t.Run("deterministic for the same filename", func(t *testing.T) {
		first := ExtractTags("baltic_seagrass_sustainability_report.pdf")
		second := ExtractTags("baltic_seagrass_sustainability_report.pdf")

		assert.Equal(t, first, second)
	})
}
