package domain

// Unknown is the sentinel value for a tag that could not be derived.
// It is a real, filterable value: queries may explicitly match on it.
const Unknown = "unknown"

// Document type vocabulary.
const (
	DocTypeSustainabilityReport = "sustainability_report"
	DocTypeCompanyReport        = "company_report"
	DocTypeESRSDocument         = "esrs_document"
)

// Geographic focus vocabulary.
const (
	RegionBalticSea        = "Baltic Sea"
	RegionNorthSea         = "North Sea"
	RegionMediterraneanSea = "Mediterranean Sea"
	RegionAtlanticOcean    = "Atlantic Ocean"
	RegionPacificOcean     = "Pacific Ocean"
	RegionArcticOcean      = "Arctic Ocean"
)

// Topic vocabulary.
const (
	TopicSeagrassRestoration     = "seagrass_restoration"
	TopicCoralConservation       = "coral_conservation"
	TopicMarineBiodiversity      = "marine_biodiversity"
	TopicBlueCarbon              = "blue_carbon"
	TopicMarinePollution         = "marine_pollution"
	TopicSustainableFisheries    = "sustainable_fisheries"
	TopicOffshoreRenewableEnergy = "offshore_renewable_energy"
)

// DocTypes returns the closed document type vocabulary, Unknown included.
func DocTypes() []string {
	return []string{
		DocTypeSustainabilityReport,
		DocTypeCompanyReport,
		DocTypeESRSDocument,
		Unknown,
	}
}

// Regions returns the closed geographic focus vocabulary, Unknown included.
func Regions() []string {
	return []string{
		RegionBalticSea,
		RegionNorthSea,
		RegionMediterraneanSea,
		RegionAtlanticOcean,
		RegionPacificOcean,
		RegionArcticOcean,
		Unknown,
	}
}

// Topics returns the closed topic vocabulary, Unknown included.
func Topics() []string {
	return []string{
		TopicSeagrassRestoration,
		TopicCoralConservation,
		TopicMarineBiodiversity,
		TopicBlueCarbon,
		TopicMarinePollution,
		TopicSustainableFisheries,
		TopicOffshoreRenewableEnergy,
		Unknown,
	}
}
