package services

import (
	"strings"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

// tagRule maps filename substrings to a vocabulary tag. Rules are checked
// in order; the first match wins.
type tagRule struct {
	patterns []string
	tag      string
}

// docTypeRules classify the document type from the filename.
var docTypeRules = []tagRule{
	{patterns: []string{"sustainability", "esg", "csr"}, tag: domain.DocTypeSustainabilityReport},
	{patterns: []string{"annual", "quarterly", "financial"}, tag: domain.DocTypeCompanyReport},
	{patterns: []string{"esrs", "european sustainability reporting"}, tag: domain.DocTypeESRSDocument},
}

// regionRules classify the geographic focus from the filename.
var regionRules = []tagRule{
	{patterns: []string{"baltic"}, tag: domain.RegionBalticSea},
	{patterns: []string{"north sea", "north_sea"}, tag: domain.RegionNorthSea},
	{patterns: []string{"mediterranean"}, tag: domain.RegionMediterraneanSea},
	{patterns: []string{"atlantic"}, tag: domain.RegionAtlanticOcean},
	{patterns: []string{"pacific"}, tag: domain.RegionPacificOcean},
	{patterns: []string{"arctic"}, tag: domain.RegionArcticOcean},
}

// topicRules classify the topic from the filename.
var topicRules = []tagRule{
	{patterns: []string{"seagrass"}, tag: domain.TopicSeagrassRestoration},
	{patterns: []string{"coral"}, tag: domain.TopicCoralConservation},
	{patterns: []string{"biodiversity"}, tag: domain.TopicMarineBiodiversity},
	{patterns: []string{"carbon"}, tag: domain.TopicBlueCarbon},
	{patterns: []string{"plastic"}, tag: domain.TopicMarinePollution},
	{patterns: []string{"fishing", "fisheries"}, tag: domain.TopicSustainableFisheries},
	{patterns: []string{"renewable", "offshore wind", "offshore_wind"}, tag: domain.TopicOffshoreRenewableEnergy},
}

// ExtractTags derives metadata tags from a filename. It is pure and
// deterministic keyword matching against the closed vocabularies in the
// domain package. Fields with no matching rule resolve to domain.Unknown,
// never to an empty value, so filters can match "unknown" explicitly.
func ExtractTags(filename string) domain.Tags {
	name := strings.ToLower(filename)

	return domain.Tags{
		DocType:         matchRules(name, docTypeRules),
		GeographicFocus: matchRules(name, regionRules),
		Topic:           matchRules(name, topicRules),
	}
}

// matchRules returns the first rule whose pattern occurs in name, or the
// Unknown sentinel.
func matchRules(name string, rules []tagRule) string {
	for _, rule := range rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(name, pattern) {
				return rule.tag
			}
		}
	}
	return domain.Unknown
}
