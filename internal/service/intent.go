package service

import (
	"regexp"
	"strconv"
	"strings"

	"easyhome/internal/model"
)

// Keyword tables for the rule-based extractor. All lists are
// order-sensitive: the first match wins, so more specific entries must come
// before their prefixes.

var propertyTypeKeywords = []struct {
	keyword      string
	propertyType string
}{
	{"apartamento", model.TypeApartamento},
	{"aparta", model.TypeApartamento},
	{"casa", model.TypeCasa},
	{"oficina", model.TypeOficina},
	{"local", model.TypeLocal},
	{"lote", model.TypeLote},
	{"terreno", model.TypeLote},
}

// locationGazetteer covers the major Colombian cities and subdivisions the
// marketplace operates in, with unaccented spellings alongside the accented
// ones. At most one location is extracted per message.
var locationGazetteer = []string{
	"bogotá", "bogota", "chapinero", "usaquén", "usaquen", "suba", "engativá", "engativa",
	"medellín", "medellin", "poblado", "envigado", "cali", "cartagena", "barranquilla",
	"bucaramanga", "pereira", "manizales", "ibagué", "ibague", "norte", "sur", "centro",
}

var (
	bedroomsPattern = regexp.MustCompile(`(\d+)\s*(habitacion|habitación|hab|alcoba|cuarto)`)
	millionsPattern = regexp.MustCompile(`(\d+)\s*(millón|millon|millones)`)
)

// Price bounds are only extracted when an explicit bound phrase is present.
// A bare amount ("2 millones") sets nothing.
var (
	priceMaxPhrases = []string{"menos de", "máximo"}
	priceMinPhrases = []string{"más de", "mínimo"}
)

var browseAllPhrases = []string{
	"qué tienen", "que tienen", "disponible", "hay", "mostrar", "ver",
}

// ExtractSearchParams parses a free-text chat message into the optional
// search signals the retriever understands. Deterministic and pure; an
// empty or whitespace-only message yields all-unset params.
func ExtractSearchParams(message string) model.SearchParams {
	messageLower := strings.ToLower(message)

	params := model.SearchParams{}

	for _, entry := range propertyTypeKeywords {
		if strings.Contains(messageLower, entry.keyword) {
			propertyType := entry.propertyType
			params.PropertyType = &propertyType
			break
		}
	}

	for _, location := range locationGazetteer {
		if strings.Contains(messageLower, location) {
			loc := location
			params.Location = &loc
			break
		}
	}

	if match := bedroomsPattern.FindStringSubmatch(messageLower); match != nil {
		if bedrooms, err := strconv.Atoi(match[1]); err == nil {
			params.Bedrooms = &bedrooms
		}
	}

	if containsAny(messageLower, priceMaxPhrases) {
		if amount, ok := extractMillions(messageLower); ok {
			params.PriceRange = &model.PriceRange{Max: &amount}
		}
	} else if containsAny(messageLower, priceMinPhrases) {
		if amount, ok := extractMillions(messageLower); ok {
			params.PriceRange = &model.PriceRange{Min: &amount}
		}
	}

	if containsAny(messageLower, browseAllPhrases) {
		params.BrowseAll = true
	}

	return params
}

func containsAny(message string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	return false
}

func extractMillions(message string) (float64, bool) {
	match := millionsPattern.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}
	millions, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return float64(millions) * 1_000_000, true
}
