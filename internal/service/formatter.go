package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"easyhome/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoResultsContext is the fixed sentence used when retrieval found nothing.
const NoResultsContext = "No se encontraron propiedades que coincidan con los criterios de búsqueda."

const (
	descriptionBudget = 150
	maxFeatureTags    = 3
)

// pricePrinter groups thousands the way the Colombian UI renders prices
// (1500000 -> "1.500.000").
var pricePrinter = message.NewPrinter(language.MustParse("es-CO"))

// FormatListingsContext renders retrieved listings into the block of text
// injected into the model prompt. Output is deterministic and preserves the
// input order; optional fields are omitted per listing.
func FormatListingsContext(listings []model.Listing) string {
	if len(listings) == 0 {
		return NoResultsContext
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Propiedades disponibles en nuestra base de datos (%d resultados):\n\n", len(listings))

	for i, listing := range listings {
		title := "Propiedad"
		if listing.Title != nil && *listing.Title != "" {
			title = *listing.Title
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)

		propertyType := "No especificado"
		if listing.PropertyType != nil && *listing.PropertyType != "" {
			propertyType = *listing.PropertyType
		}
		fmt.Fprintf(&b, "   - Tipo: %s\n", propertyType)

		location := "No especificada"
		if listing.Location != nil && *listing.Location != "" {
			location = *listing.Location
		}
		fmt.Fprintf(&b, "   - Ubicación: %s\n", location)

		price := "No especificado"
		if listing.Price != nil {
			price = formatPrice(*listing.Price)
		}
		fmt.Fprintf(&b, "   - Precio: $%s\n", price)

		if listing.AreaM2 != nil {
			fmt.Fprintf(&b, "   - Área: %s m²\n", strconv.FormatFloat(*listing.AreaM2, 'f', -1, 64))
		}
		if listing.Bedrooms != nil {
			fmt.Fprintf(&b, "   - Habitaciones: %d\n", *listing.Bedrooms)
		}
		if listing.Bathrooms != nil {
			fmt.Fprintf(&b, "   - Baños: %d\n", *listing.Bathrooms)
		}
		if listing.Description != nil && *listing.Description != "" {
			fmt.Fprintf(&b, "   - Descripción: %s...\n", truncateRunes(*listing.Description, descriptionBudget))
		}
		if len(listing.Features) > 0 {
			features := listing.Features
			if len(features) > maxFeatureTags {
				features = features[:maxFeatureTags]
			}
			fmt.Fprintf(&b, "   - Características: %s\n", strings.Join(features, ", "))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func formatPrice(price float64) string {
	return pricePrinter.Sprintf("%d", int64(math.Round(price)))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
