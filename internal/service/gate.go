package service

import "strings"

// searchKeywords is the fixed vocabulary that marks a chat message as a
// candidate for listing retrieval: intent verbs, domain nouns, availability
// phrasing, and locality/price/room terms. Order is kept for readability;
// the gate only needs one hit.
var searchKeywords = []string{
	"busco", "buscar", "encontrar", "necesito", "quiero",
	"apartamento", "casa", "propiedad", "inmueble",
	"disponible", "hay", "tienen", "mostrar", "ver",
	"ubicación", "ubicacion", "zona", "sector",
	"precio", "cuánto", "cuanto", "cuesta",
	"habitaciones", "baños", "área", "metros",
}

// ShouldConsultStore decides whether a chat message warrants a listings
// lookup before the model is called. Pure substring matching over the
// lower-cased message; a miss only degrades the turn to ungrounded chat.
func ShouldConsultStore(message string) bool {
	messageLower := strings.ToLower(message)
	for _, keyword := range searchKeywords {
		if strings.Contains(messageLower, keyword) {
			return true
		}
	}
	return false
}
