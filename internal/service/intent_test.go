package service

import (
	"testing"

	"easyhome/internal/model"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestExtractSearchParams(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    model.SearchParams
	}{
		{
			name:    "type location and bedrooms",
			message: "Busco apartamento en Chapinero con 2 habitaciones",
			want: model.SearchParams{
				PropertyType: strPtr(model.TypeApartamento),
				Location:     strPtr("chapinero"),
				Bedrooms:     intPtr(2),
			},
		},
		{
			name:    "abbreviated type keyword",
			message: "un aparta barato en bogota",
			want: model.SearchParams{
				PropertyType: strPtr(model.TypeApartamento),
				Location:     strPtr("bogota"),
			},
		},
		{
			name:    "terreno maps to lote",
			message: "terreno en cali",
			want: model.SearchParams{
				PropertyType: strPtr(model.TypeLote),
				Location:     strPtr("cali"),
			},
		},
		{
			name:    "bedrooms from cuartos",
			message: "oficina con 3 cuartos",
			want: model.SearchParams{
				PropertyType: strPtr(model.TypeOficina),
				Bedrooms:     intPtr(3),
			},
		},
		{
			name:    "bedrooms from alcobas",
			message: "casa de 4 alcobas",
			want: model.SearchParams{
				PropertyType: strPtr(model.TypeCasa),
				Bedrooms:     intPtr(4),
			},
		},
		{
			name:    "upper bound price phrase",
			message: "casa en el poblado por menos de 500 millones",
			want: model.SearchParams{
				PropertyType: strPtr(model.TypeCasa),
				Location:     strPtr("poblado"),
				PriceRange:   &model.PriceRange{Max: floatPtr(500_000_000)},
			},
		},
		{
			name:    "maximo sets upper bound",
			message: "máximo 800 millones",
			want: model.SearchParams{
				PriceRange: &model.PriceRange{Max: floatPtr(800_000_000)},
			},
		},
		{
			name:    "lower bound price phrase",
			message: "apartamento de más de 300 millones",
			want: model.SearchParams{
				PropertyType: strPtr(model.TypeApartamento),
				PriceRange:   &model.PriceRange{Min: floatPtr(300_000_000)},
			},
		},
		{
			name:    "bare amount sets no price bound",
			message: "apartamento de 200 millones",
			want: model.SearchParams{
				PropertyType: strPtr(model.TypeApartamento),
			},
		},
		{
			name:    "bound phrase without amount sets no price bound",
			message: "casa por menos de lo que cuesta la mía",
			want: model.SearchParams{
				PropertyType: strPtr(model.TypeCasa),
			},
		},
		{
			name:    "browse all intent",
			message: "¿Qué tienen disponible?",
			want: model.SearchParams{
				BrowseAll: true,
			},
		},
		{
			name:    "empty message",
			message: "",
			want:    model.SearchParams{},
		},
		{
			name:    "whitespace only",
			message: "   ",
			want:    model.SearchParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractSearchParams(tt.message))
		})
	}
}

func TestExtractSearchParams_MaxPhraseWinsOverMin(t *testing.T) {
	// "menos de" is checked before "más de"; a message carrying both yields
	// only an upper bound.
	params := ExtractSearchParams("algo de más de 100 pero menos de 200 millones")
	require.NotNil(t, params.PriceRange)
	require.Nil(t, params.PriceRange.Min)
	require.NotNil(t, params.PriceRange.Max)
}

func TestSearchParamsIsEmpty(t *testing.T) {
	require.True(t, model.SearchParams{}.IsEmpty())
	require.False(t, model.SearchParams{BrowseAll: true}.IsEmpty())
	require.False(t, model.SearchParams{Location: strPtr("suba")}.IsEmpty())
}
