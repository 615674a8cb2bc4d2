package geo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSuggestions_DedupAndCountryFilter(t *testing.T) {
	got := ResolveSuggestions([]Candidate{
		{Name: "Maricá", Country: "BR", Lat: -22.9, Lon: -42.8},
		{Name: "maricá", Country: "BR", Lat: -22.9, Lon: -42.8},
		{Name: "Paris", Country: "FR", Lat: 48.8, Lon: 2.3},
	}, 5)

	assert.Equal(t, []CitySuggestion{
		{ID: "-22.9--42.8-0", Label: "Maricá, BR", Lat: -22.9, Lon: -42.8},
	}, got)
}

func TestResolveSuggestions_LabelIncludesState(t *testing.T) {
	got := ResolveSuggestions([]Candidate{
		{Name: "São Paulo", State: "São Paulo", Country: "BR", Lat: -23.55, Lon: -46.63},
		{Name: "Santos", State: "  ", Country: "BR", Lat: -23.96, Lon: -46.33},
	}, 5)

	require.Len(t, got, 2)
	assert.Equal(t, "São Paulo, São Paulo, BR", got[0].Label)
	assert.Equal(t, "Santos, BR", got[1].Label)
}

func TestResolveSuggestions_FirstWinsKeepsInputOrder(t *testing.T) {
	got := ResolveSuggestions([]Candidate{
		{Name: "Rio Branco", State: "Acre", Country: "BR", Lat: -9.97, Lon: -67.81},
		{Name: "Bonito", State: "Mato Grosso do Sul", Country: "BR", Lat: -21.12, Lon: -56.48},
		{Name: "RIO BRANCO", State: "Mato Grosso", Country: "BR", Lat: -15.25, Lon: -58.11},
		{Name: "Bonito", State: "Pernambuco", Country: "BR", Lat: -8.47, Lon: -35.72},
	}, 5)

	require.Len(t, got, 2)
	assert.Equal(t, "Rio Branco, Acre, BR", got[0].Label)
	assert.Equal(t, "Bonito, Mato Grosso do Sul, BR", got[1].Label)
}

func TestResolveSuggestions_LimitAppliesAfterDedup(t *testing.T) {
	got := ResolveSuggestions([]Candidate{
		{Name: "Niterói", Country: "BR"},
		{Name: "niterói", Country: "BR"},
		{Name: "NITERÓI", Country: "BR"},
		{Name: "Itaboraí", Country: "BR"},
		{Name: "Saquarema", Country: "BR"},
	}, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "Niterói, BR", got[0].Label)
	assert.Equal(t, "Itaboraí, BR", got[1].Label)
}

func TestResolveSuggestions_DropsEmptyNames(t *testing.T) {
	got := ResolveSuggestions([]Candidate{
		{Name: "", Country: "BR"},
		{Name: "   ", Country: "BR"},
		{Name: "Macaé", Country: "BR"},
	}, 5)

	require.Len(t, got, 1)
	assert.Equal(t, "Macaé, BR", got[0].Label)
}

func TestResolveSuggestions_NoTargetCountry(t *testing.T) {
	got := ResolveSuggestions([]Candidate{
		{Name: "Lisboa", Country: "PT"},
		{Name: "Paris", Country: "FR"},
	}, 5)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolveSuggestions_NonPositiveLimit(t *testing.T) {
	candidates := []Candidate{{Name: "Macaé", Country: "BR"}}

	assert.Empty(t, ResolveSuggestions(candidates, 0))
	assert.Empty(t, ResolveSuggestions(candidates, -1))
}

func TestResolveSuggestions_UniqueAndBounded(t *testing.T) {
	names := []string{"Maricá", "MARICÁ", "Cabo Frio", "cabo frio", "Búzios", "", "Paraty"}
	countries := []string{"BR", "BR", "AR", "BR"}

	var candidates []Candidate
	for i := 0; i < 40; i++ {
		candidates = append(candidates, Candidate{
			Name:    names[i%len(names)],
			Country: countries[i%len(countries)],
			Lat:     float64(i),
			Lon:     float64(-i),
		})
	}

	for limit := 1; limit <= 6; limit++ {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			got := ResolveSuggestions(candidates, limit)
			assert.LessOrEqual(t, len(got), limit)

			ids := make(map[string]bool)
			labels := make(map[string]bool)
			for _, s := range got {
				assert.False(t, ids[s.ID], "duplicate id %s", s.ID)
				assert.False(t, labels[s.Label], "duplicate label %s", s.Label)
				ids[s.ID] = true
				labels[s.Label] = true
			}
		})
	}
}

func TestFirstSuggestion(t *testing.T) {
	city, err := FirstSuggestion([]Candidate{
		{Name: "Paris", Country: "FR"},
		{Name: "Maricá", Country: "BR", Lat: -22.9, Lon: -42.8},
		{Name: "Marília", Country: "BR", Lat: -22.2, Lon: -49.9},
	})

	require.NoError(t, err)
	assert.Equal(t, "Maricá, BR", city.Label)

	_, err = FirstSuggestion([]Candidate{{Name: "Paris", Country: "FR"}})
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = FirstSuggestion(nil)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolveSuggestions_NameMatchingIgnoresCaseOnly(t *testing.T) {
	got := ResolveSuggestions([]Candidate{
		{Name: "Rio", Country: "BR", Lat: -1, Lon: -1},
		{Name: "  rio ", Country: "BR", Lat: -2, Lon: -2},
		{Name: "Straße", Country: "BR", Lat: -3, Lon: -3},
		{Name: "Strasse", Country: "BR", Lat: -4, Lon: -4},
		{Name: "SÃO PAULO", Country: "BR", Lat: -5, Lon: -5},
		{Name: "são paulo", Country: "BR", Lat: -6, Lon: -6},
	}, 10)

	require.Len(t, got, 4)
	assert.Equal(t, "Rio, BR", got[0].Label)
	assert.Equal(t, "Straße, BR", got[1].Label)
	assert.Equal(t, "Strasse, BR", got[2].Label)
	assert.Equal(t, "SÃO PAULO, BR", got[3].Label)
}
