package taste

import (
	"testing"

	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func assertVector(t *testing.T, want, got domain.TasteVector) {
	t.Helper()
	for _, dim := range domain.AllDimensions {
		assert.InDelta(t, want.Get(dim), got.Get(dim), eps, "dimension %s", dim)
	}
}

func TestBuild_NoSignalsReturnsBase(t *testing.T) {
	assertVector(t, Base(), Build(nil, nil, ""))
}

func TestBuild_LuxuryUrbanLuxuryLifestyle(t *testing.T) {
	got := Build([]string{"luxury", "urban"}, nil, "Luxury Lifestyle")

	want := Base()
	want.Luxury = 0.8
	want.Urban = 0.6
	want.Budget = 0.3
	assertVector(t, want, got)
}

func TestBuild_ThemeDecrementsFloorAtOneTenth(t *testing.T) {
	got := Build([]string{"luxury", "premium", "high-end"}, nil, "")

	assert.InDelta(t, 0.1, got.Budget, eps)
	assert.InDelta(t, 1.0, got.Luxury, eps)
}

func TestBuild_ThemeLabelsAreCaseInsensitive(t *testing.T) {
	got := Build([]string{"Hiking"}, nil, "")

	assert.InDelta(t, 0.5, got.Adventure, eps)
	assert.InDelta(t, 0.45, got.Nature, eps)
}

func TestBuild_OverrideSkipsContentTypeTable(t *testing.T) {
	got := Build(nil, []string{"Ali Abdaal"}, "Photography")

	want := Base()
	want.Culture = 0.48
	want.Urban = 0.48
	want.Luxury = 0.42
	want.Budget = 0.57
	assertVector(t, want, got)
}

func TestBuild_OverrideDetectedFromContentType(t *testing.T) {
	assert.True(t, IsOverrideIdentity(nil, nil, "ALI-ABDAAL"))
	assert.True(t, IsOverrideIdentity([]string{"aliabdal.com"}, nil, ""))
	assert.False(t, IsOverrideIdentity([]string{"productivity"}, []string{"educator"}, "Productivity"))
}

func TestBuild_ContentTypeTable(t *testing.T) {
	tests := []struct {
		contentType string
		mutate      func(v *domain.TasteVector)
	}{
		{"photography", func(v *domain.TasteVector) { v.Culture = 0.4; v.Nature = 0.4 }},
		{"Food & Culinary", func(v *domain.TasteVector) { v.Food = 0.5; v.Culture = 0.4 }},
		{"Food & Cuisine", func(v *domain.TasteVector) {}},
		{"Travel", func(v *domain.TasteVector) {}},
		{"Travel & Adventure", func(v *domain.TasteVector) { v.Adventure = 0.5; v.Nature = 0.4 }},
		{"Productivity", func(v *domain.TasteVector) { v.Culture = 0.48; v.Urban = 0.48; v.Luxury = 0.42; v.Budget = 0.57 }},
		{"Educational", func(v *domain.TasteVector) { v.Culture = 0.48; v.Urban = 0.48; v.Luxury = 0.42; v.Budget = 0.57 }},
		{"Education", func(v *domain.TasteVector) {}},
		{"Music", func(v *domain.TasteVector) {}},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			want := Base()
			tt.mutate(&want)
			assertVector(t, want, Build(nil, nil, tt.contentType))
		})
	}
}

func TestBuild_AllDimensionsStayInUnitRange(t *testing.T) {
	themeSets := [][]string{
		{"adventure", "adventure", "adventure", "adventure", "hiking", "outdoor"},
		{"budget", "backpack", "cheap", "budget", "cheap"},
		{"luxury", "premium", "high-end", "luxury", "budget"},
		{"food", "culinary", "restaurant", "cooking", "culture", "art", "history"},
	}
	contentTypes := []string{"", "Photography", "Luxury Lifestyle", "Travel & Adventure", "Lifestyle"}

	for _, themes := range themeSets {
		for _, ct := range contentTypes {
			vec := Build(themes, nil, ct)
			for _, dim := range domain.AllDimensions {
				v := vec.Get(dim)
				assert.GreaterOrEqual(t, v, 0.0, "%v %q %s", themes, ct, dim)
				assert.LessOrEqual(t, v, 1.0, "%v %q %s", themes, ct, dim)
			}
		}
	}
}
