// Package taste derives a TasteVector and its presentation profile from extracted signals.
package taste

import (
	"strings"

	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/util"
)

// Base returns the starting vector before any signal is applied.
func Base() domain.TasteVector {
	return domain.TasteVector{
		Adventure: baseWeight,
		Culture:   baseWeight,
		Luxury:    baseWeight,
		Food:      baseWeight,
		Nature:    baseWeight,
		Urban:     baseWeight,
		Budget:    baseBudget,
	}
}

// Build is pure: the same inputs always produce the same vector, and every dimension stays in [0, 1].
func Build(themes, hints []string, contentType string) domain.TasteVector {
	vec := Base()

	for _, theme := range themes {
		for _, d := range themeDeltas[util.Normalize(theme)] {
			applyThemeDelta(&vec, d)
		}
	}

	if IsOverrideIdentity(themes, hints, contentType) {
		applyBundle(&vec, productivityBundle)
	} else if deltas, ok := contentTypeDeltas[util.Normalize(contentType)]; ok {
		applyBundle(&vec, deltas)
	}

	for _, dim := range domain.AllDimensions {
		vec.Set(dim, util.Clamp01(vec.Get(dim)))
	}
	return vec
}

// IsOverrideIdentity reports whether contentType, a theme or a hint names the recognised override creator.
func IsOverrideIdentity(themes, hints []string, contentType string) bool {
	if util.ContainsFold(overrideIdentities, contentType) {
		return true
	}
	for _, t := range themes {
		if util.ContainsFold(overrideIdentities, t) {
			return true
		}
	}
	for _, h := range hints {
		if util.ContainsFold(overrideIdentities, h) {
			return true
		}
	}
	return false
}

// Theme decrements never push a dimension below decrementFloor.
func applyThemeDelta(vec *domain.TasteVector, d delta) {
	current := vec.Get(d.dim)
	if d.amount < 0 {
		vec.Set(d.dim, util.Clamp(current+d.amount, decrementFloor, 1))
		return
	}
	vec.Set(d.dim, util.Clamp01(current+d.amount))
}

func applyBundle(vec *domain.TasteVector, deltas []delta) {
	for _, d := range deltas {
		vec.Set(d.dim, util.Clamp01(vec.Get(d.dim)+d.amount))
	}
}

// describe is used by log lines to print a vector compactly.
func describe(vec domain.TasteVector) string {
	var b strings.Builder
	for i, dim := range domain.AllDimensions {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(dim))
		b.WriteByte('=')
		b.WriteString(formatWeight(vec.Get(dim)))
	}
	return b.String()
}
