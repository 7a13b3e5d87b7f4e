package aspects

import (
	"sort"

	"github.com/mwiater/promptlab/internal/appconfig"
)

// Blend returns a copy of base in which every parameter overridden by at least
// one of the given aspects is replaced by the mean of the contributed values.
// Aspects missing from the table contribute nothing. max_tokens is truncated
// toward zero after averaging; parameters nobody overrides keep their base value.
func Blend(base appconfig.Settings, aspectNames []string) appconfig.Settings {
	out := base.Clone()
	for _, key := range appconfig.ParamKeys {
		values := contributions(key, aspectNames)
		if len(values) == 0 {
			continue
		}
		out = out.With(key, mean(values))
	}
	return out
}

func contributions(key string, aspectNames []string) []float64 {
	var values []float64
	for _, name := range aspectNames {
		overrides, ok := Params[name]
		if !ok {
			continue
		}
		if v, ok := overrides[key]; ok {
			values = append(values, v)
		}
	}
	return values
}

// mean sums in ascending order so the result does not depend on the order the
// aspects were listed in.
func mean(values []float64) float64 {
	if len(values) == 1 {
		return values[0]
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}
