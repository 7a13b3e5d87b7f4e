package comparison

import "github.com/mwiater/promptlab/internal/appconfig"

// Impact describes what moving a parameter up or down does to a response.
type Impact struct {
	Increase string
	Decrease string
}

// ParamImpacts is keyed by parameter display name.
var ParamImpacts = map[string]Impact{
	"Temperature": {
		Increase: "More creative and diverse responses, but potentially less focused",
		Decrease: "More focused and deterministic responses, but potentially less creative",
	},
	"Top P": {
		Increase: "More diverse token selection, but potentially less precise",
		Decrease: "More focused token selection, but potentially less varied",
	},
	"Max Tokens": {
		Increase: "Allows for longer responses",
		Decrease: "Forces more concise responses",
	},
	"Frequency Penalty": {
		Increase: "Reduces repetition and encourages diverse vocabulary",
		Decrease: "Allows more natural repetition of terms",
	},
	"Presence Penalty": {
		Increase: "Encourages covering new topics and ideas",
		Decrease: "Allows focusing on the same topics",
	},
}

// ParamComparisonRow is one line of the configuration comparison table.
type ParamComparisonRow struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Default     float64 `json:"default"`
	Specialized float64 `json:"specialized"`
	Change      float64 `json:"change"`
	Impact      string  `json:"impact"`
}

// CompareParams builds one row per known parameter, in appconfig.ParamKeys
// order. Missing values count as 0.
func CompareParams(def, specialized appconfig.Settings) []ParamComparisonRow {
	rows := make([]ParamComparisonRow, 0, len(appconfig.ParamKeys))
	for _, key := range appconfig.ParamKeys {
		d := def.Value(key)
		s := specialized.Value(key)
		change := s - d
		name := appconfig.ParamDisplayName(key)
		rows = append(rows, ParamComparisonRow{
			Key:         key,
			Name:        name,
			Default:     d,
			Specialized: s,
			Change:      change,
			Impact:      impactFor(name, change),
		})
	}
	return rows
}

// impactFor treats a zero change as a decrease.
func impactFor(name string, change float64) string {
	impact := ParamImpacts[name]
	if change > 0 {
		return impact.Increase
	}
	return impact.Decrease
}
