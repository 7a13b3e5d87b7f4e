// internal/appconfig/settings.go
package appconfig

import "strings"

// Sampling parameter keys, in report order.
const (
	ParamTemperature      = "temperature"
	ParamTopP             = "top_p"
	ParamMaxTokens        = "max_tokens"
	ParamFrequencyPenalty = "frequency_penalty"
	ParamPresencePenalty  = "presence_penalty"
)

// ParamKeys lists the known sampling parameters in their fixed order.
var ParamKeys = []string{
	ParamTemperature,
	ParamTopP,
	ParamMaxTokens,
	ParamFrequencyPenalty,
	ParamPresencePenalty,
}

// Settings holds the sampling parameters sent with a completion request.
// Nil pointers mean "not set" and are omitted from the request.
type Settings struct {
	Temperature      *float64 `mapstructure:"temperature" json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP             *float64 `mapstructure:"top_p" json:"top_p,omitempty" yaml:"top_p,omitempty"`
	MaxTokens        *int     `mapstructure:"max_tokens" json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	FrequencyPenalty *float64 `mapstructure:"frequency_penalty" json:"frequency_penalty,omitempty" yaml:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `mapstructure:"presence_penalty" json:"presence_penalty,omitempty" yaml:"presence_penalty,omitempty"`
	Stream           bool     `mapstructure:"stream" json:"stream" yaml:"stream"`
}

// Clone returns a copy that shares no pointers with s.
func (s Settings) Clone() Settings {
	out := Settings{Stream: s.Stream}
	if s.Temperature != nil {
		out.Temperature = ptrFloat(*s.Temperature)
	}
	if s.TopP != nil {
		out.TopP = ptrFloat(*s.TopP)
	}
	if s.MaxTokens != nil {
		out.MaxTokens = ptrInt(*s.MaxTokens)
	}
	if s.FrequencyPenalty != nil {
		out.FrequencyPenalty = ptrFloat(*s.FrequencyPenalty)
	}
	if s.PresencePenalty != nil {
		out.PresencePenalty = ptrFloat(*s.PresencePenalty)
	}
	return out
}

// Lookup returns the numeric value of the named parameter and whether it is set.
func (s Settings) Lookup(key string) (float64, bool) {
	switch key {
	case ParamTemperature:
		return floatValue(s.Temperature)
	case ParamTopP:
		return floatValue(s.TopP)
	case ParamMaxTokens:
		if s.MaxTokens == nil {
			return 0, false
		}
		return float64(*s.MaxTokens), true
	case ParamFrequencyPenalty:
		return floatValue(s.FrequencyPenalty)
	case ParamPresencePenalty:
		return floatValue(s.PresencePenalty)
	default:
		return 0, false
	}
}

// Value returns the named parameter, treating unset values as 0.
func (s Settings) Value(key string) float64 {
	v, _ := s.Lookup(key)
	return v
}

// With returns a copy of s with the named parameter set. max_tokens is
// truncated toward zero. Unknown keys leave the copy unchanged.
func (s Settings) With(key string, value float64) Settings {
	out := s.Clone()
	switch key {
	case ParamTemperature:
		out.Temperature = ptrFloat(value)
	case ParamTopP:
		out.TopP = ptrFloat(value)
	case ParamMaxTokens:
		out.MaxTokens = ptrInt(int(value))
	case ParamFrequencyPenalty:
		out.FrequencyPenalty = ptrFloat(value)
	case ParamPresencePenalty:
		out.PresencePenalty = ptrFloat(value)
	}
	return out
}

// ParamDisplayName turns a parameter key such as "top_p" into "Top P".
func ParamDisplayName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func floatValue(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
