package appconfig

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCloneDoesNotShareState(t *testing.T) {
	base := TestSpecializedPreset()
	clone := base.Clone()
	*clone.Temperature = 0.1
	*clone.MaxTokens = 10

	assert.Equal(t, 0.9, *base.Temperature)
	assert.Equal(t, 1500, *base.MaxTokens)
}

func TestWithTruncatesMaxTokens(t *testing.T) {
	got := Settings{}.With(ParamMaxTokens, 799.9)
	assert.Equal(t, 799, *got.MaxTokens)

	same := Settings{Temperature: Float(0.3)}.With("unknown", 1)
	if diff := cmp.Diff(Settings{Temperature: Float(0.3)}, same); diff != "" {
		t.Fatalf("unexpected change (-want +got):\n%s", diff)
	}
}

func TestValueTreatsMissingAsZero(t *testing.T) {
	s := TestDefaultPreset()
	assert.Equal(t, 0.0, s.Value(ParamFrequencyPenalty))
	assert.Equal(t, 0.7, s.Value(ParamTemperature))
	assert.Equal(t, 0.0, s.Value("nope"))
}

func TestParamDisplayName(t *testing.T) {
	want := []string{"Temperature", "Top P", "Max Tokens", "Frequency Penalty", "Presence Penalty"}
	for i, key := range ParamKeys {
		assert.Equal(t, want[i], ParamDisplayName(key))
	}
}

func TestMergeSettings(t *testing.T) {
	got := MergeSettings(ChatPreset(), Settings{MaxTokens: Int(50)})
	want := Settings{Temperature: Float(0.7), TopP: Float(1.0), MaxTokens: Int(50), Stream: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MergeSettings mismatch (-want +got):\n%s", diff)
	}
}
