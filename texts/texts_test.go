package texts

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestWithVals(t *testing.T) {
	txt := NewTexts()
	msg := txt.WithVals("slot_conflict.txt", map[string]string{"period": "AM"})
	assert.Equal(t, "You already dropped in the AM slot today. One drop in the morning and one in the evening.", msg)
}

func TestLines(t *testing.T) {
	txt := NewTexts()
	assert.Equal(t, []string{"This evening's gratitude has been offered.", "Carry it with you. Return at dawn."},
		txt.Lines("offered_pm.txt"))
	quotes := txt.Lines("quotes.txt")
	assert.Greater(t, len(quotes), 50)
	assert.Equal(t, "Gratitude turns what we have into enough.", quotes[0])
	assert.Nil(t, txt.Lines("missing.txt"))
}
