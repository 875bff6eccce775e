package shared

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestEllipticalTruncate(t *testing.T) {
	assert.Equal(t, "…", TruncateWithEllipsis("1 2 3", 0))
	assert.Equal(t, "1…", TruncateWithEllipsis("1 2 3", 2))
	assert.Equal(t, "1 2…", TruncateWithEllipsis("1 2 3", 4))
	assert.Equal(t, "1 2 3", TruncateWithEllipsis("1 2 3", 5))
}

func TestValidateBody_Bounds(t *testing.T) {
	var vErr *ValidationError

	_, err := ValidateBody("drop", "")
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, 0, vErr.Length)

	_, err = ValidateBody("ripple", "   \n\t ")
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "ripple", vErr.Field)

	body, err := ValidateBody("drop", "x")
	assert.Nil(t, err)
	assert.Equal(t, "x", body)

	body, err = ValidateBody("drop", "  "+strings.Repeat("a", 280)+"  ")
	assert.Nil(t, err)
	assert.Equal(t, 280, len(body))

	_, err = ValidateBody("drop", strings.Repeat("a", 281))
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, 281, vErr.Length)
	assert.Contains(t, err.Error(), "1–280")
}

func TestValidateBody_CountsRunesNotBytes(t *testing.T) {
	body, err := ValidateBody("drop", strings.Repeat("☕", 280))
	assert.Nil(t, err)
	assert.Equal(t, 280, len([]rune(body)))

	// e + combining acute composes to a single rune
	body, err = ValidateBody("drop", strings.Repeat("e\u0301", 280))
	assert.Nil(t, err)
	assert.Equal(t, 280, len([]rune(body)))
}

func TestValidateBody_KeepsTextAsWritten(t *testing.T) {
	for _, body := range []string{
		"a<b and c",
		"x <y> z",
		"Tom &amp; Jerry",
		"so grateful for you <3 <friend>",
		"<b>grateful</b> for coffee & cake",
	} {
		got, err := ValidateBody("drop", "  "+body+"\n")
		assert.Nil(t, err)
		assert.Equal(t, body, got)
	}
}

func TestCleanDisplayName(t *testing.T) {
	assert.Equal(t, "Sunny Day", CleanDisplayName("  <b>Sunny</b> Day "))
	assert.Equal(t, "Tom & Jerry", CleanDisplayName("Tom &amp; Jerry"))
}

func TestNormalizeHandle(t *testing.T) {
	h, err := NormalizeHandle("  Sunny_Day7 ")
	assert.Nil(t, err)
	assert.Equal(t, "sunny_day7", h)

	for _, bad := range []string{"ab", strings.Repeat("a", 31), "with space", "dash-ed", "émile"} {
		_, err = NormalizeHandle(bad)
		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr), bad)
	}

	_, err = NormalizeHandle(strings.Repeat("a", 30))
	assert.Nil(t, err)
}
