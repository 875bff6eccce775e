package shared

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestIdBuilder(t *testing.T) {
	idb := IdBuilder{Host: "ripple.test"}
	assert.Equal(t, "https://ripple.test/profile/sunny", idb.ProfileUrl("sunny"))
	assert.Equal(t, "https://ripple.test/drops/a%2Fb", idb.DropUrl("a/b"))
	assert.Equal(t, "", idb.ProfileUrl(""))
}
