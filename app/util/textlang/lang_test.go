package textlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	assert.Equal(t, English, Detect("how many overtime hours?"))
	assert.Equal(t, Arabic, Detect("كم ساعات العمل الإضافي؟"))
	assert.Equal(t, Arabic, Detect("overtime للموظف 15013814"))
	assert.Equal(t, English, Detect(""))
	assert.Equal(t, English, Detect("1234 !?"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "English", English.Label())
	assert.Equal(t, "العربية", Arabic.Label())
}
