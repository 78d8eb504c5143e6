package gs1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	want := "(01)01234567890128\x1D(17)250101\x1D(10)ABC123"

	cases := map[string]string{
		"token":        "(01)01234567890128<GS>(17)250101<GS>(10)ABC123",
		"hex escape":   `(01)01234567890128\x1D(17)250101\x1d(10)ABC123`,
		"unicode":      `(01)01234567890128\u001d(17)250101\u001D(10)ABC123`,
		"already real": want,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, Expand(in, DefaultToken))
		})
	}
}

func TestExpandCustomAndEmptyToken(t *testing.T) {
	assert.Equal(t, "a\x1db", Expand("a|b", "|"))
	assert.Equal(t, "a<GS>b", Expand("a<GS>b", ""))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "(01)1<GS>(10)A", Display("(01)1\x1d(10)A"))
}

func TestFields(t *testing.T) {
	assert.Nil(t, Fields(""))
	assert.Equal(t, []string{"(01)1", "(10)A"}, Fields("(01)1\x1d(10)A"))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "(01)****<GS>(10)***", Mask("(01)0123\x1d(10)ABC"))
	assert.Equal(t, "***", Mask("abc"))
}
