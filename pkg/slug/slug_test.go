package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Managing Type 2 Diabetes", "managing-type-2-diabetes"},
		{"  Heart   Health!! ", "heart-health"},
		{"Café au lait spots", "cafe-au-lait-spots"},
		{"COVID-19: what now?", "covid-19-what-now"},
		{"???", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Make(tt.in), tt.in)
	}
}

func TestMakeTruncates(t *testing.T) {
	out := Make(strings.Repeat("ab ", 200))
	assert.LessOrEqual(t, len(out), maxLength)
	assert.False(t, strings.HasSuffix(out, "-"))
}
