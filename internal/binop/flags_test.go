package binop

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		src  string
		want Flags
	}{
		{"", Flags{}},
		{"commute", Flags{Commute: true}},
		{"commute, refs_clone", Flags{Commute: true, RefsClone: true}},
		{"derefs,", Flags{Derefs: true}},
		{"refs_clone = true, dev_print", Flags{RefsClone: true, DevPrint: true}},
		{"commute = false, derefs=true", Flags{Derefs: true}},
		{"commute, refs_clone, derefs, dev_print", Flags{Commute: true, RefsClone: true, Derefs: true, DevPrint: true}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := ParseFlagsString(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlags_String(t *testing.T) {
	assert.Equal(t, "", Flags{}.String())
	assert.Equal(t, "commute, derefs", Flags{Commute: true, Derefs: true}.String())
	assert.False(t, Flags{DevPrint: true}.Any())
	assert.True(t, Flags{RefsClone: true}.Any())
}

func TestParseFlags_Errors(t *testing.T) {
	srcs := []string{
		"comute",
		"inline",
		"commute, commute",
		"derefs = yes",
		"derefs =",
		"commute derefs",
		`"commute"`,
		"RefsClone",
	}

	var report strings.Builder

	for _, src := range srcs {
		_, err := ParseFlagsString(src)
		require.Error(t, err, src)

		var fe *FlagError
		require.True(t, errors.As(err, &fe), "%s: got %T", src, err)

		fmt.Fprintf(&report, "%s\n\t%v\n", src, err)
	}

	golden.Assert(t, report.String(), "flag_errors.golden")
}

func TestParseFlags_Suggestion(t *testing.T) {
	_, err := ParseFlagsString("refs_clones")

	var fe *FlagError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "refs_clones", fe.Key)
	assert.Equal(t, "refs_clone", fe.Suggestion)
}
