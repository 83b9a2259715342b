package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"form-binder/options"
)

func TestParseFlags(t *testing.T) {
	flags, unknown := options.ParseFlags([]string{"array", " EmptyNull ", "nope"})

	assert.True(t, flags.Has(options.FlagArray))
	assert.True(t, flags.Has(options.FlagEmptyNull))
	assert.False(t, flags.Has(options.FlagDate))
	assert.Equal(t, []string{"nope"}, unknown)
}

func TestFlagEnum_Has(t *testing.T) {
	f := options.FlagSort | options.FlagSortable

	assert.True(t, f.Has(options.FlagSort|options.FlagSortable))
	assert.False(t, f.Has(options.FlagSort|options.FlagArray))
	assert.True(t, options.FlagAll.Has(f))
	assert.True(t, f.Has(options.FlagNone))
}
