package main

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/minicommerce-backend/pkg/migrate"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "up", opts.cmd)
	assert.Equal(t, "", opts.dir)
	assert.Equal(t, migrate.Embedded().String(), opts.source().String())

	opts, err = parseFlags([]string{"-cmd", "create", "-name", "add_index"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, migrate.DefaultDir, opts.dir)
}

func TestParseFlagsRequiresCommandArguments(t *testing.T) {
	cases := [][]string{
		{"-cmd", "create"},
		{"-cmd", "version"},
		{"-cmd", "redo-everything"},
	}
	for _, args := range cases {
		_, err := parseFlags(args, io.Discard)
		require.Error(t, err, args)
		assert.True(t, errors.Is(err, errUsage), args)
	}

	opts, err := parseFlags([]string{"-cmd", "version", "-version", "20250601120400"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "20250601120400", opts.version)
}
