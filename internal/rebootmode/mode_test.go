package rebootmode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestResolveKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Mode
	}{
		{"shutdown", Mode{Kind: PowerOff}},
		{"reboot", Mode{Kind: Restart}},
		{"download", Mode{Kind: RestartAlternate, Target: "download"}},
		{"recovery", Mode{Kind: RestartAlternate, Target: "recovery"}},
		{"fastboot", Mode{Kind: RestartAlternate, Target: "fastboot"}},
		{"bootloader", Mode{Kind: RestartAlternate, Target: "bootloader"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(ptr(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDefault(t *testing.T) {
	t.Parallel()

	def, err := Resolve(nil)
	require.NoError(t, err)

	explicit, err := Resolve(ptr("reboot"))
	require.NoError(t, err)

	assert.Equal(t, explicit, def)
	assert.Equal(t, Restart, def.Kind)
	assert.False(t, def.Alternate())
}

func TestResolvePrefixLength(t *testing.T) {
	t.Parallel()

	got, err := Resolve(ptr("shutdownextra"))
	require.NoError(t, err)
	assert.Equal(t, Mode{Kind: PowerOff}, got)

	got, err = Resolve(ptr("recoveryXYZ"))
	require.NoError(t, err)
	assert.Equal(t, "recovery", got.Target)

	for _, in := range []string{"shut", "shutdow", "boot", "reboo", "fast"} {
		_, err := Resolve(ptr(in))
		assert.ErrorIs(t, err, ErrUnknownCommand, in)
	}
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"foo", "", "Shutdown", "REBOOT", " reboot", "poweroff"} {
		mode, err := Resolve(ptr(in))

		var uerr *UnknownCommandError
		require.True(t, errors.As(err, &uerr), "%q", in)
		assert.Equal(t, in, uerr.Command)
		assert.Equal(t, Mode{}, mode)
		assert.False(t, mode.Valid())
	}

	_, err := Resolve(ptr("foo"))
	assert.EqualError(t, err, "Unknown command: foo")
}

func TestResolveArgs(t *testing.T) {
	t.Parallel()

	mode, err := ResolveArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, Mode{Kind: Restart}, mode)

	mode, err = ResolveArgs([]string{"bootloader"})
	require.NoError(t, err)
	assert.True(t, mode.Alternate())
	assert.Equal(t, "bootloader", mode.String())
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"bootloader", "download", "fastboot", "reboot", "recovery", "shutdown"}, Keywords())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "power-off", PowerOff.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestModeValid(t *testing.T) {
	t.Parallel()

	assert.False(t, Mode{}.Valid())
	assert.Empty(t, Mode{}.String())
	assert.False(t, Mode{Kind: RestartAlternate}.Valid())
	assert.False(t, Mode{Kind: Restart, Target: "recovery"}.Valid())

	for _, kw := range Keywords() {
		mode, err := Resolve(&kw)
		require.NoError(t, err)
		assert.True(t, mode.Valid(), kw)
	}
}
