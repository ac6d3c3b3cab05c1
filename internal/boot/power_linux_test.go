package boot

import (
	"testing"

	"github.com/amadigan/android-reboot/internal/rebootmode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type call struct {
	cmd uint32
	arg string
}

func fakeRebooter() (*linuxRebooter, *[]call, *int) {
	var calls []call
	flushes := 0

	r := &linuxRebooter{
		call: func(cmd uint32, arg string) error {
			calls = append(calls, call{cmd: cmd, arg: arg})

			return nil
		},
		flush: func() { flushes++ },
	}

	return r, &calls, &flushes
}

func TestRebootStandard(t *testing.T) {
	t.Parallel()

	r, calls, flushes := fakeRebooter()

	require.NoError(t, r.Reboot(rebootmode.Mode{Kind: rebootmode.Restart}))
	require.NoError(t, r.Reboot(rebootmode.Mode{Kind: rebootmode.PowerOff}))

	assert.Equal(t, []call{
		{cmd: unix.LINUX_REBOOT_CMD_RESTART},
		{cmd: unix.LINUX_REBOOT_CMD_POWER_OFF},
	}, *calls)
	assert.Equal(t, 2, *flushes)
}

func TestRebootAlternate(t *testing.T) {
	t.Parallel()

	r, calls, _ := fakeRebooter()

	mode, err := rebootmode.ResolveArgs([]string{"bootloader"})
	require.NoError(t, err)
	require.NoError(t, r.Reboot(mode))

	assert.Equal(t, []call{{cmd: unix.LINUX_REBOOT_CMD_RESTART2, arg: "bootloader"}}, *calls)
}

func TestRebootInvalidMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []rebootmode.Mode{
		{},
		{Kind: rebootmode.RestartAlternate},
		{Kind: rebootmode.Kind(7)},
	} {
		r, calls, flushes := fakeRebooter()

		assert.Error(t, r.Reboot(mode), "%+v", mode)
		assert.Empty(t, *calls)
		assert.Zero(t, *flushes)
	}
}

func TestRebootIgnoresFailedResolve(t *testing.T) {
	t.Parallel()

	r, calls, _ := fakeRebooter()
	arg := "foo"

	mode, err := rebootmode.Resolve(&arg)
	require.Error(t, err)

	assert.Error(t, r.Reboot(mode))
	assert.Empty(t, *calls)
}

func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode rebootmode.Mode
		want uint32
	}{
		{rebootmode.Mode{Kind: rebootmode.Restart}, unix.LINUX_REBOOT_CMD_RESTART},
		{rebootmode.Mode{Kind: rebootmode.PowerOff}, unix.LINUX_REBOOT_CMD_POWER_OFF},
		{rebootmode.Mode{Kind: rebootmode.RestartAlternate, Target: "recovery"}, unix.LINUX_REBOOT_CMD_RESTART2},
	}

	for _, tt := range tests {
		got, err := Command(tt.mode)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := Command(rebootmode.Mode{})
	assert.Error(t, err)
}
