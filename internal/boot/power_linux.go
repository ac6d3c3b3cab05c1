package boot

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/amadigan/android-reboot/internal/rebootmode"
	"golang.org/x/sys/unix"
)

// Rebooter hands the final reboot request to the kernel. On success the call
// does not return.
type Rebooter interface {
	Reboot(mode rebootmode.Mode) error
}

type rebootCall func(cmd uint32, arg string) error

type linuxRebooter struct {
	call  rebootCall
	flush func()
}

func NewRebooter() Rebooter {
	return &linuxRebooter{call: reboot, flush: flush}
}

func Command(mode rebootmode.Mode) (uint32, error) {
	if !mode.Valid() {
		return 0, fmt.Errorf("invalid reboot mode %s %q", mode.Kind, mode.Target)
	}

	switch mode.Kind {
	case rebootmode.PowerOff:
		return unix.LINUX_REBOOT_CMD_POWER_OFF, nil
	case rebootmode.RestartAlternate:
		return unix.LINUX_REBOOT_CMD_RESTART2, nil
	default:
		return unix.LINUX_REBOOT_CMD_RESTART, nil
	}
}

func (r *linuxRebooter) Reboot(mode rebootmode.Mode) error {
	cmd, err := Command(mode)
	if err != nil {
		return err
	}

	r.flush()

	return r.call(cmd, mode.Target)
}

func flush() {
	for _, f := range []*os.File{
		os.Stdout,
		os.Stderr,
	} {
		_ = unix.Fsync(int(f.Fd()))
	}

	unix.Sync()
}

// reboot issues reboot(2) directly. unix.Reboot takes an int, which cannot
// hold the magic commands on 32-bit targets, and it never forwards the
// RESTART2 command string.
func reboot(cmd uint32, arg string) error {
	var argp *byte

	if arg != "" {
		p, err := unix.BytePtrFromString(arg)
		if err != nil {
			return err
		}

		argp = p
	}

	_, _, errno := unix.Syscall6(unix.SYS_REBOOT,
		unix.LINUX_REBOOT_MAGIC1, unix.LINUX_REBOOT_MAGIC2, uintptr(cmd),
		uintptr(unsafe.Pointer(argp)), 0, 0)
	if errno != 0 {
		return errno
	}

	return nil
}
