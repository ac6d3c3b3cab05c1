package boot

import (
	"log/syslog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
)

type linuxSystem struct{}

func NewSystem() System {
	return linuxSystem{}
}

func (linuxSystem) IgnoreSignals(sigs ...os.Signal) {
	signal.Ignore(sigs...)
}

func (linuxSystem) EnableCAD() error {
	return reboot(unix.LINUX_REBOOT_CMD_CAD_ON, "")
}

func (linuxSystem) Sync() {
	unix.Sync()
}

func (linuxSystem) Kill(pid int, sig unix.Signal) error {
	return unix.Kill(pid, sig)
}

func (linuxSystem) Sleep(d time.Duration) {
	time.Sleep(d)
}

type syslogNotifier struct {
	w *syslog.Writer
}

func (n *syslogNotifier) Notice(msg string) error {
	return n.w.Notice(msg)
}

type discardNotifier struct{}

func (discardNotifier) Notice(string) error { return nil }

// NewNotifier connects to the local system logger with the kernel facility.
// Without a reachable logger the notices are dropped.
func NewNotifier(tag string) Notifier {
	w, err := syslog.New(syslog.LOG_KERN|syslog.LOG_NOTICE, tag)
	if err != nil {
		log.Warnf("syslog unavailable, notices dropped: %v", err)

		return discardNotifier{}
	}

	return &syslogNotifier{w: w}
}
