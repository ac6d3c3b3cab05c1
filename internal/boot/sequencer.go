package boot

import (
	"io"
	"os"
	"syscall"
	"time"

	"github.com/amadigan/android-reboot/internal/applog"
	"golang.org/x/sys/unix"
)

var log = applog.New("boot")

const DefaultGrace = time.Second

// broadcastPID addresses every process the caller may signal except itself.
const broadcastPID = -1

const goingDown = "\nThe system is going down NOW !!"

// System is the set of process-wide effects the shutdown sequence performs.
type System interface {
	IgnoreSignals(sigs ...os.Signal)
	EnableCAD() error
	Sync()
	Kill(pid int, sig unix.Signal) error
	Sleep(d time.Duration)
}

// Notifier receives the kernel facility notices. Implementations must not
// block once the system logger has been killed.
type Notifier interface {
	Notice(msg string) error
}

type Sequencer struct {
	System   System
	Notifier Notifier
	Stdout   io.Writer
	Grace    time.Duration
}

// Run performs the shutdown sequence. No step can stop it: failures are
// logged at debug level and the next step runs regardless.
func (s *Sequencer) Run() {
	grace := s.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}

	// SIGPIPE too: once the reader of stdout or stderr has been killed the
	// runtime would otherwise raise it on the next announcement
	s.System.IgnoreSignals(syscall.SIGTERM, syscall.SIGHUP, syscall.SIGPIPE)

	if err := s.System.EnableCAD(); err != nil {
		log.Debugf("failed to enable ctrl-alt-del: %v", err)
	}

	s.announce(goingDown, goingDown)

	s.System.Sync()

	s.broadcast("TERM", unix.SIGTERM, grace)

	s.System.Sync()

	s.broadcast("KILL", unix.SIGKILL, grace)

	s.System.Sync()
}

func (s *Sequencer) broadcast(name string, sig unix.Signal, grace time.Duration) {
	s.announce("Sending SIG"+name+" to all processes.", name)

	if err := s.System.Kill(broadcastPID, sig); err != nil {
		log.Debugf("failed to send SIG%s: %v", name, err)
	}

	s.System.Sleep(grace)
}

func (s *Sequencer) announce(notice string, echo string) {
	if s.Notifier != nil {
		if err := s.Notifier.Notice(notice); err != nil {
			log.Debugf("failed to write notice: %v", err)
		}
	}

	if s.Stdout != nil {
		if _, err := io.WriteString(s.Stdout, "\r"+echo+"\n"); err != nil {
			log.Debugf("failed to write announcement: %v", err)
		}
	}
}
