//go:build linux

package rebootcli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amadigan/android-reboot/internal/applog"
	"github.com/amadigan/android-reboot/internal/boot"
	"github.com/amadigan/android-reboot/internal/config"
	"github.com/amadigan/android-reboot/internal/rebootmode"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"
)

var log = applog.New("android_reboot")

// Cli carries every process-wide effect the command needs so tests can swap
// them out.
type Cli struct {
	Name     string
	Env      map[string]string
	Geteuid  func() int
	System   boot.System
	Notifier func(tag string) boot.Notifier
	Rebooter boot.Rebooter
	Stdout   io.Writer
	Stderr   io.Writer

	DefaultConfig string
	ConfigPath    string
	Verbose       bool
}

func New() *Cli {
	return &Cli{
		Name:     config.Name,
		Env:      environ(),
		Geteuid:  os.Geteuid,
		System:   boot.NewSystem(),
		Notifier: boot.NewNotifier,
		Rebooter: boot.NewRebooter(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,

		DefaultConfig: config.DefaultPath,
	}
}

func environ() map[string]string {
	env := map[string]string{}

	for _, pair := range os.Environ() {
		if k, v, ok := strings.Cut(pair, "="); ok {
			env[k] = v
		}
	}

	return env
}

func addFlags(flags *pflag.FlagSet, cli *Cli) {
	flags.StringVarP(&cli.ConfigPath, "config", "c", "", "tuning file (default $"+config.PathEnv+" or "+config.DefaultPath+")")
	flags.BoolVarP(&cli.Verbose, "verbose", "v", false, "log every shutdown step to stderr")
}

func NewRootCommand(cli *Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   cli.Name + " [" + strings.Join(rebootmode.Keywords(), "|") + "]",
		Short:                 "Stop all processes, flush filesystems and reboot",
		Version:               config.Version,
		Args:                  cobra.ArbitraryArgs,
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Run(args)
		},
	}

	cmd.SetOut(cli.Stdout)
	cmd.SetErr(cli.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Kind: UsageError, Err: err}
	})

	addFlags(cmd.Flags(), cli)

	return cmd
}

// Run validates the request, then performs the shutdown sequence and the
// final reboot call. Nothing is touched until every check has passed.
func (cli *Cli) Run(args []string) error {
	if cli.Geteuid() != 0 {
		return &ExitError{Kind: PrivilegeError, Err: errors.New("Must be run as root.")}
	}

	if len(args) > 1 {
		return &ExitError{Kind: UsageError, Err: errTooManyArgs}
	}

	mode, err := rebootmode.ResolveArgs(args)
	if err != nil {
		return &ExitError{Kind: UnknownCommand, Err: err}
	}

	conf, path, err := config.Load(cli.Env, cli.ConfigPath, cli.DefaultConfig)
	if err != nil {
		return &ExitError{Kind: ConfigError, Err: err}
	}

	// stderr may be a pipe whose reader goes away during the shutdown
	cli.System.IgnoreSignals(unix.SIGPIPE)

	level := conf.LogLevel
	if cli.Verbose {
		level = applog.LogLevelDebug
	}

	applog.SetLogHandler(&applog.WriterLogHandler{Out: cli.Stderr, Level: level})

	if path != "" {
		log.Debugf("loaded %s", path)
	}

	log.Infof("shutting down for %s (%s), grace %s", mode, mode.Kind, conf.Grace)

	seq := &boot.Sequencer{
		System:   cli.System,
		Notifier: cli.Notifier(conf.SyslogTag),
		Stdout:   cli.Stdout,
		Grace:    conf.Grace,
	}

	seq.Run()

	if err := cli.Rebooter.Reboot(mode); err != nil {
		return &ExitError{Kind: RebootError, Err: fmt.Errorf("reboot %s failed: %w", mode, err)}
	}

	return nil
}

func (cli *Cli) Usage() string {
	return fmt.Sprintf("Usage: %s [%s]\n", cli.Name, strings.Join(rebootmode.Keywords(), ", "))
}

// Report prints err the way the failure kind requires and returns the exit
// status.
func (cli *Cli) Report(err error) int {
	var exit *ExitError
	if !errors.As(err, &exit) {
		exit = &ExitError{Kind: UsageError, Err: err}
	}

	// like the shell tool, a wrong argument count only gets the usage line
	if !errors.Is(exit.Err, errTooManyArgs) {
		fmt.Fprintln(cli.Stderr, exit.Err)
	}

	if exit.Kind == UsageError || exit.Kind == UnknownCommand {
		fmt.Fprint(cli.Stdout, cli.Usage())
	}

	return 1
}
