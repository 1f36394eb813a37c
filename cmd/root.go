package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/cpx/cmd/tools"
	"github.com/Manu343726/cpx/pkg/auth"
	"github.com/Manu343726/cpx/pkg/hw/cpu/storage"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys
const (
	configRegistersDir = "registers.dir"
	configLogLevel     = "log.level"
	configLogFile      = "log.file"
	configHashFile     = "passwd.file"
	configColor        = "color"
)

const usage = "Usage: cpx pseudo_assembly_file"

var cfgFile string
var configErr error

// Filesystem used for programs, register slots, logs and password hashes
var Fs afero.Fs = afero.NewOsFs()

// Logger configured from the log.* settings, available once a command starts running
var logger = slog.New(slog.DiscardHandler)
var logCloser io.Closer

// rootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cpx pseudo_assembly_file",
	Short: "A tiny register machine interpreter",
	Long: `cpx runs pseudo-assembly programs against a bank of 16 unsigned 32-bit registers.

Registers are loaded from one file per register (x0.bin to x15.bin, 4 bytes big-endian)
before the program starts, and written back when it halts, fails or runs out of lines.

Supported instructions:
  add dst src          dst <- dst + src
  sub dst src          dst <- dst - src
  sll src dst shift    dst <- src << (shift & 31)
  srl src dst shift    dst <- src >> (shift & 31)
  shw src              print src
  halt                 stop

Example:
  cpx program.asm
  cpx --registers-dir state/ program.asm`,
	Args:              programArgs,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: closeLogging,
	RunE:              runProgram,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// UsageError reports a wrong invocation of the CLI. No register is read or written.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%v\n%s", e.Err, usage)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func programArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return &UsageError{Err: err}
	}

	return nil
}

// exitError carries the process exit code of a failed command.
// A nil err means the command already reported the failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}

	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// Returns the process exit code for an error returned by a command
func ExitCode(err error) int {
	var exit *exitError

	if err == nil {
		return 0
	} else if errors.As(err, &exit) {
		return exit.code
	}

	return 1
}

// Prints an error returned by a command the way the user should see it
func ReportError(cmd *cobra.Command, err error) {
	var usageErr *UsageError
	var exit *exitError

	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintln(cmd.OutOrStdout(), usage)
	case errors.As(err, &exit) && exit.err == nil:
	default:
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
}

// Rewrites the command line so a single argument naming an existing file always
// runs that file as a program, even if it is also the name of a subcommand.
func programPathArgs(args []string) []string {
	if len(args) != 1 || strings.HasPrefix(args[0], "-") {
		return args
	}

	if info, err := Fs.Stat(args[0]); err != nil || info.IsDir() {
		return args
	}

	// "--" stops cobra from looking the argument up as a subcommand
	return []string{"--", args[0]}
}

// Runs the command tree with the given command line arguments
func ExecuteArgs(args []string) (*cobra.Command, error) {
	tools.Fs = Fs
	RootCmd.SetArgs(programPathArgs(args))
	return RootCmd.ExecuteC()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cmd, err := ExecuteArgs(os.Args[1:])
	if err != nil {
		ReportError(cmd, err)
		os.Exit(ExitCode(err))
	}
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd, registersCmd, passwdCmd)
	RootCmd.CompletionOptions.DisableDefaultCmd = true
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cpx.yaml)")
	flags.String("registers-dir", storage.DefaultDirectory, "Directory holding the register files")
	flags.String("log-level", "warn", "Log level written to stderr (debug, info, warn, error)")
	flags.String("log-file", "", "Also write debug level JSON logs to this file")
	flags.String("hash-file", auth.DefaultHashFile, "File holding the bcrypt password hash")
	flags.String("color", "auto", "Colorize output (auto, always, never)")

	viper.BindPFlag(configRegistersDir, flags.Lookup("registers-dir"))
	viper.BindPFlag(configLogLevel, flags.Lookup("log-level"))
	viper.BindPFlag(configLogFile, flags.Lookup("log-file"))
	viper.BindPFlag(configHashFile, flags.Lookup("hash-file"))
	viper.BindPFlag(configColor, flags.Lookup("color"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search config in home directory with name ".cpx" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cpx")
	}

	viper.SetEnvPrefix("CPX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// A missing config file is fine, a broken one is reported once logging is up.
	configErr = nil
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = err
		}
	}
}
