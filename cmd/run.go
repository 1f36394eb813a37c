package cmd

import (
	"fmt"

	"github.com/Manu343726/cpx/pkg/hw/cpu"
	"github.com/Manu343726/cpx/pkg/hw/cpu/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes of the run command. Execution errors in the program itself are
// reported on stdout and still exit with exitOK.
const (
	exitOK               = 0
	exitBadProgram       = 1
	exitBadRegisters     = 2
	exitPersistenceError = 3
)

// Returns the register store configured with --registers-dir
func registerStore() *storage.Store {
	return storage.MakeStore(Fs, viper.GetString(configRegistersDir)).WithLogger(logger)
}

func runProgram(cmd *cobra.Command, args []string) error {
	if err := configureColors(); err != nil {
		return err
	}

	path := args[0]

	program, err := cpu.ReadProgram(Fs, path)
	if err != nil {
		return &exitError{code: exitBadProgram, err: err}
	}

	logger.Debug("program loaded", "path", path, "lines", len(program))

	store := registerStore()
	registers := cpu.MakeRegisterFile()

	if err := store.Load(registers); err != nil {
		return &exitError{code: exitBadRegisters, err: fmt.Errorf("could not load registers from '%s': %w", store.Directory(), err)}
	}

	executor := cpu.MakeExecutor(registers, store, makeConsole(cmd.OutOrStdout()), logger)

	result, err := executor.Run(program)
	if err != nil {
		return &exitError{code: exitPersistenceError, err: err}
	}

	logger.Info("program finished",
		"path", path,
		"state", result.State.String(),
		"executed", result.Executed)

	return nil
}
