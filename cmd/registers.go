package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Manu343726/cpx/pkg/hw/cpu"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var registersCmd = &cobra.Command{
	Use:   "registers",
	Short: "Inspect and edit the persisted registers",
	Long: `Reads and writes the register files used by cpx runs.

Example:
  cpx registers show
  cpx registers show --format yaml
  cpx registers set x1 0x80000000
  cpx registers reset`,
}

var registersShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted register values",
	Args:  cobra.NoArgs,
	RunE:  runRegistersShow,
}

var registersSetCmd = &cobra.Command{
	Use:   "set <register> <value>",
	Short: "Store a value (decimal, 0x hex, 0b binary or 0o octal) into a register",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegistersSet,
}

var registersResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove all register files, setting every register to zero",
	Args:  cobra.NoArgs,
	RunE:  runRegistersReset,
}

func init() {
	registersCmd.AddCommand(registersShowCmd, registersSetCmd, registersResetCmd)
	registersShowCmd.Flags().StringP("format", "f", "table", "Output format (table, yaml)")
}

type registerEntry struct {
	Name  string   `yaml:"name"`
	Value cpu.Word `yaml:"value"`
	Hex   string   `yaml:"hex"`
}

type registerDump struct {
	Directory string          `yaml:"directory"`
	Registers []registerEntry `yaml:"registers"`
}

func makeRegisterDump(dir string, rf *cpu.RegisterFile) registerDump {
	values := rf.Values()
	dump := registerDump{Directory: dir, Registers: make([]registerEntry, 0, len(values))}

	for i, value := range values {
		dump.Registers = append(dump.Registers, registerEntry{
			Name:  cpu.RegisterName(i),
			Value: value,
			Hex:   fmt.Sprintf("0x%08X", value),
		})
	}

	return dump
}

func writeRegisterTable(w io.Writer, dump registerDump) {
	for _, r := range dump.Registers {
		fmt.Fprintf(w, "%s %s %s\n",
			colorReg.Sprintf("%-4s", r.Name),
			colorValue.Sprintf("%10d", r.Value),
			colorHex.Sprint(r.Hex))
	}
}

func loadPersistedRegisters() (*cpu.RegisterFile, error) {
	store := registerStore()
	rf := cpu.MakeRegisterFile()

	if err := store.Load(rf); err != nil {
		return rf, fmt.Errorf("could not load registers from '%s': %w", store.Directory(), err)
	}

	return rf, nil
}

func runRegistersShow(cmd *cobra.Command, args []string) error {
	if err := configureColors(); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")

	rf, err := loadPersistedRegisters()
	if err != nil {
		return &exitError{code: exitBadRegisters, err: err}
	}

	dump := makeRegisterDump(registerStore().Directory(), rf)

	switch format {
	case "table":
		writeRegisterTable(cmd.OutOrStdout(), dump)
	case "yaml":
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		if err := encoder.Encode(dump); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported format '%s', expected table or yaml", format)
	}

	return nil
}

func runRegistersSet(cmd *cobra.Command, args []string) error {
	index, err := cpu.ParseRegister(args[0])
	if err != nil {
		return err
	}

	value, err := strconv.ParseUint(args[1], 0, cpu.WordBits)
	if err != nil {
		return fmt.Errorf("invalid register value '%s': %w", args[1], err)
	}

	rf, err := loadPersistedRegisters()
	if err != nil {
		return &exitError{code: exitBadRegisters, err: err}
	}

	if err := rf.Set(index, value); err != nil {
		return err
	}

	if err := registerStore().Save(rf); err != nil {
		return &exitError{code: exitPersistenceError, err: err}
	}

	logger.Info("register updated", "register", args[0], "value", value)
	return nil
}

func runRegistersReset(cmd *cobra.Command, args []string) error {
	if err := registerStore().Clear(); err != nil {
		return &exitError{code: exitPersistenceError, err: err}
	}

	logger.Info("registers reset", "directory", registerStore().Directory())
	return nil
}
