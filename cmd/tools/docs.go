package tools

import (
	"fmt"
	"strings"

	"github.com/Manu343726/cpx/pkg/hw/cpu"
	"github.com/Manu343726/cpx/pkg/hw/cpu/storage"
	"github.com/Manu343726/cpx/pkg/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Filesystem the documentation is written to when --output is given
var Fs afero.Fs = afero.NewOsFs()

var supportedModules = map[string]func() string{
	"cpu.isa":     isaDocString,
	"cpu.storage": storageDocString,
}

// Documents every instruction a program can use
func isaDocString() string {
	var builder strings.Builder

	builder.WriteString("Instruction set\n\n")

	for _, d := range utils.Filter(cpu.OpCodes(), func(d cpu.OpCodeDescriptor) bool {
		return d.OpCode != cpu.OpCode_NOP
	}) {
		operands := strings.Join(utils.Iota(d.Operands, func(i int) string {
			return fmt.Sprintf("<r%d>", i)
		}), " ")

		fmt.Fprintf(&builder, "  %-18s %s\n", strings.TrimSpace(d.Mnemonic+" "+operands), d.Description)
	}

	fmt.Fprintf(&builder, "\nRegisters are written %s0 to %s%d. Lines starting with '%s' are comments.\n",
		cpu.RegisterPrefix, cpu.RegisterPrefix, cpu.RegisterCount-1, cpu.CommentMarker)

	return builder.String()
}

// Documents the register persistence layout
func storageDocString() string {
	return fmt.Sprintf(`Register storage

Each register is stored in its own file inside the registers directory (default '%s'):
%s
Every file holds exactly %d bytes, the register value as a big-endian unsigned integer.
A missing file reads as zero. Files are replaced atomically when registers are saved.
`, storage.DefaultDirectory, strings.Join(utils.Map(utils.Indices(cpu.RegisterCount), func(i int) string {
		return "  " + storage.SlotName(i) + "\n"
	}), ""), storage.SlotSize)
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show cpx documentation",
	Long: `Dumps the documentation of the specified cpx module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
` + strings.Join(utils.Map(utils.SortedKeys(supportedModules), func(module string) string { return "  " + module }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: utils.SortedKeys(supportedModules),
	RunE: func(cmd *cobra.Command, args []string) error {
		module := args[0]
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			file, err := Fs.Create(outputFile)
			if err != nil {
				return fmt.Errorf("error creating file: %w", err)
			}
			defer file.Close()
			fmt.Fprintln(file, supportedModules[module]())
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), supportedModules[module]())
		}
		return nil
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
