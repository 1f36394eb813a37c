package cmd

import (
	"fmt"
	"io"

	"github.com/Manu343726/cpx/pkg/hw/cpu"
	"github.com/fatih/color"
	"github.com/spf13/viper"
)

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorValue = color.New(color.FgGreen)
	colorReg   = color.New(color.FgGreen)
	colorHex   = color.New(color.FgMagenta)
)

// Applies the color setting (auto, always, never) to every console color
func configureColors() error {
	mode := viper.GetString(configColor)

	switch mode {
	case "auto", "":
		// fatih/color already disables itself when stdout is not a terminal
		return nil
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid color mode '%s', expected auto, always or never", mode)
	}

	return nil
}

// colorConsole prints shown values and execution errors, colored when enabled
type colorConsole struct {
	w io.Writer
}

func makeConsole(w io.Writer) cpu.Console {
	return &colorConsole{w: w}
}

func (c *colorConsole) Show(register int, value cpu.Word) {
	colorValue.Fprintln(c.w, value)
}

func (c *colorConsole) Error(err *cpu.ExecutionError) {
	colorError.Fprintln(c.w, err.Error())
}
