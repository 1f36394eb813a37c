package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Manu343726/cpx/pkg/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Check passwords against the stored password hash",
}

var passwdCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Prompt for a password and compare it against the stored hash",
	Long: `Prompts for a password and compares it against the bcrypt hash stored in the hash file.

Prints "correct" and exits with status 0 on a match, prints "incorrect" and exits with status 1 otherwise.
When stdin is not a terminal the password is read from its first line.`,
	Args: cobra.NoArgs,
	RunE: runPasswdCheck,
}

var passwdHashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Prompt for a password and store its hash in the hash file",
	Args:  cobra.NoArgs,
	RunE:  runPasswdHash,
}

func init() {
	passwdCmd.AddCommand(passwdCheckCmd, passwdHashCmd)
	passwdHashCmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
}

// Reads a password, without echo when the command input is a terminal
func readPassword(cmd *cobra.Command) ([]byte, error) {
	in := cmd.InOrStdin()

	if file, isFile := in.(*os.File); isFile && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		password, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		return password, err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return nil, fmt.Errorf("could not read password: %w", err)
	}

	return []byte(strings.TrimRight(line, "\r\n")), nil
}

func runPasswdCheck(cmd *cobra.Command, args []string) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	path := viper.GetString(configHashFile)

	ok, err := auth.Verify(Fs, path, password)
	if err != nil {
		return err
	}

	logger.Info("password checked", "hash_file", path, "match", ok)

	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "incorrect")
		return &exitError{code: 1}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "correct")
	return nil
}

func runPasswdHash(cmd *cobra.Command, args []string) error {
	cost, _ := cmd.Flags().GetInt("cost")

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	path := viper.GetString(configHashFile)

	if err := auth.WriteHash(Fs, path, password, cost); err != nil {
		return err
	}

	logger.Info("password hash written", "hash_file", path, "cost", cost)
	return nil
}
