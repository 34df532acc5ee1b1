package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/gg-studio/ai"
	"github.com/gogpu/gg-studio/credential"
)

var validateKeyCmd = &cobra.Command{
	Use:   "validate-key [key]",
	Short: "Validate a Gemini API key and store it",
	Long: `Check the key against the Gemini API and, when it is valid, store it in
the settings database for later runs. Without an argument the key is read
from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidateKey,
}

func init() {
	rootCmd.AddCommand(validateKeyCmd)
}

func runValidateKey(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read key: %w", err)
		}
		key = line
	}
	key = strings.TrimSpace(key)

	v := ai.New(key, ai.WithTimeout(cfg.AITimeout)).Validate(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), v.Message)
	if !v.Valid {
		return errors.New("key not stored")
	}

	store, err := credential.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveAPIKey(cmd.Context(), key)
}
