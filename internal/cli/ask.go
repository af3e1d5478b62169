package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Resolve one question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		svc, err := buildService(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer svc.cleanup()

		req := &entities.ChatRequest{Query: strings.Join(args, " ")}
		resolution, err := svc.resolver.Resolve(cmd.Context(), req)
		if err != nil {
			return err
		}

		if askJSON {
			return json.NewEncoder(os.Stdout).Encode(resolution)
		}
		fmt.Println(resolution.Answer)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the full resolution as JSON")
}
