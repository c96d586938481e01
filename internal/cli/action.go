package cli

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newActionCmd() *cobra.Command {
	var playerID, payload string

	cmd := &cobra.Command{
		Use:   "action <code> <type>",
		Short: "Submit a game action to a room",
		Long: `Submit a named action to a room's game.

The payload, if any, is passed as raw JSON and interpreted by the room's
game template. Example:

  roomctl action AB2C4D GUESS --player alice --payload '{"value": 42}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"type":      args[1],
				"player_id": playerID,
			}
			if payload != "" {
				if !json.Valid([]byte(payload)) {
					return fmt.Errorf("payload is not valid JSON")
				}
				body["payload"] = json.RawMessage(payload)
			}

			var result RoomState
			path := fmt.Sprintf("/api/v1/rooms/%s/actions", url.PathEscape(args[0]))
			if err := client.Post(path, body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Acting player id")
	cmd.Flags().StringVar(&payload, "payload", "", "Action payload as raw JSON")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}
