package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	roomCmd := &cobra.Command{
		Use:   "room",
		Short: "Room operations",
	}

	roomCmd.AddCommand(newRoomCreateCmd())
	roomCmd.AddCommand(newRoomJoinCmd())
	roomCmd.AddCommand(newRoomGetCmd())

	return roomCmd
}

func newRoomCreateCmd() *cobra.Command {
	var gameID, playerID, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"game_id":   gameID,
				"player_id": playerID,
				"name":      name,
			}

			var result RoomState
			if err := client.Post("/api/v1/rooms", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game id (defaults to the server's built-in game)")
	cmd.Flags().StringVar(&playerID, "player", "", "Host player id")
	cmd.Flags().StringVar(&name, "name", "", "Host display name")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	var playerID, name string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join an existing room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"player_id": playerID,
				"name":      name,
			}

			var result RoomState
			path := fmt.Sprintf("/api/v1/rooms/%s/join", url.PathEscape(args[0]))
			if err := client.Post(path, body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player id")
	cmd.Flags().StringVar(&name, "name", "", "Player display name")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show a room's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomState
			path := fmt.Sprintf("/api/v1/rooms/%s", url.PathEscape(args[0]))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
