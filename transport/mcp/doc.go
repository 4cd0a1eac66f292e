// Package mcp exposes Snakes and Ladders as Model Context Protocol tools.
//
// The server wraps a service.GameService and serves it over stdio. Every
// game tool takes a session_id; create_session returns one.
//
// Tools:
//   - create_session, list_sessions, get_session, delete_session
//   - add_player, start_game, roll_dice, play_to_end, end_game
//   - game_state, turn_history
//   - list_boards, describe_square, game_instructions
//
// Tool failures are reported as error results rather than protocol errors,
// so agents see the message and can recover.
//
// Usage:
//
//	server := mcp.NewServer(gameService, logger, 0)
//	if err := server.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil {
//		log.Fatal(err)
//	}
package mcp
