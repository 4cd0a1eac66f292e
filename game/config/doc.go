// Package config provides board and process configuration for the Snakes and
// Ladders server.
//
// The config package handles:
//   - Loading board jump tables from JSON files
//   - Board validation on load and save
//   - Default board selection with a built-in fallback
//   - Board discovery and listing
//   - Process settings from the environment and .env files
//
// Board Format:
//
// Boards are stored as JSON files in the configs directory. The file name
// without extension is the board ID used when creating sessions:
//
//	{
//	  "name": "classic",
//	  "description": "Classic board with five snakes and five ladders",
//	  "jumps": {"4": 23, "97": 49}
//	}
//
// A jump whose destination is above its trigger is a ladder, one below is a
// snake. The track length is always 100.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	board, err := manager.LoadConfig("classic")
//	boards, err := manager.ListConfigs()
//
// Settings:
//
// LoadSettings reads CONFIG_DIR, GAME_SEED, MAX_TURNS, SESSION_TTL and DEBUG,
// after loading a .env file when one is present.
package config
