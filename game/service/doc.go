// Package service provides the business logic layer for the Snakes and
// Ladders server.
//
// The service package implements:
//   - Multi-session game management
//   - Board configuration lookup
//   - Turn execution with seeded or explicit dice
//   - Turn history and final standings
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager stores sessions and ConfigManager loads board
// configurations; both are implemented by sibling packages and injected.
//
// Architecture:
//
// The service layer sits between the shells (console, MCP) and the game
// engine. Each session owns its own engine, a seeded die so the game can be
// replayed from its seed, and an EventLog that turns engine notifications
// into display messages.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{ConfigName: "classic"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	gameService.AddPlayer(ctx, info.ID, "alice")
//	gameService.StartGame(ctx, info.ID)
//	result, err := gameService.PlayTurn(ctx, info.ID, 0)
package service
