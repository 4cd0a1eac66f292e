// Package session provides in-memory session management for the Snakes and
// Ladders server.
//
// Manager stores service.Session values, each owning an independent game
// engine, and implements service.SessionManager. Generated IDs are the first
// eight characters of a random UUID; lookups are case-insensitive.
//
// Sessions are never written to disk. They are removed explicitly, when their
// game ends through the service, or by CleanupExpiredSessions once they have
// not been accessed for a given duration. RunCleanup does the latter on a
// timer.
//
// Usage:
//
//	manager := session.NewManager()
//	sess, err := manager.Create("", boardConfig, service.SessionOptions{Seed: 42})
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess, err = manager.Get(sess.ID)
//
// The manager is safe for concurrent use.
package session
