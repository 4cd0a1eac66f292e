// Package console runs a game of Snakes and Ladders on a terminal.
//
// The shell asks for players one at a time, rejects blank names, and then
// waits for Enter before each roll. Engine events are printed as they happen.
package console
