// Package wager holds the game-independent part of the engine: the stake
// ledger, the single-round session state machine, random draws and the
// settled Result shape shared by every game.
//
// A round always follows the same order. The game draws its outcome first,
// so a failing random source never touches the balance. The session then
// commits the stake (reserving it on the Account), resolves, and settles by
// crediting stake*multiplier and notifying its ResultReporter.
package wager
