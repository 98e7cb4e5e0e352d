package chat

import "fmt"

// RoomName maps an unordered pair of user IDs to the canonical relay channel.
// Commutative, so both participants land on the same room regardless of who
// connects first.
func RoomName(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("chat_%d_%d", a, b)
}
