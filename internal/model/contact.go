package model

import "time"

// Contact is one entry in a user's conversation list: the counterpart user
// together with the most recent message exchanged with them.
type Contact struct {
	// User is the counterpart, the other participant of the conversation.
	User *User `json:"user"`
	// Preview is the content of the most recent message, untruncated.
	// Truncation is a presentation concern.
	Preview string `json:"preview"`
	// LastTime is the timestamp of the most recent message.
	LastTime time.Time `json:"last_time"`
	// FromMe reports whether the most recent message was sent by the
	// list's owner rather than the counterpart.
	FromMe bool `json:"from_me"`
}
