package domain

// SessionID identifies a per-client engine conversation.
// Zero is reserved for engine-wide notifications.
type SessionID uint64
