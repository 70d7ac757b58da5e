package protocol

import "github.com/google/uuid"

// Session identifies one client connection across the lifetime of its
// message exchange, the way the teacher's server assigns each MySQL
// connection an id for its process list and prepared-statement cache
// (spec §4.L). A random v4 UUID, rather than a sequential counter, lets
// the out-of-scope listener mint one per accepted connection without
// coordinating with anything else.
type Session uuid.UUID

// NewSession mints a fresh session identifier.
func NewSession() Session {
	return Session(uuid.New())
}

func (s Session) String() string {
	return uuid.UUID(s).String()
}
