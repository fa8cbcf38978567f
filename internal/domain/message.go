package domain

type ChannelID string
type MessageID string

// RemoteMessage is a platform-owned message. It is read, never mutated.
type RemoteMessage struct {
	ID        MessageID
	ChannelID ChannelID
	AuthorID  string
	Content   string
	// ReferencedID is the message this one replies to, empty otherwise.
	ReferencedID MessageID
}

func (m RemoteMessage) IsReplyTo(id MessageID) bool {
	return id != "" && m.ReferencedID == id
}
