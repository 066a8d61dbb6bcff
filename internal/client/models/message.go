package models

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry in a chat transcript. IDs are creation-time derived
// and strictly increasing within a transcript.
type Message struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}
