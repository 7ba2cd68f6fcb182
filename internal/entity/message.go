package entity

// Message is a notification consumed from the broker.
type Message struct {
	Type        string
	Subject     string
	Message     string
	Recipients  []string
	ContentType string
}
