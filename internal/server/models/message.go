package models

// MessageResponse is the body of a successful mutation: a fixed confirmation
// message plus, for creates, the generated identifier.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}
