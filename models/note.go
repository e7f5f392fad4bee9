package models

// Note is a single user-owned text note as returned by the notes service.
// ID is server-assigned and immutable after creation; the owner is implied
// by the bearer token and never exposed to the client.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteRequest is the JSON body sent to the notes service on create and
// update. The server rejects empty titles, but the client validates
// non-emptiness in the UI layer before a request is ever built.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DeleteResult is the confirmation payload returned by the notes service
// after a successful delete.
type DeleteResult struct {
	OK bool `json:"ok"`
}
