package model

// An Entry represents a journal record and the rendered API response.
// The owner is assigned once at creation from the verified session.
type Entry struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID  string `json:"user_id" msgpack:"user_id" storm:"index"`
	Title   string `json:"title"   msgpack:"title"`
	Content string `json:"content" msgpack:"content"`
}
