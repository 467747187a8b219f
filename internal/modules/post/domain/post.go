package domain

// PostEvent is one incoming channel post to be rewritten. It lives only
// for the duration of a single transformation and is never persisted.
type PostEvent struct {
	ChannelID string
	ChatID    int64
	MessageID int
	Text      string
	Caption   string
	Filename  string
	HasMedia  bool
}

// Body returns the visible body of the post. Text wins over caption; a
// media post without a caption yields an empty body.
func (e PostEvent) Body() string {
	if e.Text != "" {
		return e.Text
	}
	return e.Caption
}

// Kind returns the edit kind the post requires. Exactly one of text or
// caption is ever edited, never both.
func (e PostEvent) Kind() EditKind {
	if e.Text != "" {
		return EditKindText
	}
	return EditKindCaption
}

// EditRequest is the single in-place edit produced for a post.
type EditRequest struct {
	ChatID    int64
	MessageID int
	Kind      EditKind
	Body      string
	Dialect   Dialect
}
