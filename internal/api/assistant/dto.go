package assistant

// DispatchResult is what one dispatcher turn produces. Response is the text
// spoken back (and persisted); Continue reports whether the wake-word loop
// should keep running.
type DispatchResult struct {
	Response string
	Continue bool
}

// EmailDraft accumulates the state of the email sub-dialogue.
type EmailDraft struct {
	To      string
	Subject string
	Body    string
}
