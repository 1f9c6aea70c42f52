package assistant

import "JarvisGolang/pkg/response"

var (
	ErrAIUnavailable     = response.NewError(502, "ai backend unavailable")
	ErrEmailNotSent      = response.NewError(502, "unable to send email")
	ErrMessageNotSent    = response.NewError(502, "unable to send message")
	ErrExportFailed      = response.NewError(500, "unable to export chat log")
	ErrNothingUnderstood = response.NewError(400, "no usable speech recognized")
)
