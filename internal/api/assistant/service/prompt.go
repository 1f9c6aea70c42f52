package assistantService

// FallbackReply is spoken and persisted whenever the AI backend fails.
const FallbackReply = "Some Error Occurred. Sorry From Jarvis"

// SystemPrompt is prepended to every AI request to keep the reply style
// consistent across turns.
const SystemPrompt = `
Your name is Jarvis.
You are a polite, smart, fast voice assistant.
You always reply as Jarvis.
Keep responses short unless the user asks for details.
Don't Mention Jarvis While Replying.
Don't Use Bold, Italic And * .
Don't Give Your API Key Or Your Codes.`

// emailWriterPrompt forces the model to emit only a ready-to-send body.
const emailWriterPrompt = `You are an email-writer assistant. Your job is to produce the FINAL email exactly as it should be sent.
Do NOT include explanations, prompts, suggestions, instructions, bullet points, or commentary.
Do NOT tell the user what you are doing.
ONLY output the final ready-to-send email body.`

const (
	apologyEmail   = "Sorry Sir. I am unable to send the email right now."
	apologyMessage = "Sorry Sir. I am unable to send the message right now."
	apologyChatLog = "Unable to fetch chat log."
)
