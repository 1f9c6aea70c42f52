package assistantRepository

const (
	queryCreateInteraction = `
		INSERT INTO ai_log (
			command, response
		) VALUES (
			:command, :response
		)
	`

	queryGetAllInteractions = `
		SELECT
			id, command, response, timestamp
		FROM ai_log
		ORDER BY timestamp DESC
	`
)
