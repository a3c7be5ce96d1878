package queries

const (
	answerColumns = `
		id,
		response_id,
		question_id,
		value,
		answered_at,
		created_at,
		updated_at
	`

	GetAnswersByResponseID = `
		SELECT ` + answerColumns + `
		FROM answers
		WHERE response_id = $1
		ORDER BY answered_at ASC
	`

	GetAnswersByResponseIDs = `
		SELECT ` + answerColumns + `
		FROM answers
		WHERE response_id = ANY($1)
		ORDER BY response_id, answered_at ASC
	`

	UpsertAnswer = `
		INSERT INTO answers (
			id,
			response_id,
			question_id,
			value,
			answered_at,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (response_id, question_id) DO UPDATE
		SET
			value = EXCLUDED.value,
			answered_at = EXCLUDED.answered_at,
			updated_at = EXCLUDED.updated_at
	`
)
