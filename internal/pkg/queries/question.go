package queries

const (
	GetQuestionsByQuestionnaireID = `
		SELECT
			id,
			questionnaire_id,
			text,
			type,
			required,
			order_num,
			options,
			scoring_weight,
			created_at,
			updated_at
		FROM questions
		WHERE questionnaire_id = $1
		ORDER BY order_num ASC
	`

	InsertQuestion = `
		INSERT INTO questions (
			id,
			questionnaire_id,
			text,
			type,
			required,
			order_num,
			options,
			scoring_weight,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`

	DeleteQuestionsByQuestionnaireID = `
		DELETE FROM questions
		WHERE questionnaire_id = $1
	`
)
