package queries

const (
	questionnaireColumns = `
		id,
		title,
		description,
		type,
		scoring_method,
		risk_levels,
		max_score,
		passing_score,
		flag_risk_level,
		score_precision,
		COALESCE(organization_id, ''),
		created_at,
		updated_at
	`

	GetQuestionnaireByID = `
		SELECT ` + questionnaireColumns + `
		FROM questionnaires
		WHERE id = $1
	`

	// $1 type filter, $2 organization filter, empty string disables each.
	GetAllQuestionnaires = `
		SELECT ` + questionnaireColumns + `
		FROM questionnaires
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR organization_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	CountQuestionnaires = `
		SELECT COUNT(*)
		FROM questionnaires
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR organization_id = $2)
	`

	InsertQuestionnaire = `
		INSERT INTO questionnaires (
			id,
			title,
			description,
			type,
			scoring_method,
			risk_levels,
			max_score,
			passing_score,
			flag_risk_level,
			score_precision,
			organization_id,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $12)
	`

	UpdateQuestionnaire = `
		UPDATE questionnaires
		SET
			title = $1,
			description = $2,
			type = $3,
			scoring_method = $4,
			risk_levels = $5,
			max_score = $6,
			passing_score = $7,
			flag_risk_level = $8,
			score_precision = $9,
			organization_id = NULLIF($10, ''),
			updated_at = $11
		WHERE id = $12
	`

	DeleteQuestionnaire = `
		DELETE FROM questionnaires
		WHERE id = $1
	`
)
