package queries

const (
	responseColumns = `
		id,
		questionnaire_id,
		respondent_name,
		respondent_email,
		respondent_age,
		respondent_gender,
		unique_code,
		state,
		score,
		risk_level,
		flagged_for_review,
		completed_at,
		scored_at,
		version,
		created_at,
		updated_at
	`

	GetResponseByID = `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE id = $1
	`

	GetResponseByUniqueCode = `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE unique_code = $1
	`

	// Empty questionnaire id, empty state and NULL flagged disable each filter.
	GetAllResponses = `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE ($1 = '' OR questionnaire_id::text = $1)
		  AND ($2 = '' OR state = $2)
		  AND ($3::boolean IS NULL OR flagged_for_review = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`

	CountResponses = `
		SELECT COUNT(*)
		FROM responses
		WHERE ($1 = '' OR questionnaire_id::text = $1)
		  AND ($2 = '' OR state = $2)
		  AND ($3::boolean IS NULL OR flagged_for_review = $3)
	`

	GetResponsesByState = `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE state = $1
		  AND ($2::timestamptz IS NULL OR (updated_at, id) > ($2::timestamptz, $3::uuid))
		ORDER BY updated_at ASC, id ASC
		LIMIT $4
	`

	GetResponsesByQuestionnaireID = `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE questionnaire_id = $1
		ORDER BY created_at ASC
	`

	CountResponsesByQuestionnaireID = `
		SELECT COUNT(*)
		FROM responses
		WHERE questionnaire_id = $1
	`

	InsertResponse = `
		INSERT INTO responses (
			id,
			questionnaire_id,
			respondent_name,
			respondent_email,
			respondent_age,
			respondent_gender,
			unique_code,
			state,
			flagged_for_review,
			version,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	`

	// Guarded by the version the caller loaded; zero rows means a concurrent write.
	UpdateResponse = `
		UPDATE responses
		SET
			state = $1,
			score = $2,
			risk_level = $3,
			flagged_for_review = $4,
			completed_at = $5,
			scored_at = $6,
			version = version + 1,
			updated_at = $7
		WHERE id = $8 AND version = $9
		RETURNING version
	`
)
