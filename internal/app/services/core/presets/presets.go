package presets

import (
	"sort"

	"mindscreen-service/internal/app/models"
)

const (
	KeyPHQ9 = "phq-9"
	KeyGAD7 = "gad-7"
)

type Preset struct {
	Key           string                   `json:"key"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Type          models.QuestionnaireType `json:"type"`
	ScoringMethod models.ScoringMethod     `json:"scoring_method"`
	RiskLevels    models.RiskThresholds    `json:"risk_levels"`
	FlagRiskLevel string                   `json:"flag_risk_level"`
	MaxScore      float64                  `json:"max_score"`
	Questions     []PresetQuestion         `json:"questions"`
}

type PresetQuestion struct {
	Text          string                 `json:"text"`
	Type          models.QuestionType    `json:"type"`
	Required      bool                   `json:"required"`
	Options       models.QuestionOptions `json:"options"`
	ScoringWeight float64                `json:"scoring_weight"`
}

func frequencyOptions() models.QuestionOptions {
	return models.QuestionOptions{
		{Value: 0, Label: "Not at all"},
		{Value: 1, Label: "Several days"},
		{Value: 2, Label: "More than half the days"},
		{Value: 3, Label: "Nearly every day"},
	}
}

func difficultyOptions() models.QuestionOptions {
	return models.QuestionOptions{
		{Value: 0, Label: "Not difficult at all"},
		{Value: 1, Label: "Somewhat difficult"},
		{Value: 2, Label: "Very difficult"},
		{Value: 3, Label: "Extremely difficult"},
	}
}

func frequencyItems(texts ...string) []PresetQuestion {
	questions := make([]PresetQuestion, len(texts))
	for i, text := range texts {
		questions[i] = PresetQuestion{
			Text:          text,
			Type:          models.QuestionTypeSingleChoice,
			Required:      true,
			Options:       frequencyOptions(),
			ScoringWeight: 1,
		}
	}
	return questions
}

func phq9() Preset {
	questions := frequencyItems(
		"Little interest or pleasure in doing things",
		"Feeling down, depressed, or hopeless",
		"Trouble falling or staying asleep, or sleeping too much",
		"Feeling tired or having little energy",
		"Poor appetite or overeating",
		"Feeling bad about yourself, or that you are a failure or have let yourself or your family down",
		"Trouble concentrating on things, such as reading the newspaper or watching television",
		"Moving or speaking so slowly that other people could have noticed, or the opposite, being so fidgety or restless that you have been moving around a lot more than usual",
		"Thoughts that you would be better off dead or of hurting yourself in some way",
	)
	// Functional difficulty is reported alongside the score, never added to it.
	questions = append(questions, PresetQuestion{
		Text:          "If you checked off any problems, how difficult have these problems made it for you to do your work, take care of things at home, or get along with other people?",
		Type:          models.QuestionTypeSingleChoice,
		Required:      false,
		Options:       difficultyOptions(),
		ScoringWeight: 0,
	})

	return Preset{
		Key:           KeyPHQ9,
		Title:         "Patient Health Questionnaire (PHQ-9)",
		Description:   "Over the last 2 weeks, how often have you been bothered by any of the following problems?",
		Type:          models.QuestionnaireTypeScreening,
		ScoringMethod: models.ScoringMethodSum,
		RiskLevels: models.RiskThresholds{
			{Label: "minimal", MinScore: 0},
			{Label: "mild", MinScore: 5},
			{Label: "moderate", MinScore: 10},
			{Label: "moderately severe", MinScore: 15},
			{Label: "severe", MinScore: 20},
		},
		FlagRiskLevel: "moderately severe",
		MaxScore:      27,
		Questions:     questions,
	}
}

func gad7() Preset {
	return Preset{
		Key:           KeyGAD7,
		Title:         "Generalized Anxiety Disorder (GAD-7)",
		Description:   "Over the last 2 weeks, how often have you been bothered by the following problems?",
		Type:          models.QuestionnaireTypeScreening,
		ScoringMethod: models.ScoringMethodSum,
		RiskLevels: models.RiskThresholds{
			{Label: "minimal", MinScore: 0},
			{Label: "mild", MinScore: 5},
			{Label: "moderate", MinScore: 10},
			{Label: "severe", MinScore: 15},
		},
		FlagRiskLevel: "severe",
		MaxScore:      21,
		Questions: frequencyItems(
			"Feeling nervous, anxious, or on edge",
			"Not being able to stop or control worrying",
			"Worrying too much about different things",
			"Trouble relaxing",
			"Being so restless that it is hard to sit still",
			"Becoming easily annoyed or irritable",
			"Feeling afraid, as if something awful might happen",
		),
	}
}

var registry = map[string]func() Preset{
	KeyPHQ9: phq9,
	KeyGAD7: gad7,
}

// Find returns a fresh copy of the preset registered under key.
func Find(key string) (Preset, bool) {
	build, ok := registry[key]
	if !ok {
		return Preset{}, false
	}
	return build(), true
}

func All() []Preset {
	keys := make([]string, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	all := make([]Preset, len(keys))
	for i, key := range keys {
		all[i] = registry[key]()
	}
	return all
}

// Build turns the preset into a questionnaire owned by organizationID. Ids
// are left empty for the caller to assign.
func (p Preset) Build(organizationID string) (models.Questionnaire, []models.Question) {
	maxScore := p.MaxScore
	questionnaire := models.Questionnaire{
		Title:          p.Title,
		Description:    p.Description,
		Type:           p.Type,
		ScoringMethod:  p.ScoringMethod,
		RiskLevels:     append(models.RiskThresholds(nil), p.RiskLevels...),
		MaxScore:       &maxScore,
		FlagRiskLevel:  p.FlagRiskLevel,
		ScorePrecision: models.DefaultScorePrecision,
		OrganizationID: organizationID,
	}

	questions := make([]models.Question, len(p.Questions))
	for i, item := range p.Questions {
		questions[i] = models.Question{
			Text:          item.Text,
			Type:          item.Type,
			Required:      item.Required,
			OrderNum:      i + 1,
			Options:       append(models.QuestionOptions(nil), item.Options...),
			ScoringWeight: item.ScoringWeight,
		}
	}
	return questionnaire, questions
}
