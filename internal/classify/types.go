package classify

// #region prompt-type

// PromptType is the coarse category of a user prompt.
type PromptType string

const (
	PromptTroubleshooting    PromptType = "troubleshooting"
	PromptDrawingInstruction PromptType = "drawing_instruction"
	PromptColorGuidance      PromptType = "color_guidance"
	PromptEducational        PromptType = "educational"
	PromptGeneral            PromptType = "general"
)

// #endregion

// #region skill-level

// SkillLevel is a coarse proficiency bucket, derived either from prompt
// wording or from a user's historical usage count.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// #endregion

// #region cognitive-complexity

// CognitiveComplexity is a per-level hit count with a dominant level.
type CognitiveComplexity struct {
	Level string
	Value int
	Hits  map[string]int
}

// #endregion

// #region semantic-depth

// SemanticDepth measures concept richness of a prompt/response pair.
type SemanticDepth struct {
	PromptConcepts     int
	ResponseConcepts   int
	ArtisticVocabulary int
	DepthScore         float64
}

// #endregion

// #region creative-elements

// CreativeElements scores creative wording in a prompt/response pair.
type CreativeElements struct {
	Score           int
	HasCreative     bool
	InnovationLevel float64
}

// #endregion

// #region multimodal

// Multimodal lists the learning modalities a prompt touches.
type Multimodal struct {
	ActiveModalities []string
	Score            int
	IsMultimodal     bool
}

// #endregion

// #region math-pattern

// MathPattern names a mathematical construction referenced by a prompt.
type MathPattern struct {
	Pattern     string
	Description string
}

// #endregion

// #region learning-context

// LearningContext is the inferred intent behind a prompt.
type LearningContext string

const (
	ContextTutorialSeeking LearningContext = "tutorial_seeking"
	ContextSkillBuilding   LearningContext = "skill_building"
	ContextProblemSolving  LearningContext = "problem_solving"
	ContextExploration     LearningContext = "exploration"
	ContextGeneralInquiry  LearningContext = "general_inquiry"
)

// #endregion
