package classify

// Keyword tables are ordered slices, not maps: classification is
// first-match-wins and the match order is part of the contract.

// #region table-type

type keywordClass struct {
	name  string
	terms []string
}

// #endregion

// #region prompt-type-table

var promptTypeTable = []struct {
	kind  PromptType
	terms []string
}{
	{PromptTroubleshooting, []string{"help", "problem", "not working", "error", "issue"}},
	{PromptDrawingInstruction, []string{"draw", "sketch", "paint", "create"}},
	{PromptColorGuidance, []string{"color", "palette", "shade"}},
	{PromptEducational, []string{"tutorial", "how to", "guide"}},
}

// #endregion

// #region complexity-table

var complexityTable = []keywordClass{
	{"basic", []string{"draw", "color", "simple", "easy"}},
	{"intermediate", []string{"composition", "perspective", "shading", "technique"}},
	{"advanced", []string{"style", "artistic", "professional", "complex", "advanced"}},
	{"expert", []string{"masterpiece", "photorealistic", "virtuosic", "experimental"}},
}

var complexityValue = map[string]int{
	"basic": 1, "intermediate": 2, "advanced": 3, "expert": 4,
}

// #endregion

// #region skill-table

var skillTable = []struct {
	level SkillLevel
	terms []string
}{
	{SkillBeginner, []string{"first time", "start", "begin", "basic", "simple", "easy", "learn"}},
	{SkillIntermediate, []string{"improve", "better", "technique", "practice", "develop"}},
	{SkillAdvanced, []string{"master", "professional", "expert", "advanced", "complex"}},
	{SkillExpert, []string{"virtuoso", "masterpiece", "photorealistic", "highly detailed"}},
}

// #endregion

// #region concept-table

var conceptTable = []keywordClass{
	{"subjects", []string{"person", "face", "portrait", "animal", "cat", "dog", "tree", "flower", "house"}},
	{"techniques", []string{"shading", "blending", "perspective", "proportion", "composition"}},
	{"tools", []string{"pencil", "brush", "eraser", "canvas", "color", "paint"}},
	{"styles", []string{"realistic", "cartoon", "anime", "abstract", "impressionist"}},
	{"elements", []string{"line", "shape", "form", "color", "texture", "space", "value"}},
}

// #endregion

// #region objective-table

var objectiveTable = []keywordClass{
	{"skill_building", []string{"learn", "practice", "improve", "develop", "master"}},
	{"problem_solving", []string{"help", "fix", "problem", "issue", "trouble", "error"}},
	{"creative_expression", []string{"create", "design", "artistic", "expressive", "original"}},
	{"technical_mastery", []string{"technique", "method", "professional", "advanced", "precise"}},
}

// #endregion

// #region modality-table

var modalityTable = []keywordClass{
	{"visual", []string{"see", "look", "visual", "image", "picture", "reference"}},
	{"kinesthetic", []string{"draw", "paint", "sketch", "create", "make", "practice"}},
	{"auditory", []string{"explain", "tell", "describe", "instruction", "guide"}},
	{"analytical", []string{"analyze", "understand", "theory", "principle", "concept"}},
}

// #endregion

// #region context-factor-table

var contextFactorTable = []keywordClass{
	{"time_sensitive", []string{"quick", "fast", "urgent", "now", "immediately"}},
	{"environment", []string{"mobile", "tablet", "desktop", "touchscreen"}},
	{"purpose", []string{"homework", "project", "practice", "fun", "professional"}},
	{"audience", []string{"beginner", "student", "artist", "professional", "child"}},
}

// #endregion

// #region training-category-table

var trainingCategoryTable = []keywordClass{
	{"geometric_construction", []string{"isometric", "geometric", "construction", "polygon", "hexagon", "spiral"}},
	{"mathematical_art", []string{"fibonacci", "golden ratio", "fractal", "mandala", "sacred geometry"}},
	{"classical_techniques", []string{"chiaroscuro", "sfumato", "impasto", "pointillism", "atmospheric"}},
	{"cultural_styles", []string{"chinese brush", "japanese", "islamic", "celtic", "aboriginal", "medieval"}},
	{"scientific_illustration", []string{"botanical", "anatomical", "technical", "cutaway", "medical"}},
	{"digital_mastery", []string{"layer", "blending", "workflow", "brush", "digital painting"}},
	{"pattern_systems", []string{"celtic knot", "op art", "art nouveau", "decorative"}},
	{"advanced_subjects", []string{"water reflection", "architectural", "mechanical", "fabric", "crystal"}},
}

// #endregion

// #region cultural-table

var culturalTable = []keywordClass{
	{"chinese", []string{"chinese", "brush painting", "ink wash"}},
	{"japanese", []string{"japanese", "wave pattern", "hokusai"}},
	{"islamic", []string{"islamic", "geometric star", "arabesque"}},
	{"celtic", []string{"celtic", "knot", "interlace"}},
	{"medieval", []string{"illuminated", "manuscript", "gothic"}},
	{"aboriginal", []string{"aboriginal", "dot painting", "dreamtime"}},
	{"art_nouveau", []string{"art nouveau", "mucha", "organic forms"}},
}

// #endregion

// #region math-table

var mathTable = []MathPattern{
	{"fibonacci", "fibonacci sequence and spiral construction"},
	{"golden_ratio", "golden ratio and divine proportion"},
	{"fractals", "fractal geometry and self-similarity"},
	{"tessellation", "geometric tessellation patterns"},
	{"sacred_geometry", "sacred geometric principles"},
	{"symmetry", "symmetrical pattern systems"},
}

// #endregion

// #region movement-table

var movementTable = []keywordClass{
	{"renaissance", []string{"leonardo", "michelangelo", "sfumato", "chiaroscuro"}},
	{"impressionism", []string{"monet", "pointillism", "plein air", "light study"}},
	{"art_nouveau", []string{"mucha", "klimt", "organic", "decorative"}},
	{"modernism", []string{"picasso", "abstract", "cubism", "experimental"}},
	{"realism", []string{"photorealistic", "accurate", "detailed", "lifelike"}},
}

// #endregion

// #region learning-context-table

var learningContextTable = []struct {
	ctx   LearningContext
	terms []string
}{
	{ContextTutorialSeeking, []string{"how to", "tutorial", "guide", "step by step"}},
	{ContextSkillBuilding, []string{"practice", "improve", "better", "learn"}},
	{ContextProblemSolving, []string{"help", "stuck", "difficulty", "challenge"}},
	{ContextExploration, []string{"try", "experiment", "explore", "discover"}},
}

// #endregion

// #region domain-table

var domainTable = []keywordClass{
	{"portrait", []string{"face", "portrait", "person", "character"}},
	{"landscape", []string{"landscape", "scenery", "nature", "mountain", "tree"}},
	{"still_life", []string{"object", "fruit", "vase", "table", "arrangement"}},
	{"abstract", []string{"abstract", "non-representational", "conceptual"}},
	{"technical", []string{"diagram", "blueprint", "technical", "mechanical"}},
	{"fantasy", []string{"dragon", "fantasy", "mythical", "magical"}},
	{"anime", []string{"anime", "manga", "japanese style", "cartoon"}},
}

// #endregion

// #region word-lists

var artisticTerms = []string{
	"composition", "balance", "harmony", "contrast", "perspective",
	"technique", "style", "medium", "texture", "form", "space",
}

var creativeIndicators = []string{
	"creative", "unique", "original", "innovative", "artistic", "expressive",
	"imaginative", "experimental", "stylized", "abstract", "conceptual",
}

var professionalIndicators = []string{
	"professional", "master", "expert", "advanced technique",
	"industry standard", "portfolio quality", "exhibition level",
}

var scientificTerms = []string{
	"anatomical", "botanical", "technical", "precise", "accurate",
	"medical", "scientific", "measurement", "proportion", "structure",
}

// #endregion
