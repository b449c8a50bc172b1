package classify

import (
	"testing"
)

func TestPromptKind(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   PromptType
	}{
		// Troubleshooting wins over drawing words
		{"troubleshooting-help", "help me draw a dog", PromptTroubleshooting},
		{"troubleshooting-not-working", "my eraser is not working", PromptTroubleshooting},
		{"troubleshooting-error", "I get an error when saving", PromptTroubleshooting},

		// Drawing instruction
		{"drawing-draw", "draw a cat sitting on a fence", PromptDrawingInstruction},
		{"drawing-sketch", "sketch a mountain range", PromptDrawingInstruction},

		// Color guidance
		{"color-palette", "suggest a warm palette", PromptColorGuidance},
		{"color-shade", "which shade goes with teal", PromptColorGuidance},

		// Educational
		{"educational-tutorial", "tutorial on perspective", PromptEducational},
		{"educational-how-to", "how to blend pastels", PromptEducational},

		// Fallback
		{"general", "good morning", PromptGeneral},
		{"general-empty", "", PromptGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PromptKind(tt.prompt); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComplexity(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		wantLevel string
		wantValue int
	}{
		{"basic-draw", "draw a simple circle", "basic", 1},
		{"intermediate-shading", "perspective and shading technique", "intermediate", 2},
		{"advanced-style", "professional artistic style study", "advanced", 3},
		{"expert-masterpiece", "photorealistic masterpiece rendering", "expert", 4},
		// No hits at all resolves to the first table level
		{"empty-defaults-basic", "", "basic", 1},
		// Ties resolve to the earliest level in table order
		{"tie-basic-wins", "draw with perspective", "basic", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Complexity(tt.prompt)
			if got.Level != tt.wantLevel {
				t.Errorf("level: got %q, want %q", got.Level, tt.wantLevel)
			}
			if got.Value != tt.wantValue {
				t.Errorf("value: got %d, want %d", got.Value, tt.wantValue)
			}
		})
	}
}

func TestSkillFromUsage_Boundaries(t *testing.T) {
	tests := []struct {
		uses int
		want SkillLevel
	}{
		{0, SkillBeginner},
		{4, SkillBeginner},
		{5, SkillIntermediate},
		{19, SkillIntermediate},
		{20, SkillAdvanced},
		{49, SkillAdvanced},
		{50, SkillExpert},
		{500, SkillExpert},
	}

	for _, tt := range tests {
		if got := SkillFromUsage(tt.uses); got != tt.want {
			t.Errorf("SkillFromUsage(%d): got %q, want %q", tt.uses, got, tt.want)
		}
	}
}

func TestSkill(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   SkillLevel
	}{
		{"beginner-first-time", "first time drawing anything", SkillBeginner},
		{"intermediate-improve", "improve my linework", SkillIntermediate},
		{"advanced-master", "master the human figure", SkillAdvanced},
		{"default", "a bowl of fruit", SkillIntermediate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Skill(tt.prompt); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConcepts(t *testing.T) {
	got := Concepts("shading a cat with a pencil")

	if terms := got["subjects"]; len(terms) != 1 || terms[0] != "cat" {
		t.Errorf("subjects: got %v, want [cat]", terms)
	}
	if terms := got["techniques"]; len(terms) != 1 || terms[0] != "shading" {
		t.Errorf("techniques: got %v, want [shading]", terms)
	}
	if terms := got["tools"]; len(terms) != 1 || terms[0] != "pencil" {
		t.Errorf("tools: got %v, want [pencil]", terms)
	}
	if _, ok := got["styles"]; ok {
		t.Error("styles should be absent")
	}
}

func TestTrainingCategory(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		response string
		want     string
	}{
		{"geometric", "draw an isometric cube", "", "geometric_construction"},
		{"mathematical", "fibonacci spiral please", "", "mathematical_art"},
		{"classical-from-response", "old masters", "use chiaroscuro lighting", "classical_techniques"},
		{"general", "a red ball", "draw a circle and fill it", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrainingCategory(tt.prompt, tt.response); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTechniqueComplexity(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   int
	}{
		{"explicit-basic", "basic shapes", 1},
		{"explicit-professional", "professional portfolio piece", 5},
		{"named-expert-technique", "golden ratio layout", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TechniqueComplexity(tt.prompt); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}

	if got := TechniqueComplexity("a quiet pond"); got != 2 {
		t.Errorf("default: got %d, want 2", got)
	}
	if got := TechniqueComplexity("two point perspective"); got != 3 {
		t.Errorf("advanced technique: got %d, want 3", got)
	}
}

func TestResponseQuality(t *testing.T) {
	long := make([]byte, 60)
	for i := range long {
		long[i] = 'a'
	}
	ok := string(long)

	tests := []struct {
		name     string
		response string
		rating   int
		want     float64
	}{
		{"clean-rating-kept", ok, 4, 4},
		{"short-penalty", "too short", 4, 3.5},
		{"error-penalty", ok + " error occurred", 4, 3},
		{"zero-rating-neutral", ok, 0, 3},
		{"floor-at-one", "error", 1, 1},
		{"ceiling-at-five", ok, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResponseQuality(tt.response, tt.rating); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfessionalLevel(t *testing.T) {
	if got := ProfessionalLevel("nice"); got != "intermediate" {
		t.Errorf("got %q, want intermediate", got)
	}
	if got := ProfessionalLevel("use a professional approach"); got != "advanced" {
		t.Errorf("got %q, want advanced", got)
	}
	if got := ProfessionalLevel("professional master expert advanced technique work"); got != "professional" {
		t.Errorf("got %q, want professional", got)
	}
}

func TestMovementAndDomain(t *testing.T) {
	if got := Movement("study monet light study"); got != "impressionism" {
		t.Errorf("movement: got %q, want impressionism", got)
	}
	if got := Movement("a lighthouse"); got != "contemporary" {
		t.Errorf("movement default: got %q, want contemporary", got)
	}
	if got := Domain("draw a dragon breathing fire"); got != "fantasy" {
		t.Errorf("domain: got %q, want fantasy", got)
	}
	if got := Domain("something nice"); got != "general" {
		t.Errorf("domain default: got %q, want general", got)
	}
}

func TestMathPatterns(t *testing.T) {
	got := MathPatterns("a fibonacci spiral with symmetry")
	if len(got) != 2 {
		t.Fatalf("got %d patterns, want 2", len(got))
	}
	if got[0].Pattern != "fibonacci" || got[1].Pattern != "symmetry" {
		t.Errorf("got %v", got)
	}

	// "golden" alone matches golden_ratio via its first name part
	got = MathPatterns("golden hour scene")
	if len(got) != 1 || got[0].Pattern != "golden_ratio" {
		t.Errorf("got %v, want [golden_ratio]", got)
	}
}

func TestModalitiesAndObjectives(t *testing.T) {
	m := Modalities("look at a reference and practice drawing it")
	if !m.IsMultimodal {
		t.Error("expected multimodal")
	}
	if m.Score < 2 {
		t.Errorf("score: got %d, want >= 2", m.Score)
	}

	objs := Objectives("help me learn shading technique")
	want := []string{"skill_building", "problem_solving", "technical_mastery"}
	if len(objs) != len(want) {
		t.Fatalf("got %v, want %v", objs, want)
	}
	for i := range want {
		if objs[i] != want[i] {
			t.Errorf("objective[%d]: got %q, want %q", i, objs[i], want[i])
		}
	}
}
