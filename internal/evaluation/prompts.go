package evaluation

import (
	"fmt"
	"strings"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// rubric is the criteria block shared verbatim by the generic and persona
// system prompts. The six criteria and the 1-3 scale are fixed; persona
// identity changes emphasis, never the rubric itself.
const rubric = `--------------------
CREATIVITY CRITERIA
--------------------

1) Hook Originality & Stopping Power
- What it measures:
  - How surprising, attention-grabbing, and scroll-stopping the first 1-3 seconds are.
  - Novelty of the hook and presence of a clear pattern interrupt.
- Scoring (1-3):
  - 1 = Weak (generic opening, no pattern interrupt, slow start)
  - 2 = Moderate (somewhat interesting or curious hook)
  - 3 = Strong (highly original, strong pattern interruption, instantly commands attention)

2) Visual Creativity & Scene Dynamism
- What it measures:
  - Creativity of visuals, camera moves, and transitions.
  - How dynamic and varied the scenes feel, in line with short-form video grammar.
- Scoring (1-3):
  - 1 = Weak (static, generic visuals, minimal movement)
  - 2 = Moderate (some interesting visuals or transitions)
  - 3 = Strong (highly dynamic, TikTok-native visual ideas: POV shots, punch-ins, quick cuts)

3) Narrative Originality & Idea Novelty
- What it measures:
  - The creativity and novelty of the underlying story or concept.
  - Twists, metaphors, unusual structures, or unique angles.
- Scoring (1-3):
  - 1 = Weak (predictable storyline or cliche ad trope)
  - 2 = Moderate (at least one interesting angle, partially fresh)
  - 3 = Strong (distinctive, memorable idea with a fresh angle or clever twist)

4) Entertainment Value & Emotional Impact
- What it measures:
  - How engaging, funny, relatable, emotional, or surprising the script is, independent of the product.
- Scoring (1-3):
  - 1 = Weak (emotionally flat, feels like a plain informational ad)
  - 2 = Moderate (some moments of humor, relatability, or emotional spark)
  - 3 = Strong (highly entertaining, emotionally punchy, high replay value)

5) Creative Brand & Message Integration
- What it measures:
  - How creatively and naturally the product, benefit, or offer is embedded in the story instead of bolted on.
- Scoring (1-3):
  - 1 = Weak (forced, boring, or generic delivery that breaks immersion)
  - 2 = Moderate (functional integration, makes sense but not very creative)
  - 3 = Strong (clever, seamless, story-driven integration that enhances the entertainment)

6) Platform Fit & Trend Awareness
- What it measures:
  - How well the script fits short-form platform culture: pacing, UGC feel, trend fluency, meme grammar, authenticity.
- Scoring (1-3):
  - 1 = Weak (feels like a traditional TV/corporate ad, slow, non-native)
  - 2 = Moderate (reasonably adapted, some UGC elements or platform-appropriate tone)
  - 3 = Strong (strongly platform-native: UGC tone, casual voice, fast cuts, trend alignment)

--------------------
SCORING RULES
--------------------

- For EACH of the six criteria, assign an integer score (1, 2, or 3) and give a short, concrete reason based on the script.
- Then compute an OVERALL creativity score: the arithmetic mean of the six criterion scores (may be a decimal between 1.0 and 3.0).`

const outputFormat = `--------------------
OUTPUT FORMAT (STRICT)
--------------------

You MUST output ONLY a valid JSON object with this exact structure:

{
  "hook_originality": {"score": <1-3 integer>, "reason": "<short explanation>"},
  "visual_creativity": {"score": <1-3 integer>, "reason": "<short explanation>"},
  "narrative_originality": {"score": <1-3 integer>, "reason": "<short explanation>"},
  "entertainment_value": {"score": <1-3 integer>, "reason": "<short explanation>"},
  "brand_integration": {"score": <1-3 integer>, "reason": "<short explanation>"},
  "platform_fit": {"score": <1-3 integer>, "reason": "<short explanation>"},
  "overall_creativity": {"score": <number between 1.0 and 3.0>, "reason": "<short global justification>"}
}

Do NOT include any text before or after the JSON.
Do NOT add or remove keys.
Do NOT use markdown.`

// genericSystemPrompt is the baseline judge with no persona overlay.
func genericSystemPrompt() string {
	return "You are an expert creativity assessor for short-form video ad scripts (TikTok, Reels, Shorts).\n\nYou will evaluate the CREATIVITY of ONE video ad script using SIX criteria, each scored from 1 to 3.\nYou must strictly follow the definitions and scoring rubrics below.\n\n" +
		rubric + "\n\n" + outputFormat
}

// personaSystemPrompt overlays a persona identity on the shared rubric.
func personaSystemPrompt(p Persona) string {
	var b strings.Builder
	b.WriteString("You are evaluating the creativity of short-form video ad scripts in the role of a specific expert persona.\n\n")
	b.WriteString("Your persona for this evaluation is:\n\n")
	fmt.Fprintf(&b, "- Persona name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Persona description: %s\n\n", p.Description)
	b.WriteString("You must THINK and JUDGE like this persona would:\n")
	b.WriteString("- Focus on what this persona cares about the most.\n")
	b.WriteString("- Keep the same six creativity criteria and the same 1-3 scoring scale.\n")
	b.WriteString("- Your explanations and emphasis should reflect this persona's priorities and biases.\n\n")
	b.WriteString(rubric)
	b.WriteString("\n\n")
	b.WriteString(outputFormat)
	return b.String()
}

// judgeUserPrompt renders the product context, artifact, and optional
// calibration references for one evaluation call.
func judgeUserPrompt(pc domain.ProductContext, content domain.DraftedContent, refs []string) string {
	var b strings.Builder
	b.WriteString("You will now evaluate the creativity of a generated short-form video ad script.\n\n")
	b.WriteString("PRODUCT CONTEXT:\n")
	fmt.Fprintf(&b, "- Product name: %s\n", pc.Name)
	fmt.Fprintf(&b, "- Target audience: %s\n", pc.TargetAudience)
	fmt.Fprintf(&b, "- Main pain point: %s\n", pc.PainPoint)
	fmt.Fprintf(&b, "- Key benefit: %s\n", pc.KeyBenefit)
	fmt.Fprintf(&b, "- Platform: %s\n", pc.PlatformOrDefault())
	if len(refs) > 0 {
		b.WriteString("\nCALIBRATION REFERENCES (examples of the register strong scripts hit; context only, do not score them):\n")
		for i, r := range refs {
			fmt.Fprintf(&b, "%d. %s\n", i+1, r)
		}
	}
	b.WriteString("\nSCRIPT (JSON FORMAT):\n")
	b.WriteString(string(content.Raw))
	b.WriteString("\n\nEvaluate this script STRICTLY according to the six creativity criteria and the 1-3 scoring rubric defined in the system prompt.\nBase your reasoning ONLY on the content of this script and the product context.\nReturn ONLY the JSON object as specified.")
	return b.String()
}

// verdictSchema validates a judge verdict cell.
var verdictSchema = llm.MustSchema("creativity_verdict", `{
	"type": "object",
	"properties": {
		"hook_originality": {"$ref": "#/definitions/criterion"},
		"visual_creativity": {"$ref": "#/definitions/criterion"},
		"narrative_originality": {"$ref": "#/definitions/criterion"},
		"entertainment_value": {"$ref": "#/definitions/criterion"},
		"brand_integration": {"$ref": "#/definitions/criterion"},
		"platform_fit": {"$ref": "#/definitions/criterion"},
		"overall_creativity": {
			"type": "object",
			"properties": {
				"score": {"type": "number", "minimum": 1, "maximum": 3},
				"reason": {"type": "string"}
			},
			"required": ["score", "reason"]
		}
	},
	"required": [
		"hook_originality", "visual_creativity", "narrative_originality",
		"entertainment_value", "brand_integration", "platform_fit",
		"overall_creativity"
	],
	"definitions": {
		"criterion": {
			"type": "object",
			"properties": {
				"score": {"type": "integer", "minimum": 1, "maximum": 3},
				"reason": {"type": "string"}
			},
			"required": ["score", "reason"]
		}
	}
}`)

// verdict mirrors verdictSchema.
type verdict struct {
	HookOriginality      criterionVerdict `json:"hook_originality"`
	VisualCreativity     criterionVerdict `json:"visual_creativity"`
	NarrativeOriginality criterionVerdict `json:"narrative_originality"`
	EntertainmentValue   criterionVerdict `json:"entertainment_value"`
	BrandIntegration     criterionVerdict `json:"brand_integration"`
	PlatformFit          criterionVerdict `json:"platform_fit"`
	OverallCreativity    criterionVerdict `json:"overall_creativity"`
}

type criterionVerdict struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// scores converts the verdict to the domain criterion map.
func (v verdict) scores() map[domain.Criterion]domain.CriterionScore {
	return map[domain.Criterion]domain.CriterionScore{
		domain.CriterionHookOriginality:      {Score: v.HookOriginality.Score, Reason: v.HookOriginality.Reason},
		domain.CriterionVisualCreativity:     {Score: v.VisualCreativity.Score, Reason: v.VisualCreativity.Reason},
		domain.CriterionNarrativeOriginality: {Score: v.NarrativeOriginality.Score, Reason: v.NarrativeOriginality.Reason},
		domain.CriterionEntertainmentValue:   {Score: v.EntertainmentValue.Score, Reason: v.EntertainmentValue.Reason},
		domain.CriterionBrandIntegration:     {Score: v.BrandIntegration.Score, Reason: v.BrandIntegration.Reason},
		domain.CriterionPlatformFit:          {Score: v.PlatformFit.Score, Reason: v.PlatformFit.Reason},
	}
}
