package generation

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// ConceptSchema validates the single concept returned by an ideation
// branch. Shared by every content type.
var ConceptSchema = llm.MustSchema("concept", `{
	"type": "object",
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"description": {"type": "string", "minLength": 1},
		"hook_idea": {"type": "string", "minLength": 1}
	},
	"required": ["title", "description", "hook_idea"],
	"additionalProperties": false
}`)

// JudgeSchema validates a judge verdict for one concept.
var JudgeSchema = llm.MustSchema("judge_verdict", `{
	"type": "object",
	"properties": {
		"quality_score": {"type": "number", "minimum": 0, "maximum": 1},
		"reason": {"type": "string", "minLength": 1}
	},
	"required": ["quality_score", "reason"],
	"additionalProperties": false
}`)

// VideoScriptSchema validates a drafted short-form video script.
var VideoScriptSchema = llm.MustSchema("video_script", `{
	"type": "object",
	"properties": {
		"video_meta": {
			"type": "object",
			"properties": {
				"duration_seconds": {"type": "integer", "minimum": 5, "maximum": 180},
				"platform": {"type": "string", "enum": ["tiktok", "instagram", "youtube_shorts", "linkedin"]}
			},
			"required": ["duration_seconds", "platform"]
		},
		"scenes": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "integer", "minimum": 0},
					"start_sec": {"type": "number", "minimum": 0},
					"end_sec": {"type": "number", "minimum": 0},
					"role": {"type": "string", "enum": ["hook", "problem", "solution", "cta", "other"]},
					"visual": {"type": "string", "minLength": 1},
					"camera": {"type": "string"},
					"action": {"type": "string"},
					"dialogue": {"type": "string"},
					"on_screen_text": {"type": "string"},
					"audio": {
						"type": "object",
						"properties": {
							"music": {"type": "string"},
							"sfx": {"type": "string"}
						}
					},
					"notes_for_model": {"type": "string"}
				},
				"required": ["id", "start_sec", "end_sec", "role", "visual"]
			}
		}
	},
	"required": ["video_meta", "scenes"]
}`)

// conceptOutput mirrors ConceptSchema.
type conceptOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	HookIdea    string `json:"hook_idea"`
}

// judgeOutput mirrors JudgeSchema.
type judgeOutput struct {
	QualityScore float64 `json:"quality_score"`
	Reason       string  `json:"reason"`
}

// videoScriptPrompts is the prompt set for short-form video scripts. The
// creator persona is a viral-content writer; the judge is a skeptical
// creative director who scores against the product brief.
type videoScriptPrompts struct{}

func (videoScriptPrompts) IdeationSystem() string {
	return `You are a viral short-form video creator known for absurd, deadpan, scroll-stopping concepts. You write for brands but your videos never feel like ads: the product is woven into a bit, a sketch, or an unexpected premise.

You will be given a product brief and a set of reference examples showing the comedic register to aim for. Produce exactly ONE video concept as JSON with fields "title", "description", and "hook_idea". The hook_idea is the first two seconds: what the viewer sees and hears before they can scroll away.

Do not explain yourself. Return only the JSON object.`
}

func (videoScriptPrompts) IdeationUser(pc domain.ProductContext, refs []string, siblings []domain.Concept) string {
	var b strings.Builder
	writeBrief(&b, pc)
	if len(refs) > 0 {
		b.WriteString("\nReference examples (match this energy, do not copy the premises):\n")
		for i, r := range refs {
			fmt.Fprintf(&b, "\n--- Example %d ---\n%s\n", i+1, r)
		}
	}
	if len(siblings) > 0 {
		b.WriteString("\nConcepts already taken by other writers. Yours must explore a DIFFERENT comedic angle:\n")
		for _, s := range siblings {
			fmt.Fprintf(&b, "- %s: %s\n", s.Title, s.Description)
		}
	}
	b.WriteString("\nGive me one new concept.")
	return b.String()
}

func (videoScriptPrompts) JudgeSystem() string {
	return `You are a skeptical creative director reviewing pitches for short-form video ads. You have seen thousands of pitches and most of them are derivative.

Evaluate the concept on:
1. Originality (0.0-1.0): How novel and surprising is this? Does it avoid cliches?
2. Clarity (0.0-1.0): Is the concept clear and easy to understand?
3. Marketing Viability (0.0-1.0): Will this effectively communicate the product benefit?

Your overall quality_score is a weighted average with originality weighted highest (40%), clarity (30%), and marketing viability (30%).

Return JSON with "quality_score" (0.0-1.0) and "reason" (one or two sentences, specific). Be strict but fair; reward novelty, and a mediocre concept earns a mediocre score.`
}

func (videoScriptPrompts) JudgeUser(pc domain.ProductContext, c domain.Concept) string {
	var b strings.Builder
	writeBrief(&b, pc)
	b.WriteString("\nConcept under review:\n")
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Description: %s\n", c.Description)
	fmt.Fprintf(&b, "Hook: %s\n", c.HookIdea)
	return b.String()
}

func (videoScriptPrompts) DraftSystem() string {
	return `You are a short-form video scriptwriter. Expand the approved concept into a complete scene-by-scene script as JSON matching this shape:

{
  "video_meta": {"duration_seconds": <int>, "platform": "tiktok|instagram|youtube_shorts|linkedin"},
  "scenes": [
    {
      "id": <int, 0-based>,
      "start_sec": <number>, "end_sec": <number>,
      "role": "hook|problem|solution|cta|other",
      "visual": "<detailed visual description, enough to shoot or generate the scene>",
      "camera": "<camera movement or angle>",
      "action": "<what happens>",
      "dialogue": "<spoken line, empty if none>",
      "on_screen_text": "<text overlay, if any>",
      "audio": {"music": "...", "sfx": "..."}
    }
  ]
}

Rules: the first scene is the hook and lands within two seconds. Dialogue is written to be spoken, not read. Scene times are contiguous and the total stays under 60 seconds unless the brief says otherwise. Return only the JSON object.`
}

func (videoScriptPrompts) DraftUser(pc domain.ProductContext, c domain.Concept) string {
	var b strings.Builder
	writeBrief(&b, pc)
	b.WriteString("\nApproved concept:\n")
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Description: %s\n", c.Description)
	fmt.Fprintf(&b, "Hook: %s\n", c.HookIdea)
	b.WriteString("\nWrite the full script.")
	return b.String()
}

// writeBrief renders the product context as a compact brief shared by all
// prompt roles.
func writeBrief(b *strings.Builder, pc domain.ProductContext) {
	b.WriteString("Product brief:\n")
	fmt.Fprintf(b, "Product: %s\n", pc.Name)
	if pc.Description != "" {
		fmt.Fprintf(b, "What it is: %s\n", pc.Description)
	}
	if pc.TargetAudience != "" {
		fmt.Fprintf(b, "Audience: %s\n", pc.TargetAudience)
	}
	if pc.PainPoint != "" {
		fmt.Fprintf(b, "Pain point: %s\n", pc.PainPoint)
	}
	if pc.KeyBenefit != "" {
		fmt.Fprintf(b, "Key benefit: %s\n", pc.KeyBenefit)
	}
	if pc.Offer != "" {
		fmt.Fprintf(b, "Offer: %s\n", pc.Offer)
	}
	fmt.Fprintf(b, "Platform: %s\n", pc.PlatformOrDefault())
	for _, k := range slices.Sorted(maps.Keys(pc.Extra)) {
		fmt.Fprintf(b, "%s: %s\n", k, pc.Extra[k])
	}
}
