package domain

// Video script schema for the video_script content type. Scenes follow the
// Hook -> Problem -> Solution -> CTA structure and carry enough visual
// detail for downstream video generation.

// VideoMeta holds script-level metadata.
type VideoMeta struct {
	// DurationSeconds is the total estimated duration.
	DurationSeconds int `json:"duration_seconds" validate:"min=1"`

	// Platform is the target platform.
	Platform string `json:"platform" validate:"required,oneof=tiktok instagram youtube_shorts linkedin"`
}

// SceneAudio describes music and sound effects for one scene.
type SceneAudio struct {
	Music string `json:"music,omitempty"`
	SFX   string `json:"sfx,omitempty"`
}

// Scene is a single scene of a video script.
type Scene struct {
	ID       int     `json:"id"`
	StartSec float64 `json:"start_sec" validate:"min=0"`
	EndSec   float64 `json:"end_sec" validate:"min=0"`

	// Role is the narrative role: hook, problem, solution, cta or other.
	Role string `json:"role" validate:"required,oneof=hook problem solution cta other"`

	// Visual is a detailed visual description for video generation.
	Visual string `json:"visual" validate:"required"`

	// Camera describes camera movement or angle.
	Camera string `json:"camera"`

	// Action is what happens in the scene.
	Action string `json:"action"`

	// Dialogue is the spoken line; empty when the scene has none.
	Dialogue string `json:"dialogue"`

	// OnScreenText carries text overlays, if any.
	OnScreenText string `json:"on_screen_text,omitempty"`

	Audio SceneAudio `json:"audio"`

	// NotesForModel carries technical notes for the video model.
	NotesForModel string `json:"notes_for_model,omitempty"`
}

// VideoScript is the complete structured script artifact.
type VideoScript struct {
	VideoMeta VideoMeta `json:"video_meta" validate:"required"`
	Scenes    []Scene   `json:"scenes" validate:"required,min=1,dive"`
}

// Validate checks the script against its schema constraints.
func (s *VideoScript) Validate() error { return validate.Struct(s) }
