package readme

import "github.com/Ujjayini-101/GitRefiny/pkg/errors"

// Model selects the generation backend.
type Model string

const (
	// ModelAuto tries configured backends and falls back to the template.
	ModelAuto Model = "auto"
	// ModelLlama3 forces the Groq Llama backend.
	ModelLlama3 Model = "llama3"
	// ModelGemini forces the Gemini backend.
	ModelGemini Model = "gemini"
	// ModelTemplate forces the deterministic template, no external calls.
	ModelTemplate Model = "template"
)

// Tone selects the writing style embedded in the prompt.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneConcise      Tone = "concise"
	ToneEnthusiastic Tone = "enthusiastic"
)

// DefaultSections lists every README section, in document order.
var DefaultSections = []string{
	"title", "description", "features", "architecture",
	"file_structure", "tech_stack", "setup", "usage",
	"api_endpoints", "contributing",
}

// toneInstructions maps each tone to its prompt instruction.
var toneInstructions = map[Tone]string{
	ToneProfessional: "Use a professional, technical tone suitable for enterprise documentation.",
	ToneConcise:      "Be brief and to-the-point. Use short sentences and bullet points.",
	ToneEnthusiastic: "Use an enthusiastic, engaging tone that excites developers about the project.",
}

// Options configures one generation run. The zero value selects every
// section, the professional tone, and automatic model selection.
type Options struct {
	// Sections to include; nil means DefaultSections.
	Sections []string
	// Tone of the generated content; empty means professional.
	Tone Tone
	// Model is the backend selection; empty means auto.
	Model Model
}

// normalize fills defaults and validates tone and model.
func (o *Options) normalize() error {
	if len(o.Sections) == 0 {
		o.Sections = DefaultSections
	}
	if o.Tone == "" {
		o.Tone = ToneProfessional
	}
	if o.Model == "" {
		o.Model = ModelAuto
	}

	if _, ok := toneInstructions[o.Tone]; !ok {
		return errors.New(errors.ErrCodeInvalidTone,
			"invalid tone %q, expected professional, concise, or enthusiastic", o.Tone)
	}
	switch o.Model {
	case ModelAuto, ModelLlama3, ModelGemini, ModelTemplate:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidModel,
			"invalid model %q, expected auto, llama3, gemini, or template", o.Model)
	}
}
