package genai

// Part is one piece of a generation request: text or inline binary data.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// InlineData carries base64-encoded media inline with the request.
type InlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Content is a sequence of parts.
type Content struct {
	Parts []Part `json:"parts"`
}

// GenerationConfig tunes the generation call.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateRequest is the universal input for a generation call.
type GenerateRequest struct {
	// Parts make up the single user turn. Text prompts and inline audio
	// may be mixed.
	Parts []Part
	// Temperature controls randomness. Zero keeps the client default.
	Temperature float64
	// MaxOutputTokens limits the response length. Zero keeps the client default.
	MaxOutputTokens int
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// AudioPart builds an inline base64 audio part.
func AudioPart(mimeType, base64Data string) Part {
	return Part{InlineData: &InlineData{MIMEType: mimeType, Data: base64Data}}
}

// --- wire types ---

type generateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
