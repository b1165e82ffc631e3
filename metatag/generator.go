package metatag

import (
	"context"
	"strings"

	apperrors "github.com/kavyahq/storyeval/errors"
	"github.com/kavyahq/storyeval/genai"
	"github.com/kavyahq/storyeval/logger"
)

// maxStoryChars bounds the story text sent to the model so very long
// stories stay under token limits.
const maxStoryChars = 10000

// Generator produces meta-tag records for story texts.
type Generator struct {
	gen genai.Generator
	par *Parser
	log *logger.Logger

	// ChainOfThought asks the model for an analysis before the JSON.
	ChainOfThought bool
}

// NewGenerator creates a meta-tag generator. log may be nil.
func NewGenerator(gen genai.Generator, chainOfThought bool, log *logger.Logger) (*Generator, error) {
	if gen == nil {
		return nil, apperrors.Config("meta-tag generator requires a generation client")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("metatag.generator")
	return &Generator{
		gen:            gen,
		par:            NewParser(log),
		log:            log,
		ChainOfThought: chainOfThought,
	}, nil
}

// Generate sends the story to the model and parses the response into a
// complete record. Parse failures degrade to the sentinel record; only
// the generation call itself can return an error.
func (g *Generator) Generate(ctx context.Context, storyText, filename string) (Record, error) {
	if len(storyText) > maxStoryChars {
		storyText = truncate(storyText, maxStoryChars) + "..."
		g.log.Warn("truncated story text", map[string]interface{}{
			"filename":  filename,
			"max_chars": maxStoryChars,
		})
	}

	prompt := BuildPrompt(storyText, g.ChainOfThought)
	out, err := g.gen.Generate(ctx, genai.GenerateRequest{
		Parts: []genai.Part{genai.TextPart(prompt)},
	})
	if err != nil {
		return nil, apperrors.FromHTTP("gemini", err)
	}

	if g.ChainOfThought {
		if analysis := analysisPreamble(out); analysis != "" {
			g.log.Debug("chain-of-thought analysis", map[string]interface{}{
				"filename": filename,
				"analysis": snippet(analysis),
			})
		}
	}

	return g.par.Parse(out), nil
}

// analysisPreamble returns any prose preceding a ```json fence.
func analysisPreamble(s string) string {
	if idx := strings.Index(s, "```json"); idx > 0 {
		return strings.TrimSpace(s[:idx])
	}
	return ""
}

// truncate cuts s at n bytes without splitting a UTF-8 rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
