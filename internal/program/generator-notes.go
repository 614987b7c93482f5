package program

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// notesGenerator produces coaching notes for an exercise using the OpenAI
// API. It is optional; the service falls back to templated notes when the
// generator is absent or fails.
type notesGenerator struct {
	client *openai.Client
}

// newNotesGenerator creates a new notes generator.
func newNotesGenerator(openaiAPIKey string) *notesGenerator {
	client := openai.NewClient(option.WithAPIKey(openaiAPIKey))
	return &notesGenerator{client: client}
}

// coachingNotes is the structured answer the model is constrained to.
type coachingNotes struct {
	ExerciseName  string `json:"exercise_name"`
	NotesMarkdown string `json:"notes_markdown"`
}

type coachingNotesJSONSchema struct{}

func (coachingNotesJSONSchema) MarshalJSON() ([]byte, error) {
	return []byte(`{
		  "type": "object",
		  "required": [
			"exercise_name",
			"notes_markdown"
		  ],
		  "properties": {
			"exercise_name": {
			  "type": "string",
			  "description": "Name of the exercise the notes cover"
			},
			"notes_markdown": {
			  "type": "string",
			  "description": "Markdown coaching notes with Setup, Execution and Common Mistakes sections"
			}
		  },
		  "additionalProperties": false
		}`), nil
}

// Generate produces markdown coaching notes for the given exercise.
func (ng *notesGenerator) Generate(
	ctx context.Context,
	definition taxonomy.ExerciseDefinition,
) (string, error) {
	if definition.Name == "" {
		return "", errors.New("exercise name cannot be empty")
	}

	prompt := fmt.Sprintf(`Write coaching notes for the exercise "%s"
(movement pattern: %s, equipment: %s). The notes_markdown field must follow
this exact structure:

## Setup
[2-3 numbered steps to get into the starting position]

## Execution
[3-4 numbered steps describing one full repetition with correct form]

## Common Mistakes
[3 bullet points naming form errors and how to correct them]

Important guidelines:
- Use simple, direct language that beginners can understand
- Highlight safety considerations where relevant
- Keep the whole text around 120-180 words`,
		definition.Name, definition.Category, definition.Equipment)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        openai.F("coaching_notes"),
		Description: openai.F("Structured coaching notes for a gym exercise"),
		Schema:      openai.F(interface{}(coachingNotesJSONSchema{})),
		Strict:      openai.Bool(true),
	}

	chat, err := ng.client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{ //nolint:exhaustruct // only need to set a few fields.
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			}),
			ResponseFormat: openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
				openai.ResponseFormatJSONSchemaParam{
					Type:       openai.F(openai.ResponseFormatJSONSchemaTypeJSONSchema),
					JSONSchema: openai.F(schemaParam),
				},
			),
			Model: openai.F(openai.ChatModelGPT4o2024_08_06),
		})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	var notes coachingNotes
	if err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &notes); err != nil {
		return "", fmt.Errorf("parse notes response: %w", err)
	}
	if strings.TrimSpace(notes.NotesMarkdown) == "" {
		return "", errors.New("generated notes are empty")
	}
	return notes.NotesMarkdown, nil
}

// templateNotes builds the fallback coaching notes from the static
// classification data.
func templateNotes(definition taxonomy.ExerciseDefinition, cues []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", definition.Name)
	fmt.Fprintf(&b, "A %s movement performed with %s.\n\n", definition.Category, definition.Equipment)

	if len(definition.PrimaryMuscles) > 0 {
		b.WriteString("## Primary muscles\n\n")
		for _, muscle := range definition.PrimaryMuscles {
			fmt.Fprintf(&b, "- %s\n", muscle)
		}
		b.WriteString("\n")
	}

	if len(cues) > 0 {
		b.WriteString("## Form cues\n\n")
		for _, cue := range cues {
			fmt.Fprintf(&b, "- %s\n", cue)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Safety\n\n")
	b.WriteString("Warm up through the full ramp before the working sets and stop the set when form breaks down.\n")
	return b.String()
}
