package google

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/freshmarket/assistant/generator"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	genaiopt "google.golang.org/api/option"
)

type googleGenerator struct {
	options generator.Options
	client  *genai.Client
}

func (g *googleGenerator) Generate(ctx context.Context, messages []generator.Message) (string, error) {
	chat, last := g.chat(messages)

	rsp, err := chat.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", err
	}

	result := flatten(rsp)
	if len(result) == 0 {
		return "", errors.New("no response from Google")
	}

	return result, nil
}

func (g *googleGenerator) Stream(ctx context.Context, messages []generator.Message) (generator.Stream, error) {
	chat, last := g.chat(messages)

	iter := chat.SendMessageStream(ctx, genai.Text(last))

	return &googleStream{iter: iter}, nil
}

// chat splits the message sequence into prior history and the final user
// message the way the genai chat session expects them.
func (g *googleGenerator) chat(messages []generator.Message) (*genai.ChatSession, string) {
	model := g.client.GenerativeModel(g.options.Model)
	model.SetTemperature(g.options.Temperature)
	model.SetMaxOutputTokens(int32(g.options.MaxTokens))

	var history []*genai.Content
	var last string

	for i, msg := range messages {
		if msg.Role == generator.RoleSystem {
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(msg.Content)},
			}
			continue
		}

		if i == len(messages)-1 && msg.Role == generator.RoleUser {
			last = msg.Content
			continue
		}

		role := "user"
		if msg.Role == generator.RoleAssistant {
			role = "model"
		}

		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	chat := model.StartChat()
	chat.History = history

	return chat, last
}

func flatten(rsp *genai.GenerateContentResponse) string {
	if rsp == nil || len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String()
}

type googleStream struct {
	iter *genai.GenerateContentResponseIterator
}

func (s *googleStream) Recv() (string, error) {
	for {
		rsp, err := s.iter.Next()
		if errors.Is(err, iterator.Done) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}

		if text := flatten(rsp); len(text) > 0 {
			return text, nil
		}
	}
}

func (s *googleStream) Close() error {
	return nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &googleGenerator{
		options: options,
	}

	client, err := genai.NewClient(
		context.Background(),
		genaiopt.WithAPIKey(options.ApiKey),
	)
	if err != nil {
		panic(err)
	}

	g.client = client

	return g
}
