// Package kb provides knowledge base source adapters.
// Clean Architecture: Adapters implementing ports.KnowledgeSource.
package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
)

// JSONSource loads the knowledge base from a JSON file shaped as
// {"topic": "answer"} or {"topic": {"subtopic": "answer"}}.
// A missing or corrupt file yields an empty knowledge base, never an error
// into the core; the service still answers intents and LLM fallbacks.
type JSONSource struct {
	path   string
	logger *zap.Logger
}

// NewJSONSource creates a JSON file knowledge source.
func NewJSONSource(path string, logger *zap.Logger) *JSONSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONSource{path: path, logger: logger}
}

// Load reads and parses the file. Key order is preserved by token-level
// decoding; encoding/json maps would randomize it and break scoring
// tie-break determinism.
func (s *JSONSource) Load(ctx context.Context) (entities.KnowledgeBase, error) {
	file, err := os.Open(s.path)
	if err != nil {
		s.logger.Warn("knowledge base file not readable, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return entities.KnowledgeBase{}, nil
	}
	defer file.Close()

	kb, err := ParseKnowledgeBase(file)
	if err != nil {
		s.logger.Warn("knowledge base file is not valid JSON, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return entities.KnowledgeBase{}, nil
	}
	s.logger.Info("knowledge base loaded",
		zap.String("path", s.path), zap.Int("topics", len(kb.Topics)))
	return kb, nil
}

// ParseKnowledgeBase decodes the two-level topic mapping from r, keeping the
// document's key order.
func ParseKnowledgeBase(r io.Reader) (entities.KnowledgeBase, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return entities.KnowledgeBase{}, err
	}

	var kb entities.KnowledgeBase
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return entities.KnowledgeBase{}, err
		}

		tok, err := dec.Token()
		if err != nil {
			return entities.KnowledgeBase{}, fmt.Errorf("reading value for %q: %w", name, err)
		}

		if delim, ok := tok.(json.Delim); ok {
			if delim != '{' {
				return entities.KnowledgeBase{}, fmt.Errorf("topic %q: unsupported value type %q", name, delim)
			}
			subs, err := parseSubtopics(dec, name)
			if err != nil {
				return entities.KnowledgeBase{}, err
			}
			kb.Topics = append(kb.Topics, entities.Topic{Name: name, Nested: true, Subtopics: subs})
			continue
		}

		kb.Topics = append(kb.Topics, entities.Topic{Name: name, Answer: scalarText(tok)})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return entities.KnowledgeBase{}, err
	}
	return kb, nil
}

func parseSubtopics(dec *json.Decoder, topic string) ([]entities.Subtopic, error) {
	var subs []entities.Subtopic
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", topic, err)
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("topic %q, subtopic %q: %w", topic, name, err)
		}
		if _, ok := tok.(json.Delim); ok {
			return nil, fmt.Errorf("topic %q, subtopic %q: nesting deeper than two levels", topic, name)
		}
		subs = append(subs, entities.Subtopic{Name: name, Answer: scalarText(tok)})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("topic %q: %w", topic, err)
	}
	return subs, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding knowledge base: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("decoding knowledge base: expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}

// scalarText coerces non-object values to answer text, mirroring how the
// knowledge file treats numbers or booleans as displayable answers.
func scalarText(tok json.Token) string {
	switch v := tok.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
