package kb

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
)

const sampleKB = `{
	"pointers": "A pointer stores an address.",
	"oop": {
		"inheritance": "Reuse through base classes.",
		"polymorphism": "Dispatch through virtual functions."
	},
	"references": "An alias for an existing object."
}`

func TestParseKnowledgeBase_PreservesOrder(t *testing.T) {
	kb, err := ParseKnowledgeBase(strings.NewReader(sampleKB))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(kb.Topics) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(kb.Topics))
	}
	wantOrder := []string{"pointers", "oop", "references"}
	for i, name := range wantOrder {
		if kb.Topics[i].Name != name {
			t.Errorf("topic %d: want %q, got %q", i, name, kb.Topics[i].Name)
		}
	}

	oop := kb.Topics[1]
	if len(oop.Subtopics) != 2 {
		t.Fatalf("expected 2 subtopics, got %d", len(oop.Subtopics))
	}
	if oop.Subtopics[0].Name != "inheritance" || oop.Subtopics[1].Name != "polymorphism" {
		t.Errorf("subtopic order lost: %+v", oop.Subtopics)
	}
}

func TestParseKnowledgeBase_ScalarCoercion(t *testing.T) {
	kb, err := ParseKnowledgeBase(strings.NewReader(`{"answer count": 42, "enabled": true}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if kb.Topics[0].Answer != "42" {
		t.Errorf("number should coerce to text, got %q", kb.Topics[0].Answer)
	}
	if kb.Topics[1].Answer != "true" {
		t.Errorf("bool should coerce to text, got %q", kb.Topics[1].Answer)
	}
}

func TestParseKnowledgeBase_EmptyMappingIsNotTerminal(t *testing.T) {
	kb, err := ParseKnowledgeBase(strings.NewReader(`{"pointers": {}, "references": ""}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(kb.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(kb.Topics))
	}

	empty := kb.Topics[0]
	if !empty.Nested {
		t.Error("a topic parsed from a mapping must be marked nested")
	}
	if len(empty.Subtopics) != 0 {
		t.Errorf("expected no subtopics, got %+v", empty.Subtopics)
	}

	terminal := kb.Topics[1]
	if terminal.Nested {
		t.Error("a string-valued topic must not be marked nested")
	}
}

func TestParseKnowledgeBase_RejectsDeepNesting(t *testing.T) {
	_, err := ParseKnowledgeBase(strings.NewReader(`{"a": {"b": {"c": "too deep"}}}`))
	if err == nil {
		t.Fatal("expected error for three-level nesting")
	}
}

func TestJSONSource_MissingFileIsEmpty(t *testing.T) {
	source := NewJSONSource(filepath.Join(t.TempDir(), "missing.json"), nil)
	kb, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if !kb.Empty() {
		t.Error("expected empty knowledge base")
	}
}

func TestJSONSource_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewJSONSource(path, nil)
	kb, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt file must not error: %v", err)
	}
	if !kb.Empty() {
		t.Error("expected empty knowledge base")
	}
}

func TestJSONSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	if err := os.WriteFile(path, []byte(sampleKB), 0644); err != nil {
		t.Fatal(err)
	}

	kb, err := NewJSONSource(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(kb.Topics) != 3 {
		t.Errorf("expected 3 topics, got %d", len(kb.Topics))
	}
}

func TestIndexHolder_SwapAndNil(t *testing.T) {
	holder := NewIndexHolder(nil)
	if holder.Current() == nil {
		t.Fatal("holder must never expose a nil index")
	}
	if len(holder.Current().Entries) != 0 {
		t.Error("nil seed should install an empty index")
	}

	next := &entities.Index{Entries: []entities.FlatEntry{{Key: "k"}}}
	holder.Swap(next)
	if holder.Current() != next {
		t.Error("swap should install the new index")
	}

	holder.Swap(nil)
	if holder.Current() == nil {
		t.Error("nil swap must install an empty index, not nil")
	}
}
