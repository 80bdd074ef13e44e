// Package generation implements the divergence-convergence pipeline:
// ideation fans out into independent concept branches, judging scores each
// concept, selection converges on one, and drafting expands it into the
// final structured artifact.
package generation

import (
	"fmt"
	"sync"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// PromptSet builds the prompts for the three pipeline roles of one content
// type. Creator and judge are distinct roles with distinct personas.
type PromptSet interface {
	IdeationSystem() string
	// IdeationUser builds one branch's prompt. Concepts already produced
	// by sibling branches are passed in so the branch can diverge from
	// them as well as from the reference examples.
	IdeationUser(pc domain.ProductContext, refs []string, siblings []domain.Concept) string

	JudgeSystem() string
	JudgeUser(pc domain.ProductContext, c domain.Concept) string

	DraftSystem() string
	DraftUser(pc domain.ProductContext, c domain.Concept) string
}

// Definition binds a content type to its prompt set and output schema.
type Definition struct {
	Prompts PromptSet

	// DraftSchema validates the drafted artifact for this content type.
	DraftSchema *llm.Schema
}

var (
	registryMu sync.RWMutex
	registry   = make(map[domain.ContentType]Definition)
)

// Register adds a content type definition. Adding a type is a registration,
// never a modification of existing dispatch code. Re-registering an
// existing tag panics: definitions are wired once at startup.
func Register(t domain.ContentType, def Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[t]; exists {
		panic(fmt.Sprintf("content type %q registered twice", t))
	}
	if def.Prompts == nil || def.DraftSchema == nil {
		panic(fmt.Sprintf("content type %q registered with incomplete definition", t))
	}
	registry[t] = def
}

// Lookup resolves a content type to its definition at call time.
func Lookup(t domain.ContentType) (Definition, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	def, ok := registry[t]
	if !ok {
		return Definition{}, fmt.Errorf("content type %q is not registered", t)
	}
	return def, nil
}

// Registered lists the registered content types.
func Registered() []domain.ContentType {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]domain.ContentType, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	return types
}

func init() {
	Register(domain.ContentTypeVideoScript, Definition{
		Prompts:     videoScriptPrompts{},
		DraftSchema: VideoScriptSchema,
	})
}
