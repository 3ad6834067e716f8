package narrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agenthands/casefile/internal/core/common"
	"github.com/agenthands/casefile/internal/core/model"
	"github.com/agenthands/casefile/internal/llm"
	"github.com/agenthands/casefile/internal/retrieval"
)

const (
	archivePassages   = 3
	archiveRunes      = 500
	contextPassages   = 2
	contextRunes      = 400
	maxRelationsShown = 3
)

// Narrator voices the detective's assistant and the suspects. Every method
// returns usable text: when generation fails it falls back to a fixed line.
type Narrator struct {
	LLM       llm.LLMClient
	persona   string
	retriever retrieval.Retriever
	logger    *slog.Logger
}

type Option func(*Narrator)

func WithPersona(persona string) Option {
	return func(n *Narrator) {
		if persona != "" {
			n.persona = persona
		}
	}
}

func WithRetriever(r retrieval.Retriever) Option {
	return func(n *Narrator) { n.retriever = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(n *Narrator) { n.logger = logger }
}

func NewNarrator(client llm.LLMClient, opts ...Option) *Narrator {
	n := &Narrator{
		LLM:       client,
		persona:   DefaultPersona,
		retriever: retrieval.Nop{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.retriever == nil {
		n.retriever = retrieval.Nop{}
	}
	n.logger = n.logger.With("component", "narrator")
	return n
}

func (n *Narrator) generate(ctx context.Context, op, prompt, fallback string) string {
	if n.LLM == nil {
		return fallback
	}
	response, err := n.LLM.Generate(ctx, prompt)
	if err != nil {
		n.logger.Warn("using fallback text", "op", op, "error", err)
		return fallback
	}
	text := strings.Trim(strings.TrimSpace(response), `"`)
	if text == "" {
		n.logger.Warn("using fallback text", "op", op, "error", "empty response")
		return fallback
	}
	return text
}

// passages returns up to k passages for query, each cut to limit runes.
func (n *Narrator) passages(ctx context.Context, query string, k, limit int) []string {
	found, err := n.retriever.Search(ctx, query, k)
	if err != nil {
		n.logger.Debug("passage search failed", "query", query, "error", err)
		return nil
	}
	out := make([]string, 0, len(found))
	for _, p := range found {
		if p.Content == "" {
			continue
		}
		out = append(out, common.TruncateRunes(p.Content, limit))
	}
	return out
}

func (n *Narrator) archiveBlock(ctx context.Context, query string) string {
	found := n.passages(ctx, query, contextPassages, contextRunes)
	if len(found) == 0 {
		return ""
	}
	return archiveHeader + strings.Join(found, "\n---\n") + "\n"
}

// CommentOnEvidence remarks on a newly found clue.
func (n *Narrator) CommentOnEvidence(ctx context.Context, clue model.ClueView) string {
	prompt := fmt.Sprintf(commentPrompt, n.persona, clue.Name, clue.Description,
		n.archiveBlock(ctx, "evidence "+clue.Name))
	return n.generate(ctx, "comment", prompt, FallbackComment)
}

// AnalyzeEvidence reasons over everything collected so far.
func (n *Narrator) AnalyzeEvidence(ctx context.Context, evidence []model.ClueView) string {
	if len(evidence) == 0 {
		return NoEvidenceText
	}
	var sb strings.Builder
	for _, e := range evidence {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", e.Name, e.Location, e.Description)
	}
	prompt := fmt.Sprintf(analyzePrompt, n.persona, sb.String())
	return n.generate(ctx, "analyze", prompt, FallbackAnalysis)
}

func (n *Narrator) SuggestNextAction(ctx context.Context, s model.GameSummary, unvisited []string) string {
	prompt := fmt.Sprintf(suggestPrompt, n.persona,
		len(s.VisitedLocations), listOr(s.VisitedLocations, "none"),
		s.EvidenceCount,
		listOr(unvisited, "every location has been searched"))
	return n.generate(ctx, "suggest", prompt, FallbackSuggestion)
}

func (n *Narrator) AnswerQuestion(ctx context.Context, question string, s model.GameSummary) string {
	prompt := fmt.Sprintf(answerPrompt, n.persona,
		s.EvidenceCount,
		listOr(s.VisitedLocations, "none yet"),
		listOr(s.Interviewed, "nobody yet"),
		s.TimeRemaining,
		n.archiveBlock(ctx, question),
		question)
	return n.generate(ctx, "answer", prompt, FallbackAnswer)
}

// Interrogate answers question in the voice of person. The killer lies.
func (n *Narrator) Interrogate(ctx context.Context, person model.Person, rels []model.RelationshipView, question string) string {
	var relText string
	if len(rels) > 0 {
		var sb strings.Builder
		sb.WriteString("YOUR RELATIONSHIPS:\n")
		for _, r := range rels[:min(len(rels), maxRelationsShown)] {
			fmt.Fprintf(&sb, "- %s: %s\n", r.Target, r.Detail)
		}
		relText = sb.String()
	}
	instruction := innocentInstruction
	if person.Role == model.RoleKiller {
		instruction = guiltyInstruction
	}
	prompt := fmt.Sprintf(interrogatePrompt, person.Name, person.Trait, relText, instruction,
		n.archiveBlock(ctx, "interrogation "+question), question)
	return n.generate(ctx, "interrogate", prompt, FallbackReply)
}

// ConsultArchive returns the passages most relevant to question, joined and
// cut to a short excerpt. It does not call the generation service.
func (n *Narrator) ConsultArchive(ctx context.Context, question string) string {
	found := n.passages(ctx, question, archivePassages, archiveRunes)
	if len(found) == 0 {
		return EmptyArchiveText
	}
	joined := strings.Join(found, "\n\n")
	excerpt := common.TruncateRunes(joined, archiveRunes)
	if excerpt != joined {
		excerpt += "..."
	}
	return excerpt
}

func listOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
