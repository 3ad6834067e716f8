package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/agenthands/casefile/internal/config"
	"github.com/agenthands/casefile/internal/core/common"
	"github.com/agenthands/casefile/internal/core/model"
	"github.com/agenthands/casefile/internal/core/repair"
	"github.com/agenthands/casefile/internal/llm"
	"github.com/agenthands/casefile/internal/retrieval"
)

var (
	victimRelationTypes  = []string{"HATES", "FEARS", "LOVES", "RESENTS", "DISTRUSTS"}
	suspectRelationTypes = []string{"KNOWS", "ALLIES_WITH", "COMPETES_WITH"}
)

const (
	inspirationPassages = 2
	inspirationRunes    = 500
	maxSuspectLinks     = 3
)

// Generator turns freeform generation-service output into a repaired case.
type Generator struct {
	LLM       llm.LLMClient
	Prompts   config.Prompts
	retriever retrieval.Retriever
	repairer  *repair.Repairer
	rng       *rand.Rand
	themes    []string
	logger    *slog.Logger
}

type Option func(*Generator)

func WithRetriever(r retrieval.Retriever) Option {
	return func(g *Generator) { g.retriever = r }
}

func WithRepairer(r *repair.Repairer) Option {
	return func(g *Generator) { g.repairer = r }
}

// WithRand pins theme choice, alibi placement and relationship types.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

func WithThemes(themes []string) Option {
	return func(g *Generator) {
		if len(themes) > 0 {
			g.themes = themes
		}
	}
}

func WithPrompts(p config.Prompts) Option {
	return func(g *Generator) { g.Prompts = p }
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

func NewGenerator(client llm.LLMClient, opts ...Option) *Generator {
	g := &Generator{
		LLM:       client,
		retriever: retrieval.Nop{},
		themes:    DefaultThemes,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := uint64(time.Now().UnixNano())
		g.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if g.retriever == nil {
		g.retriever = retrieval.Nop{}
	}
	g.logger = g.logger.With("component", "generator")
	if g.repairer == nil {
		g.repairer = repair.NewRepairer(repair.WithRand(g.rng), repair.WithLogger(g.logger))
	}
	return g
}

// GenerateConcept asks for the victim, suspects, killer and locations. Any
// generation or parse failure yields FallbackCase; only a cancelled context
// is returned as an error.
func (g *Generator) GenerateConcept(ctx context.Context) (*model.Case, error) {
	theme := g.themes[g.rng.IntN(len(g.themes))]
	prompt := fmt.Sprintf(promptOr(g.Prompts.Concept, DefaultConceptPrompt), theme, g.inspiration(ctx, theme))

	response, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return g.fallbackCase("generation failed", err), nil
	}

	raw, err := common.ParseJSON[rawCase](response)
	if err != nil {
		return g.fallbackCase("unparseable concept", err), nil
	}

	c := raw.toModel()
	g.logger.Info("concept generated", "title", c.Title, "theme", theme, "suspects", len(c.Suspects))
	return c, nil
}

func (g *Generator) fallbackCase(reason string, err error) *model.Case {
	g.logger.Warn("using fallback case", "reason", reason, "error", err)
	return FallbackCase()
}

func (g *Generator) inspiration(ctx context.Context, theme string) string {
	passages, err := g.retriever.Search(ctx, "mystery investigation "+theme+" clues suspects", inspirationPassages)
	if err != nil {
		g.logger.Debug("no inspiration passages", "error", err)
		return ""
	}
	if len(passages) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(inspirationHeader)
	for _, p := range passages {
		sb.WriteString(common.TruncateRunes(p.Content, inspirationRunes))
		sb.WriteString("\n---\n")
	}
	return sb.String()
}

// GenerateClues asks for five clues for c. Missing fields get defaults;
// generation failures and empty answers yield FallbackClues and mark the
// case degraded.
func (g *Generator) GenerateClues(ctx context.Context, c *model.Case) ([]model.Item, error) {
	defaultLocation := ""
	if len(c.Locations) > 0 {
		defaultLocation = c.Locations[0]
	}
	prompt := fmt.Sprintf(promptOr(g.Prompts.Clues, DefaultCluesPrompt),
		c.Victim.Name, c.Killer.Name, strings.Join(c.Locations, ", "))

	response, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return g.fallbackClues(c, "generation failed", err), nil
	}

	raw, err := common.ParseJSONArray[rawClue](response)
	if err != nil {
		return g.fallbackClues(c, "unparseable clues", err), nil
	}
	if len(raw) == 0 {
		return g.fallbackClues(c, "empty clue list", nil), nil
	}

	clues := make([]model.Item, 0, len(raw))
	for _, r := range raw {
		clues = append(clues, r.toModel(defaultLocation))
	}
	return clues, nil
}

func (g *Generator) fallbackClues(c *model.Case, reason string, err error) []model.Item {
	g.logger.Warn("using fallback clues", "reason", reason, "error", err)
	c.Degraded = true
	return FallbackClues(c.Locations)
}

// GenerateAlibis places the killer and the victim at the crime scene and
// every other suspect somewhere else, all at the time of death.
func (g *Generator) GenerateAlibis(c *model.Case) []model.AlibiRecord {
	scene := c.Victim.KilledWhere
	when := c.Victim.KilledWhen

	var elsewhere []string
	for _, l := range c.Locations {
		if l != scene {
			elsewhere = append(elsewhere, l)
		}
	}

	alibis := make([]model.AlibiRecord, 0, len(c.Suspects)+1)
	for _, s := range c.Suspects {
		loc := scene
		if !s.IsKiller {
			switch {
			case len(elsewhere) > 0:
				loc = elsewhere[g.rng.IntN(len(elsewhere))]
			case len(c.Locations) > 0:
				loc = c.Locations[0]
			}
		}
		alibis = append(alibis, model.AlibiRecord{Person: s.Name, Location: loc, Time: when})
	}
	alibis = append(alibis, model.AlibiRecord{Person: c.Victim.Name, Location: scene, Time: when})
	return alibis
}

// GenerateRelationships links every suspect to the victim and adds up to
// three links between distinct suspects.
func (g *Generator) GenerateRelationships(c *model.Case) []model.SocialRelationship {
	var rels []model.SocialRelationship
	for _, s := range c.Suspects {
		rels = append(rels, model.SocialRelationship{
			From:   s.Name,
			To:     c.Victim.Name,
			Type:   victimRelationTypes[g.rng.IntN(len(victimRelationTypes))],
			Detail: s.Motive,
		})
	}

	n := len(c.Suspects)
	if n < 2 {
		return rels
	}
	for range min(maxSuspectLinks, n) {
		i := g.rng.IntN(n)
		j := g.rng.IntN(n - 1)
		if j >= i {
			j++
		}
		rels = append(rels, model.SocialRelationship{
			From:   c.Suspects[i].Name,
			To:     c.Suspects[j].Name,
			Type:   suspectRelationTypes[g.rng.IntN(len(suspectRelationTypes))],
			Detail: "Connected to the case",
		})
	}
	return rels
}

// Assemble runs the whole pipeline and returns a case that satisfies
// repair.Validate, with the combined repair report of both passes.
func (g *Generator) Assemble(ctx context.Context) (*model.Case, *repair.Report, error) {
	c, err := g.GenerateConcept(ctx)
	if err != nil {
		return nil, nil, err
	}
	report := g.repairer.Repair(c)

	clues, err := g.GenerateClues(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	c.Clues = clues
	c.Alibis = g.GenerateAlibis(c)
	c.Relationships = g.GenerateRelationships(c)

	report.Merge(g.repairer.Repair(c))

	g.logger.Info("case assembled",
		"title", c.Title,
		"suspects", len(c.Suspects),
		"clues", len(c.Clues),
		"degraded", c.Degraded,
	)
	return c, report, nil
}

func promptOr(custom, def string) string {
	if custom != "" {
		return custom
	}
	return def
}
