package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/casefile/internal/core/model"
)

type SearchRequest struct {
	Location string `json:"location" binding:"required"`
}

// Search returns the clues at a location and a remark on each one not seen
// before.
func (s *Server) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s.withSession(c, func(sess *session) {
		if !playable(c, sess) {
			return
		}
		ctx := c.Request.Context()
		before := len(sess.game.Evidence())
		clues := sess.game.SearchLocation(ctx, req.Location)
		fresh := sess.game.Evidence()[before:]

		remarks := make([]string, 0, len(fresh))
		for _, clue := range fresh {
			remarks = append(remarks, s.narrator.CommentOnEvidence(ctx, clue))
		}
		c.JSON(http.StatusOK, gin.H{"clues": nonNil(clues), "remarks": remarks})
	})
}

type WitnessRequest struct {
	Location string `json:"location" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

func (s *Server) Witnesses(c *gin.Context) {
	var req WitnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s.withSession(c, func(sess *session) {
		if !playable(c, sess) {
			return
		}
		people := sess.game.QueryWitnesses(c.Request.Context(), req.Location, req.Time)
		c.JSON(http.StatusOK, gin.H{"witnesses": nonNil(people)})
	})
}

func (s *Server) Relationships(c *gin.Context) {
	s.withSession(c, func(sess *session) {
		rels := sess.game.GetRelationships(c.Request.Context(), c.Param("person"))
		c.JSON(http.StatusOK, gin.H{"relationships": nonNil(rels)})
	})
}

type InterviewRequest struct {
	Person   string `json:"person" binding:"required"`
	Question string `json:"question"`
}

// Interview questions a living person in the case. Without a question it
// only records the interview.
func (s *Server) Interview(c *gin.Context) {
	var req InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s.withSession(c, func(sess *session) {
		if !playable(c, sess) {
			return
		}
		person, ok := findPerson(sess.c, req.Person)
		switch {
		case !ok:
			c.JSON(http.StatusNotFound, gin.H{"error": "No such person in this case"})
			return
		case person.Role == model.RoleVictim:
			c.JSON(http.StatusBadRequest, gin.H{"error": "The dead cannot be questioned"})
			return
		}

		ctx := c.Request.Context()
		sess.game.MarkInterviewed(person.Name)
		resp := gin.H{"person": person.Name}
		if req.Question != "" {
			rels := sess.game.GetRelationships(ctx, person.Name)
			resp["reply"] = s.narrator.Interrogate(ctx, person, rels, req.Question)
		}
		c.JSON(http.StatusOK, resp)
	})
}

// Evidence lists the discovered evidence; ?analyze=true adds the
// assistant's reading of it.
func (s *Server) Evidence(c *gin.Context) {
	s.withSession(c, func(sess *session) {
		evidence := sess.game.Evidence()
		resp := gin.H{"evidence": evidence}
		if c.Query("analyze") == "true" {
			resp["analysis"] = s.narrator.AnalyzeEvidence(c.Request.Context(), evidence)
		}
		c.JSON(http.StatusOK, resp)
	})
}

func (s *Server) Summary(c *gin.Context) {
	s.withSession(c, func(sess *session) {
		c.JSON(http.StatusOK, gin.H{
			"summary": sess.game.Summary(),
			"expired": sess.game.IsExpired(),
			"closed":  sess.closed,
			"circles": nonNil(sess.game.SuspectCircles(c.Request.Context())),
		})
	})
}

func (s *Server) Hint(c *gin.Context) {
	s.withSession(c, func(sess *session) {
		ctx := c.Request.Context()
		unvisited := sess.game.UnvisitedLocations(ctx)
		hint := s.narrator.SuggestNextAction(ctx, sess.game.Summary(), unvisited)
		c.JSON(http.StatusOK, gin.H{"hint": hint, "unvisited": nonNil(unvisited)})
	})
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
	Archive  bool   `json:"archive"`
}

// Ask puts a question to the assistant; with archive set it also quotes the
// reference corpus.
func (s *Server) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s.withSession(c, func(sess *session) {
		ctx := c.Request.Context()
		resp := gin.H{"answer": s.narrator.AnswerQuestion(ctx, req.Question, sess.game.Summary())}
		if req.Archive {
			resp["archive"] = s.narrator.ConsultArchive(ctx, req.Question)
		}
		c.JSON(http.StatusOK, resp)
	})
}

type AccuseRequest struct {
	Suspect string `json:"suspect" binding:"required"`
}

// Accuse settles the case. A determinate accusation closes the session.
func (s *Server) Accuse(c *gin.Context) {
	var req AccuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s.withSession(c, func(sess *session) {
		if sess.closed {
			c.JSON(http.StatusConflict, gin.H{"error": "The case is closed"})
			return
		}
		res := sess.game.MakeAccusation(c.Request.Context(), req.Suspect)
		if !res.Indeterminate {
			sess.closed = true
		}
		c.JSON(http.StatusOK, res)
	})
}

func findPerson(c *model.Case, name string) (model.Person, bool) {
	for _, p := range c.People() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return model.Person{}, false
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
