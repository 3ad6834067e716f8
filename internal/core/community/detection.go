package community

import (
	"sort"

	"github.com/agenthands/casefile/internal/core/model"
)

// Detector groups people into circles using the relationships between them.
// Circles have at least two members; members and circles are sorted.
type Detector interface {
	Detect(people []string, rels []model.SocialRelationship) [][]string
}

// ComponentDetector treats every connected component as one circle.
type ComponentDetector struct{}

func NewComponentDetector() *ComponentDetector {
	return &ComponentDetector{}
}

func (d *ComponentDetector) Detect(people []string, rels []model.SocialRelationship) [][]string {
	adj := buildAdjacency(people, rels)

	visited := make(map[string]bool)
	var circles [][]string
	for _, p := range people {
		if visited[p] {
			continue
		}
		var component []string
		d.dfs(p, adj, visited, &component)
		if len(component) >= 2 {
			circles = append(circles, component)
		}
	}
	return sortCircles(circles)
}

func (d *ComponentDetector) dfs(u string, adj map[string]map[string]int, visited map[string]bool, component *[]string) {
	visited[u] = true
	*component = append(*component, u)
	for v := range adj[u] {
		if !visited[v] {
			d.dfs(v, adj, visited, component)
		}
	}
}

// buildAdjacency builds an undirected multigraph over people. Edges that
// touch anyone outside people are ignored.
func buildAdjacency(people []string, rels []model.SocialRelationship) map[string]map[string]int {
	adj := make(map[string]map[string]int, len(people))
	for _, p := range people {
		adj[p] = make(map[string]int)
	}
	for _, r := range rels {
		if _, ok := adj[r.From]; !ok {
			continue
		}
		if _, ok := adj[r.To]; !ok {
			continue
		}
		if r.From == r.To {
			continue
		}
		adj[r.From][r.To]++
		adj[r.To][r.From]++
	}
	return adj
}

func sortCircles(circles [][]string) [][]string {
	for _, c := range circles {
		sort.Strings(c)
	}
	sort.Slice(circles, func(i, j int) bool {
		return circles[i][0] < circles[j][0]
	})
	return circles
}
