package community

import (
	"sort"

	"github.com/agenthands/casefile/internal/core/model"
)

// LabelPropagationDetector finds circles with label propagation. Several
// relationships between the same pair count as a stronger tie.
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(people []string, rels []model.SocialRelationship) [][]string {
	if len(people) == 0 {
		return nil
	}
	adj := buildAdjacency(people, rels)

	// Each person starts in a circle of their own.
	labels := make(map[string]string, len(people))
	for _, p := range people {
		labels[p] = p
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		for _, u := range people {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				labelCounts[label] += weight
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			var candidates []string
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}
			// Ties go to the lexicographically largest label so runs are stable.
			sort.Strings(candidates)
			bestLabel := candidates[len(candidates)-1]

			if labels[u] != bestLabel {
				labels[u] = bestLabel
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	clusters := make(map[string][]string)
	for _, p := range people {
		clusters[labels[p]] = append(clusters[labels[p]], p)
	}

	var circles [][]string
	for _, cluster := range clusters {
		if len(cluster) >= 2 {
			circles = append(circles, cluster)
		}
	}
	return sortCircles(circles)
}
