package ml

import (
	"fmt"
	"math/rand"
	"sort"
)

// ForestConfig controls training of the bagged decision forest. The seed
// makes training reproducible; everything else has a sensible default.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	MinSplit int
	Seed     int64
}

const (
	defaultTrees    = 100
	defaultMaxDepth = 8
	defaultMinSplit = 2
)

func (c ForestConfig) withDefaults() ForestConfig {
	if c.Trees <= 0 {
		c.Trees = defaultTrees
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultMaxDepth
	}
	if c.MinSplit < 2 {
		c.MinSplit = defaultMinSplit
	}
	return c
}

// Forest is a bagged ensemble of binary decision trees. Prediction is a
// majority vote over the trees.
type Forest struct {
	Trees []*treeNode `json:"trees"`
}

// treeNode is either an internal split on one feature or a leaf carrying a
// class label.
type treeNode struct {
	Leaf      bool      `json:"leaf"`
	Label     int       `json:"label,omitempty"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
}

// TrainForest fits the ensemble on the given samples. Each tree is grown on a
// bootstrap sample drawn from a rand source seeded by cfg.Seed.
func TrainForest(features [][]float64, labels []int, cfg ForestConfig) (*Forest, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("forest training requires at least one sample")
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("feature and label counts differ: %d vs %d", len(features), len(labels))
	}

	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))

	trees := make([]*treeNode, 0, cfg.Trees)
	for i := 0; i < cfg.Trees; i++ {
		sampleX := make([][]float64, len(features))
		sampleY := make([]int, len(labels))
		for j := range sampleX {
			pick := rng.Intn(len(features))
			sampleX[j] = features[pick]
			sampleY[j] = labels[pick]
		}
		trees = append(trees, growTree(sampleX, sampleY, 0, cfg))
	}

	return &Forest{Trees: trees}, nil
}

// Predict returns the majority class for the feature vector, 0 or 1.
func (f *Forest) Predict(features []float64) int {
	if f == nil || len(f.Trees) == 0 {
		return 0
	}

	positive := 0
	for _, tree := range f.Trees {
		if tree.classify(features) == 1 {
			positive++
		}
	}

	if positive*2 >= len(f.Trees) {
		return 1
	}
	return 0
}

func (n *treeNode) classify(features []float64) int {
	for !n.Leaf {
		if n.Feature < len(features) && features[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Label
}

func growTree(features [][]float64, labels []int, depth int, cfg ForestConfig) *treeNode {
	if depth >= cfg.MaxDepth || len(labels) < cfg.MinSplit || isPure(labels) {
		return &treeNode{Leaf: true, Label: majority(labels)}
	}

	feature, threshold, ok := bestSplit(features, labels)
	if !ok {
		return &treeNode{Leaf: true, Label: majority(labels)}
	}

	var leftX, rightX [][]float64
	var leftY, rightY []int
	for i, row := range features {
		if row[feature] <= threshold {
			leftX = append(leftX, row)
			leftY = append(leftY, labels[i])
		} else {
			rightX = append(rightX, row)
			rightY = append(rightY, labels[i])
		}
	}

	if len(leftY) == 0 || len(rightY) == 0 {
		return &treeNode{Leaf: true, Label: majority(labels)}
	}

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      growTree(leftX, leftY, depth+1, cfg),
		Right:     growTree(rightX, rightY, depth+1, cfg),
	}
}

// bestSplit scans every feature and candidate threshold for the split with
// the lowest weighted gini impurity. ok is false when no split improves on
// the parent node.
func bestSplit(features [][]float64, labels []int) (int, float64, bool) {
	parent := gini(labels)
	bestFeature := -1
	bestThreshold := 0.0
	bestImpurity := parent

	width := len(features[0])
	for feature := 0; feature < width; feature++ {
		for _, threshold := range candidateThresholds(features, feature) {
			var left, right []int
			for i, row := range features {
				if row[feature] <= threshold {
					left = append(left, labels[i])
				} else {
					right = append(right, labels[i])
				}
			}
			if len(left) == 0 || len(right) == 0 {
				continue
			}

			total := float64(len(labels))
			weighted := gini(left)*float64(len(left))/total + gini(right)*float64(len(right))/total
			if weighted < bestImpurity {
				bestImpurity = weighted
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// candidateThresholds returns midpoints between consecutive distinct values
// of one feature column.
func candidateThresholds(features [][]float64, feature int) []float64 {
	seen := make(map[float64]struct{}, len(features))
	values := make([]float64, 0, len(features))
	for _, row := range features {
		v := row[feature]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	if len(values) < 2 {
		return nil
	}

	sort.Float64s(values)
	thresholds := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		thresholds = append(thresholds, (values[i-1]+values[i])/2)
	}
	return thresholds
}

func gini(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}

	positive := 0
	for _, label := range labels {
		if label == 1 {
			positive++
		}
	}

	p := float64(positive) / float64(len(labels))
	return 2 * p * (1 - p)
}

func isPure(labels []int) bool {
	for i := 1; i < len(labels); i++ {
		if labels[i] != labels[0] {
			return false
		}
	}
	return true
}

func majority(labels []int) int {
	positive := 0
	for _, label := range labels {
		if label == 1 {
			positive++
		}
	}

	if positive*2 >= len(labels) && len(labels) > 0 {
		return 1
	}
	return 0
}
