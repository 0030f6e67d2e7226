package axon

import "sort"

// paletteEntry pairs a palette color with its index so tree searches
// can break distance ties toward the lowest index.
type paletteEntry struct {
	r, g, b uint8
	index   uint8
}

// colorNode is a node in a kd-tree over palette entries, split on the
// axis with the largest variance at each level.
type colorNode struct {
	entry       paletteEntry
	left, right *colorNode
	axis        int
}

// buildColorTree constructs a kd-tree from palette entries. Entries
// with identical colors all stay in the tree; tie-breaking at search
// time picks the lowest index among them.
func buildColorTree(entries []paletteEntry, depth int) *colorNode {
	if len(entries) == 0 {
		return nil
	}

	axis := varianceAxis(entries)
	sort.Slice(entries, func(i, j int) bool {
		ci, cj := component(entries[i], axis), component(entries[j], axis)
		if ci != cj {
			return ci < cj
		}
		return entries[i].index < entries[j].index
	})

	median := len(entries) / 2
	return &colorNode{
		entry: entries[median],
		left:  buildColorTree(entries[:median], depth+1),
		right: buildColorTree(entries[median+1:], depth+1),
		axis:  axis,
	}
}

// varianceAxis returns the RGB axis with the largest variance across
// the entries, which keeps the tree balanced for skewed palettes.
func varianceAxis(entries []paletteEntry) int {
	var meanR, meanG, meanB float64
	for _, e := range entries {
		meanR += float64(e.r)
		meanG += float64(e.g)
		meanB += float64(e.b)
	}
	n := float64(len(entries))
	meanR /= n
	meanG /= n
	meanB /= n

	var varR, varG, varB float64
	for _, e := range entries {
		dr := float64(e.r) - meanR
		dg := float64(e.g) - meanG
		db := float64(e.b) - meanB
		varR += dr * dr
		varG += dg * dg
		varB += db * db
	}

	if varR > varG && varR > varB {
		return 0
	} else if varG > varB {
		return 1
	}
	return 2
}

func component(e paletteEntry, axis int) uint8 {
	switch axis {
	case 0:
		return e.r
	case 1:
		return e.g
	default:
		return e.b
	}
}

// nearest returns the squared distance and palette index of the entry
// closest to the target color. Equal distances resolve to the lowest
// index, so searches are deterministic for duplicate palette colors.
func (node *colorNode) nearest(r, g, b uint8) (int, uint8) {
	bestDist := int(1) << 30
	var bestIdx uint8
	node.search(r, g, b, &bestDist, &bestIdx)
	return bestDist, bestIdx
}

func (node *colorNode) search(r, g, b uint8, bestDist *int, bestIdx *uint8) {
	if node == nil {
		return
	}

	e := node.entry
	d := sqDist(r, g, b, e.r, e.g, e.b)
	if d < *bestDist || (d == *bestDist && e.index < *bestIdx) {
		*bestDist = d
		*bestIdx = e.index
	}

	target := componentOf(r, g, b, node.axis)
	pivot := component(e, node.axis)

	first, second := node.left, node.right
	if target >= pivot {
		first, second = node.right, node.left
	}

	first.search(r, g, b, bestDist, bestIdx)

	// The far branch can still hold the winner (or an equal-distance
	// lower index), so prune only when strictly farther.
	axisDist := int(target) - int(pivot)
	if axisDist*axisDist <= *bestDist {
		second.search(r, g, b, bestDist, bestIdx)
	}
}

func componentOf(r, g, b uint8, axis int) uint8 {
	switch axis {
	case 0:
		return r
	case 1:
		return g
	default:
		return b
	}
}
