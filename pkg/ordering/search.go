package ordering

// SearchSort returns the greedy minimum-change order of items, or items
// unchanged when that order is costlier.
func SearchSort[T Costed[T]](items []T) []T {
	return apply(items, searchOrder(items))
}

func searchOrder[T Costed[T]](items []T) []int {
	n := len(items)
	if n < 2 {
		return identity(n)
	}

	placed := make([]bool, n)
	perm := make([]int, 0, n)

	// pick returns the cheapest unplaced item, ties going to the smaller
	// item in Compare order.
	pick := func(cost func(T) int) int {
		best, bestCost := -1, 0
		for i, it := range items {
			if placed[i] {
				continue
			}
			c := cost(it)
			if best < 0 || c < bestCost || (c == bestCost && it.Compare(items[best]) < 0) {
				best, bestCost = i, c
			}
		}
		return best
	}

	next := pick(func(it T) int { return it.Cost() })
	for next >= 0 {
		placed[next] = true
		perm = append(perm, next)
		last := items[next]
		next = pick(func(it T) int { return it.Diff(last) })
	}

	if TotalCost(apply(items, perm)) > TotalCost(items) {
		return identity(n)
	}
	return perm
}
