package ordering

import "slices"

// QuickSort returns items ordered by Compare.
func QuickSort[T Costed[T]](items []T) []T {
	return apply(items, quickOrder(items))
}

func quickOrder[T Costed[T]](items []T) []int {
	perm := identity(len(items))
	slices.SortStableFunc(perm, func(a, b int) int {
		return items[a].Compare(items[b])
	})
	return perm
}
