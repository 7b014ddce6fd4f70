package utils

// ForEachDestination is a helper function that reduces indentation when visiting every queued passenger
func ForEachDestination(queues [][]int, action func(floor, destination int)) {
	for floor := range queues {
		for _, destination := range queues[floor] {
			action(floor, destination)
		}
	}
}

// QuickSort sorts a[first..last] ascending in place.
//   - partitions around the last element of the active range (Lomuto)
//   - recurses into both sides of the pivot
func QuickSort(a []int, first, last int) {
	if len(a) <= 1 {
		return
	}
	if first < last {
		pivot := partition(a, first, last)
		QuickSort(a, first, pivot-1)
		QuickSort(a, pivot+1, last)
	}
}

func partition(a []int, first, last int) int {
	pivot := a[last]
	i := first - 1
	for j := first; j < last; j++ {
		if a[j] < pivot {
			i++
			a[i], a[j] = a[j], a[i]
		}
	}
	a[i+1], a[last] = a[last], a[i+1]
	return i + 1
}

// BinarySearch looks for target in the sorted range a[low..high] by recursive halving.
func BinarySearch(a []int, target, low, high int) (int, bool) {
	if high < low {
		return -1, false
	}
	middle := low + (high-low)/2
	switch {
	case a[middle] < target:
		return BinarySearch(a, target, middle+1, high)
	case a[middle] > target:
		return BinarySearch(a, target, low, middle-1)
	}
	return middle, true
}

// RemoveSorted deletes one occurrence of target from the sorted slice a.
func RemoveSorted(a []int, target int) ([]int, bool) {
	index, found := BinarySearch(a, target, 0, len(a)-1)
	if !found {
		return a, false
	}
	return append(a[:index], a[index+1:]...), true
}
