package attributes_test

import (
	"fmt"

	"github.com/canopyhq/canopy/pkg/attributes"
	"github.com/canopyhq/canopy/pkg/hierarchy"
)

func ExampleArea() {
	// A dendrogram over three leaves: node 3 merges leaves 0 and 1,
	// the root merges node 3 with leaf 2.
	t, _ := hierarchy.New(3, []int{3, 3, 4, 4, 4})

	area, _ := attributes.Area[int](t, nil)
	fmt.Println("Area:", area)
	// Output:
	// Area: [1 1 1 2 3]
}

func ExampleDepth() {
	t, _ := hierarchy.New(3, []int{3, 3, 4, 4, 4})

	fmt.Println("Depth:", attributes.Depth(t))
	// Output:
	// Depth: [2 2 1 1 0]
}

func ExampleVolume() {
	t, _ := hierarchy.New(3, []int{3, 3, 4, 4, 4})

	altitude := []float64{0, 0, 0, 1, 2}
	area, _ := attributes.Area[float64](t, nil)
	volume, _ := attributes.Volume(t, altitude, area)
	fmt.Println("Volume:", volume)
	// Output:
	// Volume: [1 1 2 4 6]
}

func ExampleExtinction() {
	t, _ := hierarchy.New(3, []int{3, 3, 4, 4, 4})

	// Base attribute is non-decreasing from leaves to root.
	extinction, _ := attributes.Extinction(t, []int{1, 2, 1, 2, 3})
	fmt.Println("Extinction:", extinction)
	// Output:
	// Extinction: [1 3 1 3 3]
}
