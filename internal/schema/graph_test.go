package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func indexOf(t *testing.T, order []string, name string) int {
	t.Helper()
	for i, n := range order {
		if n == name {
			return i
		}
	}
	t.Fatalf("%q missing from order %v", name, order)
	return -1
}

func TestInsertionOrderRespectsDependencies(t *testing.T) {
	order := InsertionOrder()
	require.Len(t, order, len(dependencies))

	for _, n := range dependencies {
		for _, dep := range n.dependsOn {
			require.Less(t, indexOf(t, order, dep), indexOf(t, order, n.name),
				"%s must come after %s on insert", n.name, dep)
		}
	}
}

func TestDeletionOrderIsExactReverse(t *testing.T) {
	ins := InsertionOrder()
	del := DeletionOrder()
	require.Len(t, del, len(ins))
	for i := range ins {
		require.Equal(t, ins[i], del[len(del)-1-i])
	}

	// dependents are removed before the rows they point at
	for _, n := range dependencies {
		for _, dep := range n.dependsOn {
			require.Greater(t, indexOf(t, del, dep), indexOf(t, del, n.name),
				"%s must be deleted before %s", n.name, dep)
		}
	}
}

func TestOrderIsDeterministic(t *testing.T) {
	require.Equal(t, InsertionOrder(), InsertionOrder())

	// leaves first, link tables after both their parents
	order := InsertionOrder()
	require.Equal(t, Series, order[0])
	require.Less(t, indexOf(t, order, Artworks), indexOf(t, order, ArtworkImages))
	require.Less(t, indexOf(t, order, GalleryImages), indexOf(t, order, ArtworkImages))
	require.Less(t, indexOf(t, order, Exhibitions), indexOf(t, order, ArtworkExhibitions))
}

func TestTopoSortPanicsOnCycle(t *testing.T) {
	cyclic := []node{
		{name: "a", dependsOn: []string{"b"}},
		{name: "b", dependsOn: []string{"a"}},
	}
	require.Panics(t, func() { mustTopoSort(cyclic) })
}

func TestTopoSortPanicsOnUnknownDependency(t *testing.T) {
	bad := []node{{name: "a", dependsOn: []string{"ghost"}}}
	require.Panics(t, func() { mustTopoSort(bad) })
}
