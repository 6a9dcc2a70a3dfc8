package mesh

import "sort"

// EdgeKey returns the edge between vertices a and b with the lower index first.
func EdgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Edges returns the unique edges of the mesh sorted by vertex index.
func (m *Mesh) Edges() [][2]int {
	count := edgeUse(m.Faces)
	edges := make([][2]int, 0, len(count))
	for e := range count {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}

// OpenEdges returns the number of edges not shared by exactly two faces.
// A closed manifold mesh has none.
func (m *Mesh) OpenEdges() int {
	open := 0
	for _, n := range edgeUse(m.Faces) {
		if n != 2 {
			open++
		}
	}
	return open
}

// Neighbors returns the vertex adjacency lists of the mesh, each sorted.
func (m *Mesh) Neighbors() [][]int {
	adj := make([][]int, len(m.Vertices))
	for _, e := range m.Edges() {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}
	for i := range adj {
		sort.Ints(adj[i])
	}
	return adj
}

// Islands groups the vertices of subset into components connected by mesh
// edges that stay inside subset. Islands and their members are sorted by
// vertex index.
func (m *Mesh) Islands(subset []int) [][]int {
	in := make(map[int]bool, len(subset))
	for _, v := range subset {
		in[v] = true
	}
	adj := m.Neighbors()
	sorted := append([]int(nil), subset...)
	sort.Ints(sorted)
	seen := make(map[int]bool, len(subset))
	var islands [][]int
	for _, start := range sorted {
		if seen[start] {
			continue
		}
		seen[start] = true
		island := []int{start}
		for i := 0; i < len(island); i++ {
			for _, other := range adj[island[i]] {
				if in[other] && !seen[other] {
					seen[other] = true
					island = append(island, other)
				}
			}
		}
		sort.Ints(island)
		islands = append(islands, island)
	}
	return islands
}

func edgeUse(faces [][3]int) map[[2]int]int {
	count := make(map[[2]int]int, 3*len(faces)/2)
	for _, f := range faces {
		for j := range f {
			count[EdgeKey(f[j], f[(j+1)%3])]++
		}
	}
	return count
}
