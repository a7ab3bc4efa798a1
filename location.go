package uix

import (
	"fmt"
	"log"
)

// MarkLocation tags n as a named location, a well-known anchor that code
// can resolve without knowing the tree layout. An empty name uses n.Name.
func MarkLocation(n *Node, name string) {
	if n == nil {
		panic("uix: MarkLocation on nil node")
	}
	if name == "" {
		name = n.Name
	}
	n.location = name
	n.isLocation = true
}

// LocationName returns the location name of n, or "" if n is not marked.
func (n *Node) LocationName() string {
	return n.location
}

// IsLocation reports whether n was marked with MarkLocation.
func (n *Node) IsLocation() bool {
	return n.isLocation
}

// Location returns the first location named name in tree order.
func (s *Scene) Location(name string) (*Node, error) {
	if n := findLocation(s.root, name); n != nil {
		return n, nil
	}
	if globalDebug {
		log.Printf("uix: location %q not found", name)
	}
	return nil, fmt.Errorf("uix: location %q: %w", name, ErrNotFound)
}

// Locations returns every marked node in tree order.
func (s *Scene) Locations() []*Node {
	return appendLocations(nil, s.root)
}

func findLocation(n *Node, name string) *Node {
	if n.isLocation && n.location == name {
		return n
	}
	for _, c := range n.children {
		if found := findLocation(c, name); found != nil {
			return found
		}
	}
	return nil
}

func appendLocations(buf []*Node, n *Node) []*Node {
	if n.isLocation {
		buf = append(buf, n)
	}
	for _, c := range n.children {
		buf = appendLocations(buf, c)
	}
	return buf
}
