// Package index holds the prefix index used for product name autocomplete.
package index

const alphabet = 26

type node struct {
	children [alphabet]*node
	terminal bool
	word     string // original-case name, set on terminal nodes
}

// PrefixIndex is a letter trie over product names. Only the letters a-z take
// part in the path; every other character is skipped, so "USB-C Hub" and
// "usbchub" share one terminal node and the most recent insert owns it.
type PrefixIndex struct {
	root  *node
	words int
}

func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{root: &node{}}
}

// slot maps an ASCII letter of either case to its child index.
func slot(c byte) (int, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'z' {
		return 0, false
	}
	return int(c - 'a'), true
}

// Insert adds name to the index. Inserting the same name again is a no-op.
func (p *PrefixIndex) Insert(name string) {
	n := p.root
	for i := 0; i < len(name); i++ {
		idx, ok := slot(name[i])
		if !ok {
			continue
		}
		if n.children[idx] == nil {
			n.children[idx] = &node{}
		}
		n = n.children[idx]
	}
	if !n.terminal {
		p.words++
	}
	n.terminal = true
	n.word = name
}

// walk follows the letter path of s and returns nil when it breaks.
func (p *PrefixIndex) walk(s string) *node {
	n := p.root
	for i := 0; i < len(s); i++ {
		idx, ok := slot(s[i])
		if !ok {
			continue
		}
		if n.children[idx] == nil {
			return nil
		}
		n = n.children[idx]
	}
	return n
}

// Search reports whether word was inserted, ignoring case and non-letters.
func (p *PrefixIndex) Search(word string) bool {
	n := p.walk(word)
	return n != nil && n.terminal
}

// Autocomplete returns every stored name whose letters start with the letters
// of prefix, in alphabetical order of the letter path. An empty prefix, or one
// without letters, returns all names.
func (p *PrefixIndex) Autocomplete(prefix string) []string {
	n := p.walk(prefix)
	if n == nil {
		return nil
	}
	var out []string
	collect(n, &out)
	return out
}

func collect(n *node, out *[]string) {
	if n.terminal {
		*out = append(*out, n.word)
	}
	for _, child := range n.children {
		if child != nil {
			collect(child, out)
		}
	}
}

// Len returns the number of distinct terminal entries.
func (p *PrefixIndex) Len() int {
	return p.words
}
