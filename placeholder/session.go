package placeholder

// Session carries the mutable state shared by all parses belonging to one
// top-level read: the placeholder ID counter and the include-cycle watch
// list. Threading an explicit Session through tokenizer, parser and
// resolver keeps IDs unique across an entire include tree and makes
// independent concurrent reads safe; a Session itself must not be shared
// between goroutines.
type Session struct {
	count   int
	visited []string
}

func NewSession() *Session {
	return &Session{count: -1}
}

// Next increments the shared counter and returns its value. The counter
// wraps at Max so IDs always fit the fixed placeholder width.
func (s *Session) Next() int {
	s.count++
	if s.count >= Max {
		s.count = 0
	}
	return s.count
}

// Visit registers name on the include chain and reports whether it was
// already there, i.e. whether following this include would recurse.
func (s *Session) Visit(name string) bool {
	seen := false
	for _, v := range s.visited {
		if v == name {
			seen = true
			break
		}
	}
	s.visited = append(s.visited, name)
	return seen
}

// Chain returns the include chain registered so far, in visit order.
func (s *Session) Chain() []string {
	return s.visited
}

// ResetVisited clears the include chain. Called at the start of each
// independent top-level read.
func (s *Session) ResetVisited() {
	s.visited = s.visited[:0]
}
