package ast

// FileIDStack tracks the file ids of the roots enclosing the node being visited
type FileIDStack struct {
	ids []FileID
}

// Push adds the id of an entered root
func (s *FileIDStack) Push(fileID FileID) {
	s.ids = append(s.ids, fileID)
}

// Pop removes the innermost root id
func (s *FileIDStack) Pop() (FileID, bool) {
	if len(s.ids) == 0 {
		return "", false
	}
	last := s.ids[len(s.ids)-1]
	s.ids = s.ids[:len(s.ids)-1]
	return last, true
}

// Current returns the id of the innermost enclosing root
func (s *FileIDStack) Current() (FileID, bool) {
	if s == nil || len(s.ids) == 0 {
		return "", false
	}
	return s.ids[len(s.ids)-1], true
}

// Root returns the id of the outermost root
func (s *FileIDStack) Root() (FileID, bool) {
	if s == nil || len(s.ids) == 0 {
		return "", false
	}
	return s.ids[0], true
}

func (s *FileIDStack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}
