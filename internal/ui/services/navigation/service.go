package navigation

// rowsPerItem is how many lines one result takes in the list
const rowsPerItem = 3

// Service moves the cursor through the results list and keeps it inside
// the viewport. The offset it exposes is the index of the first visible
// result, which is what gets saved and restored around package pages.
type Service struct {
	state *State
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{
		state: &State{
			ViewportHeight: 5,
		},
	}
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns how many results fit on screen
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates the viewport from the terminal height
func (s *Service) SetViewportHeight(height int) {
	// Reserve space for header, summary, pagination and status bar
	effective := (height - 10) / rowsPerItem
	if effective < 1 {
		effective = 1
	}
	s.state.ViewportHeight = effective
	s.ensureVisible()
}

// SetItemCount sets the number of results in the list
func (s *Service) SetItemCount(n int) {
	s.state.MaxIndex = n - 1
	if s.state.MaxIndex < 0 {
		s.state.MaxIndex = 0
	}
	s.state.Cursor = s.clampIndex(s.state.Cursor)
	s.ensureVisible()
}

// Offset implements search.Viewport
func (s *Service) Offset() int {
	return s.state.ViewportOffset
}

// ScrollTo implements search.Viewport. The cursor follows the top of the
// viewport. The offset is kept as requested even past the end of the list
// so that a restore issued before results arrive is not lost.
func (s *Service) ScrollTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	s.state.ViewportOffset = offset
	s.state.Cursor = offset
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	switch direction {
	case DirectionUp:
		if s.state.Cursor > 0 {
			s.state.Cursor--
		}
	case DirectionDown:
		if s.state.Cursor < s.state.MaxIndex {
			s.state.Cursor++
		}
	case DirectionPageUp:
		s.state.Cursor = s.clampIndex(s.state.Cursor - s.state.ViewportHeight)
		s.state.ViewportOffset -= s.state.ViewportHeight
		if s.state.ViewportOffset < 0 {
			s.state.ViewportOffset = 0
		}
	case DirectionPageDown:
		s.state.Cursor = s.clampIndex(s.state.Cursor + s.state.ViewportHeight)
	case DirectionHome:
		s.state.Cursor = 0
		s.state.ViewportOffset = 0
	case DirectionEnd:
		s.state.Cursor = s.state.MaxIndex
	}
	s.ensureVisible()
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

// VisibleRange returns the half-open range of visible indexes for n items
func (s *Service) VisibleRange(n int) (int, int) {
	start := s.state.ViewportOffset
	if start > n {
		start = n
	}
	end := start + s.state.ViewportHeight
	if end > n {
		end = n
	}
	return start, end
}

func (s *Service) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.state.MaxIndex {
		return s.state.MaxIndex
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
}
