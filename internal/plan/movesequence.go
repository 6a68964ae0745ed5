package plan

// ContinuousExtruderMoveSequence is an uninterrupted run of ExtruderMove
// children: the print head never retracts or jumps between them. A
// FeatureExtrusion can hold several of these.
type ContinuousExtruderMoveSequence struct {
	childList
}

func NewContinuousExtruderMoveSequence() *ContinuousExtruderMoveSequence {
	return &ContinuousExtruderMoveSequence{}
}

func (s *ContinuousExtruderMoveSequence) Kind() Kind { return KindMoveSequence }

func (s *ContinuousExtruderMoveSequence) AppendChild(child Node) error { return s.appendChild(s, child) }
func (s *ContinuousExtruderMoveSequence) RemoveChild(child Node) error { return s.removeChild(child) }

// Moves returns the sequence's children narrowed to ExtruderMove, in order.
func (s *ContinuousExtruderMoveSequence) Moves() []ExtruderMove {
	out := make([]ExtruderMove, 0, len(s.children))
	for _, c := range s.children {
		if m, ok := c.(ExtruderMove); ok {
			out = append(out, m)
		}
	}
	return out
}
