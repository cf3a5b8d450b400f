package script

import "scriptparse/internal/language"

// State is the segmenter's position within the current block.
type State int

const (
	// CollectingMeta accepts metadata lines onto the current block. It is the
	// initial state and the state after every flush.
	CollectingMeta State = iota
	// CollectingContent is entered on the first content line of a block; the
	// next metadata line flushes the block.
	CollectingContent
)

func (s State) String() string {
	switch s {
	case CollectingMeta:
		return "collecting_meta"
	case CollectingContent:
		return "collecting_content"
	default:
		return "unknown"
	}
}

// Script is the result of segmentation.
type Script struct {
	// Blocks are in flush order; the last one is whatever was open at end of input.
	Blocks []Block
	// Languages holds every distinct code seen on a content line, in order of
	// first appearance.
	Languages []language.Code
}

// Segmenter folds classified lines into blocks. The zero value is not usable;
// call NewSegmenter. A Segmenter belongs to a single parse and is not safe for
// concurrent use.
type Segmenter struct {
	state     State
	current   *Block
	blocks    []Block
	languages []language.Code
	seen      map[language.Code]struct{}
}

// NewSegmenter returns a segmenter in CollectingMeta with an empty open block.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		state:   CollectingMeta,
		current: newBlock(),
		seen:    map[language.Code]struct{}{},
	}
}

// State returns the current state.
func (s *Segmenter) State() State { return s.state }

// Step consumes one trimmed, non-empty line and its classification.
func (s *Segmenter) Step(line string, class Classification) {
	if class.IsMeta() {
		if s.state == CollectingContent {
			s.flush()
		}
		s.current.AppendMeta(line)
		s.state = CollectingMeta
		return
	}

	s.current.Merge(class.Code, line)
	if _, ok := s.seen[class.Code]; !ok {
		s.seen[class.Code] = struct{}{}
		s.languages = append(s.languages, class.Code)
	}
	s.state = CollectingContent
}

// Finish emits the open block unconditionally and returns the result. The
// segmenter must not be stepped afterwards.
func (s *Segmenter) Finish() Script {
	s.flush()
	s.current = nil
	blocks := s.blocks
	if blocks == nil {
		blocks = []Block{}
	}
	languages := s.languages
	if languages == nil {
		languages = []language.Code{}
	}
	return Script{Blocks: blocks, Languages: languages}
}

func (s *Segmenter) flush() {
	s.blocks = append(s.blocks, *s.current)
	s.current = newBlock()
}
