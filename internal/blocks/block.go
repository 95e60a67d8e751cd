// Package blocks defines the content block document model: a document is an
// ordered list of typed blocks, each carrying a string content payload and a
// per-type metadata shape.
package blocks

import (
	"encoding/json"
	"fmt"
	"time"
)

// BlockType discriminates the closed set of block variants.
type BlockType string

// Known block types.
const (
	TypeText     BlockType = "text"
	TypeHeading1 BlockType = "heading1"
	TypeHeading2 BlockType = "heading2"
	TypeHeading3 BlockType = "heading3"
	TypeImage    BlockType = "image"
	TypeVideo    BlockType = "video"
	TypeCode     BlockType = "code"
	TypeDivider  BlockType = "divider"
	TypeQuote    BlockType = "quote"
	TypeQuiz     BlockType = "quiz"
	TypeTable    BlockType = "table"
)

// AllTypes lists every known block type in menu order.
var AllTypes = []BlockType{
	TypeText, TypeHeading1, TypeHeading2, TypeHeading3,
	TypeImage, TypeVideo, TypeCode, TypeDivider,
	TypeQuote, TypeQuiz, TypeTable,
}

// Known reports whether t is a recognised block type.
func Known(t BlockType) bool {
	switch t {
	case TypeText, TypeHeading1, TypeHeading2, TypeHeading3,
		TypeImage, TypeVideo, TypeCode, TypeDivider,
		TypeQuote, TypeQuiz, TypeTable:
		return true
	}
	return false
}

// Prose reports whether t belongs to the prose family: the only types that
// may be converted into one another in place.
func Prose(t BlockType) bool {
	switch t {
	case TypeText, TypeHeading1, TypeHeading2, TypeHeading3, TypeQuote:
		return true
	}
	return false
}

// Textual reports whether the block's Content field carries user-readable
// text and therefore contributes to the plain-text projection.
func Textual(t BlockType) bool {
	return Prose(t) || t == TypeCode
}

// Block is the atomic unit of a document.
type Block struct {
	ID        string    `json:"id"`
	Type      BlockType `json:"type"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch bumps the block's UpdatedAt to now.
func (b *Block) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy of the block (metadata included).
func (b Block) Clone() Block {
	out := b
	if b.Metadata != nil {
		out.Metadata = b.Metadata.clone()
	}
	return out
}

// Metadata is the sealed union of per-type metadata shapes. A block's Type
// determines which concrete shape is legal; consumers switch exhaustively on
// the block type rather than type-asserting blindly.
type Metadata interface {
	isMetadata()
	clone() Metadata
}

// Alignment of text or media within a block.
type Alignment string

// Alignments.
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// ListType of a text block.
type ListType string

// List types.
const (
	ListNone      ListType = "none"
	ListBullet    ListType = "bullet"
	ListNumbered  ListType = "numbered"
	ListChecklist ListType = "checklist"
)

// TextMetadata styles a text block.
type TextMetadata struct {
	Alignment Alignment `json:"alignment,omitempty"`
	ListType  ListType  `json:"listType,omitempty"`
}

// ImageSize presets for an image block.
type ImageSize string

// Image sizes.
const (
	SizeSmall  ImageSize = "small"
	SizeMedium ImageSize = "medium"
	SizeLarge  ImageSize = "large"
	SizeFull   ImageSize = "full"
)

// BorderRadius presets for an image block.
type BorderRadius string

// Border radii.
const (
	RadiusNone   BorderRadius = "none"
	RadiusSmall  BorderRadius = "small"
	RadiusMedium BorderRadius = "medium"
	RadiusLarge  BorderRadius = "large"
	RadiusFull   BorderRadius = "full"
)

// ImageMetadata describes an image block. Src is a data URL or an
// /attachments path; empty Src means no image has been chosen yet.
type ImageMetadata struct {
	Src          string       `json:"src"`
	Alt          string       `json:"alt,omitempty"`
	Caption      string       `json:"caption,omitempty"`
	Size         ImageSize    `json:"size,omitempty"`
	Alignment    Alignment    `json:"alignment,omitempty"`
	BorderRadius BorderRadius `json:"borderRadius,omitempty"`
	Width        int          `json:"width,omitempty"`
	Height       int          `json:"height,omitempty"`
}

// Platform identifies the video host derived from the pasted URL.
type Platform string

// Video platforms.
const (
	PlatformYouTube Platform = "youtube"
	PlatformVimeo   Platform = "vimeo"
	PlatformLoom    Platform = "loom"
	PlatformOther   Platform = "other"
)

// AspectRatio of the video frame.
type AspectRatio string

// Aspect ratios.
const (
	Ratio16x9 AspectRatio = "16:9"
	Ratio4x3  AspectRatio = "4:3"
	Ratio1x1  AspectRatio = "1:1"
)

// VideoMetadata describes a video embed block. URL holds the original pasted
// URL; the block's Content holds the canonical embed URL.
type VideoMetadata struct {
	URL         string      `json:"url"`
	Platform    Platform    `json:"platform,omitempty"`
	AspectRatio AspectRatio `json:"aspectRatio,omitempty"`
	Autoplay    bool        `json:"autoplay,omitempty"`
	StartTime   int         `json:"startTime,omitempty"`
	EndTime     int         `json:"endTime,omitempty"`
}

// CodeMetadata describes a code block.
type CodeMetadata struct {
	Language        string `json:"language"`
	Filename        string `json:"filename,omitempty"`
	ShowLineNumbers bool   `json:"showLineNumbers"`
	Theme           string `json:"theme,omitempty"`
}

// QuestionType of a quiz question.
type QuestionType string

// Question types.
const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

// QuizOption is one selectable answer of a multiple-choice question.
type QuizOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuizQuestion is one question inside a quiz block.
type QuizQuestion struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []QuizOption `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
	Points        int          `json:"points,omitempty"`
}

// QuizMetadata carries the full quiz payload; the block's Content is unused.
type QuizMetadata struct {
	Questions        []QuizQuestion `json:"questions"`
	ShowResults      bool           `json:"showResults"`
	RandomizeOptions bool           `json:"randomizeOptions"`
}

// BorderStyle of a table.
type BorderStyle string

// Border styles.
const (
	BorderNone   BorderStyle = "none"
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
)

// TableCell is one cell of a table row.
type TableCell struct {
	Content         string    `json:"content"`
	RowSpan         int       `json:"rowSpan,omitempty"`
	ColSpan         int       `json:"colSpan,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	Alignment       Alignment `json:"alignment,omitempty"`
}

// TableMetadata carries the rectangular grid; the block's Content is unused.
// Invariant: every row has the same number of cells.
type TableMetadata struct {
	Rows              [][]TableCell `json:"rows"`
	HasHeader         bool          `json:"hasHeader"`
	AlternatingColors bool          `json:"alternatingColors"`
	BorderStyle       BorderStyle   `json:"borderStyle,omitempty"`
}

func (*TextMetadata) isMetadata()  {}
func (*ImageMetadata) isMetadata() {}
func (*VideoMetadata) isMetadata() {}
func (*CodeMetadata) isMetadata()  {}
func (*QuizMetadata) isMetadata()  {}
func (*TableMetadata) isMetadata() {}

func (m *TextMetadata) clone() Metadata  { c := *m; return &c }
func (m *ImageMetadata) clone() Metadata { c := *m; return &c }
func (m *VideoMetadata) clone() Metadata { c := *m; return &c }
func (m *CodeMetadata) clone() Metadata  { c := *m; return &c }

func (m *QuizMetadata) clone() Metadata {
	c := *m
	c.Questions = make([]QuizQuestion, len(m.Questions))
	for i, q := range m.Questions {
		cq := q
		cq.Options = append([]QuizOption(nil), q.Options...)
		c.Questions[i] = cq
	}
	return &c
}

func (m *TableMetadata) clone() Metadata {
	c := *m
	c.Rows = make([][]TableCell, len(m.Rows))
	for i, row := range m.Rows {
		c.Rows[i] = append([]TableCell(nil), row...)
	}
	return &c
}

// blockEnvelope is the wire form of a Block with metadata left raw so it can
// be decoded into the shape selected by the type discriminant.
type blockEnvelope struct {
	ID        string          `json:"id"`
	Type      BlockType       `json:"type"`
	Content   string          `json:"content"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// MarshalJSON encodes the block with its concrete metadata shape.
func (b Block) MarshalJSON() ([]byte, error) {
	env := blockEnvelope{
		ID:        b.ID,
		Type:      b.Type,
		Content:   b.Content,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Metadata != nil {
		raw, err := json.Marshal(b.Metadata)
		if err != nil {
			return nil, fmt.Errorf("blocks: marshal %s metadata: %w", b.Type, err)
		}
		env.Metadata = raw
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes a block, selecting the metadata shape from the type
// discriminant. Metadata of an unknown block type is dropped rather than
// rejected so persisted documents can outlive the type set of one build.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	b.ID = env.ID
	b.Type = env.Type
	b.Content = env.Content
	b.CreatedAt = env.CreatedAt
	b.UpdatedAt = env.UpdatedAt
	b.Metadata = nil

	if len(env.Metadata) == 0 || string(env.Metadata) == "null" {
		return nil
	}

	meta, err := decodeMetadata(env.Type, env.Metadata)
	if err != nil {
		return err
	}
	b.Metadata = meta
	return nil
}

// decodeMetadata decodes raw metadata into the shape for the given type.
// Types without a metadata shape (and unknown types) yield nil.
func decodeMetadata(t BlockType, raw json.RawMessage) (Metadata, error) {
	unmarshal := func(m Metadata) (Metadata, error) {
		if err := json.Unmarshal(raw, m); err != nil {
			return nil, fmt.Errorf("blocks: decode %s metadata: %w", t, err)
		}
		return m, nil
	}
	switch t {
	case TypeText, TypeHeading1, TypeHeading2, TypeHeading3, TypeQuote:
		return unmarshal(&TextMetadata{})
	case TypeImage:
		return unmarshal(&ImageMetadata{})
	case TypeVideo:
		return unmarshal(&VideoMetadata{})
	case TypeCode:
		return unmarshal(&CodeMetadata{})
	case TypeQuiz:
		return unmarshal(&QuizMetadata{})
	case TypeTable:
		return unmarshal(&TableMetadata{})
	case TypeDivider:
		return nil, nil
	default:
		return nil, nil
	}
}
