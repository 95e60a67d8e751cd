package blocks

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the metadata shape of a text block.
func (m *TextMetadata) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Alignment, validation.In(AlignLeft, AlignCenter, AlignRight, AlignJustify)),
		validation.Field(&m.ListType, validation.In(ListNone, ListBullet, ListNumbered, ListChecklist)),
	)
}

// Validate checks the metadata shape of an image block.
func (m *ImageMetadata) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Size, validation.In(SizeSmall, SizeMedium, SizeLarge, SizeFull)),
		validation.Field(&m.Alignment, validation.In(AlignLeft, AlignCenter, AlignRight, AlignJustify)),
		validation.Field(&m.BorderRadius, validation.In(RadiusNone, RadiusSmall, RadiusMedium, RadiusLarge, RadiusFull)),
		validation.Field(&m.Width, validation.Min(0)),
		validation.Field(&m.Height, validation.Min(0)),
	)
}

// Validate checks the metadata shape of a video block.
func (m *VideoMetadata) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Platform, validation.In(PlatformYouTube, PlatformVimeo, PlatformLoom, PlatformOther)),
		validation.Field(&m.AspectRatio, validation.In(Ratio16x9, Ratio4x3, Ratio1x1)),
		validation.Field(&m.StartTime, validation.Min(0)),
		validation.Field(&m.EndTime, validation.Min(0)),
	)
}

// Validate checks the metadata shape of a code block.
func (m *CodeMetadata) Validate() error {
	if m.Language != "" && !LanguageSupported(m.Language) {
		return fmt.Errorf("language: %q is not supported", m.Language)
	}
	return nil
}

// Validate checks the metadata shape of a quiz block: every multiple-choice
// question keeps at least two options and at most one correct option.
func (m *QuizMetadata) Validate() error {
	for i, q := range m.Questions {
		if q.Type == QuestionMultipleChoice {
			if len(q.Options) < 2 {
				return fmt.Errorf("questions[%d]: multiple-choice needs at least 2 options", i)
			}
			correct := 0
			for _, o := range q.Options {
				if o.IsCorrect {
					correct++
				}
			}
			if correct > 1 {
				return fmt.Errorf("questions[%d]: more than one option marked correct", i)
			}
		}
		if err := validation.Validate(string(q.Type),
			validation.In(string(QuestionMultipleChoice), string(QuestionTrueFalse), string(QuestionShortAnswer))); err != nil {
			return fmt.Errorf("questions[%d]: type: %w", i, err)
		}
	}
	return nil
}

// Validate checks the metadata shape of a table block: a non-empty
// rectangular grid.
func (m *TableMetadata) Validate() error {
	if len(m.Rows) == 0 {
		return fmt.Errorf("rows: table must have at least one row")
	}
	cols := len(m.Rows[0])
	if cols == 0 {
		return fmt.Errorf("rows: table must have at least one column")
	}
	for i, row := range m.Rows {
		if len(row) != cols {
			return fmt.Errorf("rows[%d]: has %d cells, want %d", i, len(row), cols)
		}
	}
	return validation.Validate(string(m.BorderStyle),
		validation.In("", string(BorderNone), string(BorderSolid), string(BorderDashed)))
}

// Validate checks a single block: known type and a metadata shape matching
// that type. A nil metadata is always legal (types degrade to defaults).
func (b *Block) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("block: id is required")
	}
	if !Known(b.Type) {
		return fmt.Errorf("block %s: unknown type %q", b.ID, b.Type)
	}
	if b.Metadata == nil {
		return nil
	}
	if !metadataMatches(b.Type, b.Metadata) {
		return fmt.Errorf("block %s: metadata shape does not match type %q", b.ID, b.Type)
	}
	if v, ok := b.Metadata.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("block %s: %w", b.ID, err)
		}
	}
	return nil
}

// ValidateDocument checks a full block list: non-empty, unique ids, every
// block valid.
func ValidateDocument(list []Block) error {
	if len(list) == 0 {
		return fmt.Errorf("document: must contain at least one block")
	}
	seen := make(map[string]struct{}, len(list))
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[list[i].ID]; dup {
			return fmt.Errorf("document: duplicate block id %s", list[i].ID)
		}
		seen[list[i].ID] = struct{}{}
	}
	return nil
}

// metadataMatches reports whether meta is the legal shape for block type t.
func metadataMatches(t BlockType, meta Metadata) bool {
	switch meta.(type) {
	case *TextMetadata:
		return Prose(t)
	case *ImageMetadata:
		return t == TypeImage
	case *VideoMetadata:
		return t == TypeVideo
	case *CodeMetadata:
		return t == TypeCode
	case *QuizMetadata:
		return t == TypeQuiz
	case *TableMetadata:
		return t == TypeTable
	default:
		return false
	}
}
