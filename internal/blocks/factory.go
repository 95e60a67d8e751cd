package blocks

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SupportedLanguages is the fixed allow-list for code block highlighting.
var SupportedLanguages = []string{
	"javascript", "typescript", "python", "go", "rust", "java", "c", "cpp",
	"csharp", "php", "ruby", "swift", "kotlin", "sql", "html", "css", "json",
	"yaml", "bash", "markdown", "plaintext",
}

// LanguageSupported reports whether lang is on the code block allow-list.
func LanguageSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// New constructs a block of the given type with a fresh id, current
// timestamps, and type-appropriate default metadata when meta is nil.
func New(t BlockType, content string, meta Metadata) Block {
	now := time.Now().UTC()
	if meta == nil {
		meta = defaultMetadata(t)
	}
	return Block{
		ID:        uuid.NewString(),
		Type:      t,
		Content:   content,
		Metadata:  meta,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultBlocks returns the canonical starting state for a new document:
// a single empty text block.
func DefaultBlocks() []Block {
	return []Block{New(TypeText, "", nil)}
}

// defaultMetadata returns the default metadata shape for a block type, or
// nil for types that carry none.
func defaultMetadata(t BlockType) Metadata {
	switch t {
	case TypeQuiz:
		return &QuizMetadata{Questions: []QuizQuestion{}}
	case TypeTable:
		return defaultTable()
	case TypeCode:
		return &CodeMetadata{Language: "javascript", ShowLineNumbers: true, Theme: "dark"}
	case TypeImage:
		return &ImageMetadata{Src: "", Size: SizeLarge, Alignment: AlignCenter, BorderRadius: RadiusMedium}
	case TypeVideo:
		return &VideoMetadata{URL: "", Platform: PlatformYouTube, AspectRatio: Ratio16x9}
	case TypeText, TypeHeading1, TypeHeading2, TypeHeading3, TypeQuote, TypeDivider:
		return nil
	default:
		return nil
	}
}

// defaultTable builds the seed 3x3 grid with a header row.
func defaultTable() *TableMetadata {
	const cols = 3
	rows := make([][]TableCell, 3)
	for r := range rows {
		rows[r] = make([]TableCell, cols)
		if r == 0 {
			for c := range rows[r] {
				rows[r][c] = TableCell{Content: fmt.Sprintf("Header %d", c+1)}
			}
		}
	}
	return &TableMetadata{
		Rows:              rows,
		HasHeader:         true,
		AlternatingColors: true,
		BorderStyle:       BorderSolid,
	}
}

// NewQuestion constructs a quiz question with a fresh id. Multiple-choice
// questions start with two empty options so the 2-option minimum holds from
// the moment of creation.
func NewQuestion(qt QuestionType) QuizQuestion {
	q := QuizQuestion{
		ID:     uuid.NewString(),
		Type:   qt,
		Points: 1,
	}
	if qt == QuestionMultipleChoice {
		q.Options = []QuizOption{
			{ID: uuid.NewString()},
			{ID: uuid.NewString()},
		}
	}
	return q
}

// NewOption constructs an empty quiz option with a fresh id.
func NewOption() QuizOption {
	return QuizOption{ID: uuid.NewString()}
}
