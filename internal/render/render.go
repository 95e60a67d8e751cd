// Package render converts block documents to sanitized, self-contained HTML.
//
// Prose content is user-authored rich text and passes through a bluemonday
// policy; all structural markup (figures, iframes, tables) is built here with
// escaped attribute values, so the output is safe to serve as-is.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"

	"github.com/starford/ansuz/internal/blocks"
)

// themeStyles maps the editor's theme names onto chroma styles.
var themeStyles = map[string]string{
	"dark":  "monokai",
	"light": "github",
}

// Renderer renders block documents to HTML.
type Renderer struct {
	policy *bluemonday.Policy
}

// New creates a renderer with a user-generated-content sanitation policy that
// additionally admits data URLs for inline images.
func New() *Renderer {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	return &Renderer{policy: p}
}

// Document renders the whole block list, one element per block, joined by
// newlines. Blocks that render to nothing (an image without a source, an
// unresolved video) are skipped.
func (r *Renderer) Document(list []blocks.Block) (string, error) {
	var sb strings.Builder
	for _, b := range list {
		frag, err := r.Block(b)
		if err != nil {
			return "", err
		}
		if frag == "" {
			continue
		}
		sb.WriteString(frag)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// Block renders a single block to an HTML fragment.
func (r *Renderer) Block(b blocks.Block) (string, error) {
	switch b.Type {
	case blocks.TypeText:
		return r.prose(b, "p"), nil
	case blocks.TypeHeading1:
		return r.prose(b, "h1"), nil
	case blocks.TypeHeading2:
		return r.prose(b, "h2"), nil
	case blocks.TypeHeading3:
		return r.prose(b, "h3"), nil
	case blocks.TypeQuote:
		return r.prose(b, "blockquote"), nil
	case blocks.TypeDivider:
		return "<hr>", nil
	case blocks.TypeCode:
		return r.code(b)
	case blocks.TypeImage:
		return r.image(b), nil
	case blocks.TypeVideo:
		return r.video(b), nil
	case blocks.TypeQuiz:
		return r.quiz(b), nil
	case blocks.TypeTable:
		return r.table(b), nil
	default:
		return "", fmt.Errorf("render: unknown block type %q", b.Type)
	}
}

func (r *Renderer) prose(b blocks.Block, tag string) string {
	content := r.policy.Sanitize(b.Content)
	attrs := ""
	if m, ok := b.Metadata.(*blocks.TextMetadata); ok && m.Alignment != "" && m.Alignment != blocks.AlignLeft {
		attrs = fmt.Sprintf(` style="text-align:%s"`, html.EscapeString(string(m.Alignment)))
	}
	out := fmt.Sprintf("<%s%s>%s</%s>", tag, attrs, content, tag)
	if m, ok := b.Metadata.(*blocks.TextMetadata); ok {
		switch m.ListType {
		case blocks.ListBullet, blocks.ListChecklist:
			out = "<ul><li>" + out + "</li></ul>"
		case blocks.ListNumbered:
			out = "<ol><li>" + out + "</li></ol>"
		}
	}
	return out
}

func (r *Renderer) code(b blocks.Block) (string, error) {
	meta, _ := b.Metadata.(*blocks.CodeMetadata)
	if meta == nil {
		meta = &blocks.CodeMetadata{}
	}

	lexer := lexers.Get(meta.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	styleName := themeStyles[meta.Theme]
	if styleName == "" {
		styleName = meta.Theme
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(
		chromahtml.WithLineNumbers(meta.ShowLineNumbers),
		chromahtml.TabWidth(2),
	)
	it, err := lexer.Tokenise(nil, b.Content)
	if err != nil {
		return "", fmt.Errorf("render: tokenise code block %s: %w", b.ID, err)
	}
	var sb strings.Builder
	sb.WriteString(`<div class="code-block">`)
	if meta.Filename != "" {
		sb.WriteString(`<div class="code-filename">` + html.EscapeString(meta.Filename) + `</div>`)
	}
	if err := formatter.Format(&sb, style, it); err != nil {
		return "", fmt.Errorf("render: format code block %s: %w", b.ID, err)
	}
	sb.WriteString(`</div>`)
	return sb.String(), nil
}

func (r *Renderer) image(b blocks.Block) string {
	meta, _ := b.Metadata.(*blocks.ImageMetadata)
	if meta == nil || meta.Src == "" {
		return ""
	}
	var sb strings.Builder
	class := "image-block"
	if meta.Size != "" {
		class += " size-" + string(meta.Size)
	}
	if meta.Alignment != "" {
		class += " align-" + string(meta.Alignment)
	}
	if meta.BorderRadius != "" {
		class += " radius-" + string(meta.BorderRadius)
	}
	sb.WriteString(fmt.Sprintf(`<figure class="%s">`, html.EscapeString(class)))
	sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s">`,
		html.EscapeString(meta.Src), html.EscapeString(meta.Alt)))
	if meta.Caption != "" {
		sb.WriteString(`<figcaption>` + html.EscapeString(meta.Caption) + `</figcaption>`)
	}
	sb.WriteString(`</figure>`)
	return sb.String()
}

func (r *Renderer) video(b blocks.Block) string {
	if b.Content == "" {
		return ""
	}
	meta, _ := b.Metadata.(*blocks.VideoMetadata)
	ratio := blocks.Ratio16x9
	if meta != nil && meta.AspectRatio != "" {
		ratio = meta.AspectRatio
	}
	return fmt.Sprintf(
		`<div class="video-block" data-aspect="%s"><iframe src="%s" allowfullscreen loading="lazy"></iframe></div>`,
		html.EscapeString(string(ratio)), html.EscapeString(b.Content))
}

// quiz renders the answering view: prompts and choices only. Correct answers
// and explanations stay out of the markup so the page does not leak them.
func (r *Renderer) quiz(b blocks.Block) string {
	meta, _ := b.Metadata.(*blocks.QuizMetadata)
	if meta == nil || len(meta.Questions) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<section class="quiz-block">`)
	for _, q := range meta.Questions {
		sb.WriteString(fmt.Sprintf(`<div class="quiz-question" data-id="%s" data-type="%s">`,
			html.EscapeString(q.ID), html.EscapeString(string(q.Type))))
		sb.WriteString(`<p>` + html.EscapeString(q.Question) + `</p>`)
		switch q.Type {
		case blocks.QuestionMultipleChoice:
			sb.WriteString(`<ul>`)
			for _, o := range q.Options {
				sb.WriteString(fmt.Sprintf(`<li data-id="%s">%s</li>`,
					html.EscapeString(o.ID), html.EscapeString(o.Text)))
			}
			sb.WriteString(`</ul>`)
		case blocks.QuestionTrueFalse:
			sb.WriteString(`<ul><li>True</li><li>False</li></ul>`)
		case blocks.QuestionShortAnswer:
			sb.WriteString(`<input type="text">`)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</section>`)
	return sb.String()
}

func (r *Renderer) table(b blocks.Block) string {
	meta, _ := b.Metadata.(*blocks.TableMetadata)
	if meta == nil || len(meta.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	class := "table-block"
	if meta.BorderStyle != "" {
		class += " border-" + string(meta.BorderStyle)
	}
	if meta.AlternatingColors {
		class += " striped"
	}
	sb.WriteString(fmt.Sprintf(`<table class="%s">`, html.EscapeString(class)))
	body := meta.Rows
	if meta.HasHeader {
		sb.WriteString(`<thead><tr>`)
		for _, cell := range meta.Rows[0] {
			sb.WriteString(r.tableCell(cell, "th"))
		}
		sb.WriteString(`</tr></thead>`)
		body = meta.Rows[1:]
	}
	sb.WriteString(`<tbody>`)
	for _, row := range body {
		sb.WriteString(`<tr>`)
		for _, cell := range row {
			sb.WriteString(r.tableCell(cell, "td"))
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody></table>`)
	return sb.String()
}

func (r *Renderer) tableCell(cell blocks.TableCell, tag string) string {
	var attrs strings.Builder
	if cell.ColSpan > 1 {
		fmt.Fprintf(&attrs, ` colspan="%d"`, cell.ColSpan)
	}
	if cell.RowSpan > 1 {
		fmt.Fprintf(&attrs, ` rowspan="%d"`, cell.RowSpan)
	}
	var style []string
	if cell.BackgroundColor != "" {
		style = append(style, "background-color:"+cell.BackgroundColor)
	}
	if cell.Alignment != "" {
		style = append(style, "text-align:"+string(cell.Alignment))
	}
	if len(style) > 0 {
		fmt.Fprintf(&attrs, ` style="%s"`, html.EscapeString(strings.Join(style, ";")))
	}
	return fmt.Sprintf("<%s%s>%s</%s>", tag, attrs.String(), r.policy.Sanitize(cell.Content), tag)
}
