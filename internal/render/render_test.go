package render

import (
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/blocks"
)

func TestRenderProseSanitizes(t *testing.T) {
	r := New()
	b := blocks.New(blocks.TypeText, `<b>hi</b><script>alert(1)</script>`, nil)

	out, err := r.Block(b)
	if err != nil {
		t.Fatalf("Block: %v", err)
	}
	if !strings.Contains(out, "<b>hi</b>") {
		t.Errorf("kept markup missing: %q", out)
	}
	if strings.Contains(out, "script") {
		t.Errorf("script not stripped: %q", out)
	}
	if !strings.HasPrefix(out, "<p") {
		t.Errorf("text block must render as a paragraph: %q", out)
	}
}

func TestRenderHeadingsAndQuote(t *testing.T) {
	r := New()
	cases := []struct {
		typ blocks.BlockType
		tag string
	}{
		{blocks.TypeHeading1, "<h1>"},
		{blocks.TypeHeading2, "<h2>"},
		{blocks.TypeHeading3, "<h3>"},
		{blocks.TypeQuote, "<blockquote>"},
	}
	for _, tc := range cases {
		out, err := r.Block(blocks.New(tc.typ, "title", nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.typ, err)
		}
		if !strings.HasPrefix(out, tc.tag) {
			t.Errorf("%s rendered as %q, want %s", tc.typ, out, tc.tag)
		}
	}
}

func TestRenderAlignmentAndList(t *testing.T) {
	r := New()
	b := blocks.New(blocks.TypeText, "item", &blocks.TextMetadata{
		Alignment: blocks.AlignCenter,
		ListType:  blocks.ListBullet,
	})
	out, err := r.Block(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "text-align:center") {
		t.Errorf("alignment missing: %q", out)
	}
	if !strings.HasPrefix(out, "<ul><li>") {
		t.Errorf("bullet list wrapper missing: %q", out)
	}
}

func TestRenderCodeHighlights(t *testing.T) {
	r := New()
	b := blocks.New(blocks.TypeCode, "package main", &blocks.CodeMetadata{
		Language: "go",
		Theme:    "dark",
		Filename: "main.go",
	})
	out, err := r.Block(b)
	if err != nil {
		t.Fatalf("Block: %v", err)
	}
	if !strings.Contains(out, "<pre") {
		t.Errorf("highlighted output missing <pre>: %q", out)
	}
	if !strings.Contains(out, "main.go") {
		t.Errorf("filename header missing: %q", out)
	}
}

func TestRenderCodeUnknownLanguageFallsBack(t *testing.T) {
	r := New()
	b := blocks.New(blocks.TypeCode, "??", &blocks.CodeMetadata{Language: "nosuchlang"})
	out, err := r.Block(b)
	if err != nil {
		t.Fatalf("fallback lexer must not fail: %v", err)
	}
	if !strings.Contains(out, "<pre") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderImage(t *testing.T) {
	r := New()
	b := blocks.New(blocks.TypeImage, "", &blocks.ImageMetadata{
		Src:     "https://example.com/x.png",
		Alt:     `say "cheese"`,
		Caption: "a photo",
		Size:    blocks.SizeMedium,
	})
	out, err := r.Block(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `src="https://example.com/x.png"`) {
		t.Errorf("src missing: %q", out)
	}
	if !strings.Contains(out, "&#34;cheese&#34;") {
		t.Errorf("alt not escaped: %q", out)
	}
	if !strings.Contains(out, "<figcaption>a photo</figcaption>") {
		t.Errorf("caption missing: %q", out)
	}
	if !strings.Contains(out, "size-medium") {
		t.Errorf("size class missing: %q", out)
	}
}

func TestRenderSourcelessImageIsSkipped(t *testing.T) {
	r := New()
	out, err := r.Block(blocks.New(blocks.TypeImage, "", nil))
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("out = %q, want empty", out)
	}
}

func TestRenderVideoIframe(t *testing.T) {
	r := New()
	b := blocks.New(blocks.TypeVideo, "https://www.youtube.com/embed/dQw4w9WgXcQ", &blocks.VideoMetadata{
		URL:         "https://youtu.be/dQw4w9WgXcQ",
		Platform:    blocks.PlatformYouTube,
		AspectRatio: blocks.Ratio4x3,
	})
	out, err := r.Block(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ"`) {
		t.Errorf("iframe missing: %q", out)
	}
	if !strings.Contains(out, `data-aspect="4:3"`) {
		t.Errorf("aspect ratio missing: %q", out)
	}
}

func TestRenderQuizHidesAnswers(t *testing.T) {
	r := New()
	b := blocks.New(blocks.TypeQuiz, "", &blocks.QuizMetadata{
		Questions: []blocks.QuizQuestion{{
			ID:       "q1",
			Question: "2+2?",
			Type:     blocks.QuestionMultipleChoice,
			Options: []blocks.QuizOption{
				{ID: "o1", Text: "4", IsCorrect: true},
				{ID: "o2", Text: "5"},
			},
			Explanation: "the secret explanation",
		}},
	})
	out, err := r.Block(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2+2?") || !strings.Contains(out, "<li data-id=\"o1\">4</li>") {
		t.Errorf("question/options missing: %q", out)
	}
	if strings.Contains(out, "isCorrect") || strings.Contains(out, "secret explanation") {
		t.Errorf("answer data leaked: %q", out)
	}
}

func TestRenderTable(t *testing.T) {
	r := New()
	b := blocks.New(blocks.TypeTable, "", &blocks.TableMetadata{
		HasHeader: true,
		Rows: [][]blocks.TableCell{
			{{Content: "Name"}, {Content: "Role"}},
			{{Content: "ada"}, {Content: "engineer", Alignment: blocks.AlignRight}},
		},
	})
	out, err := r.Block(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<thead><tr><th>Name</th><th>Role</th></tr></thead>") {
		t.Errorf("header row missing: %q", out)
	}
	if !strings.Contains(out, "text-align:right") {
		t.Errorf("cell alignment missing: %q", out)
	}
	if !strings.Contains(out, "<td>ada</td>") {
		t.Errorf("body cell missing: %q", out)
	}
}

func TestRenderDocumentSkipsEmptyFragments(t *testing.T) {
	r := New()
	list := []blocks.Block{
		blocks.New(blocks.TypeHeading1, "Doc", nil),
		blocks.New(blocks.TypeImage, "", nil), // no source yet
		blocks.New(blocks.TypeDivider, "", nil),
	}
	out, err := r.Document(list)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("lines = %d (%q), want 2", len(lines), out)
	}
	if !strings.Contains(out, "<hr>") {
		t.Errorf("divider missing: %q", out)
	}
}
