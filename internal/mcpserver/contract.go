package mcpserver

// DocumentFormatContract describes the canonical block document format that
// LLM consumers should follow when creating or updating documents.
const DocumentFormatContract = `# Ansuz Document Format Contract

Every document stored in Ansuz is a JSON array of typed blocks.

## Structure

` + "```" + `json
[
  {
    "id": "a3f1c2d4-0000-0000-0000-000000000000",
    "type": "heading1",
    "content": "Lesson title",
    "metadata": {"alignment": "left"},
    "createdAt": "2025-01-15T10:00:00Z",
    "updatedAt": "2025-01-15T10:00:00Z"
  },
  {
    "id": "b7e2d3c4-0000-0000-0000-000000000001",
    "type": "text",
    "content": "Body text with <b>inline HTML</b> formatting.",
    "metadata": {"alignment": "left", "listType": "none"}
  }
]
` + "```" + `

## Rules

1. **Every block needs a unique ` + "`" + `id` + "`" + `.** Use a UUID string; ids must not repeat
   within a document.
2. **` + "`" + `type` + "`" + ` is one of:** text, heading1, heading2, heading3, image, video,
   code, divider, quote, quiz, table.
3. **` + "`" + `content` + "`" + ` carries the block text.** For text, headings, and quotes this is
   HTML-formatted rich text; for code blocks it is raw source; for image, video,
   divider, quiz, and table blocks it is usually empty (the payload lives in metadata).
4. **` + "`" + `metadata` + "`" + ` is shaped by the block type:**
   - text/heading/quote: ` + "`" + `{"alignment": "left|center|right", "listType": "none|bullet|numbered"}` + "`" + `
   - image: ` + "`" + `{"src", "alt", "caption", "size": "small|medium|large|full", "alignment", "borderRadius"}` + "`" + `
   - video: ` + "`" + `{"url", "platform": "youtube|vimeo", "aspectRatio": "16:9|4:3|1:1", "autoplay", "startTime", "endTime"}` + "`" + `
   - code: ` + "`" + `{"language", "filename", "showLineNumbers", "theme": "dark|light"}` + "`" + `
   - quiz: ` + "`" + `{"questions": [...], "showResults", "randomizeOptions"}` + "`" + `
   - table: ` + "`" + `{"rows": [[...]], "hasHeader", "alternatingColors", "borderStyle"}` + "`" + `
5. **File paths** end with ` + "`" + `.json` + "`" + ` and use forward slashes.
6. **The first heading1 block** becomes the document title in lists and search.
7. **Quiz questions** need at least two options when their ` + "`" + `type` + "`" + ` is
   ` + "`" + `multiple-choice` + "`" + `; ` + "`" + `short-answer` + "`" + ` questions match on ` + "`" + `correctAnswer` + "`" + ` text.
8. **Table rows** must be rectangular: every row has the same number of cells.

## Assets & Images

- Upload assets via the ` + "`" + `upload_asset` + "`" + ` tool. It returns an ` + "`" + `imageBlock` + "`" + ` field
  ready to insert into the document's block array.
- Assets are stored in the shared ` + "`" + `attachments/` + "`" + ` directory (flat, no sub-folders).
- Reference in image metadata using the absolute path: ` + "`" + `"src": "/attachments/filename.png"` + "`" + `
- Supported formats: png, jpg, jpeg, gif, webp, svg, pdf.
- Do **not** use relative paths like ` + "`" + `./attachments/...` + "`" + ` — always use ` + "`" + `/attachments/filename` + "`" + `.

## Example

` + "```" + `json
[
  {"id": "h1", "type": "heading1", "content": "Photosynthesis"},
  {"id": "t1", "type": "text", "content": "Plants convert light into energy."},
  {"id": "i1", "type": "image", "content": "",
   "metadata": {"src": "/attachments/leaf.png", "alt": "Leaf cross-section", "size": "medium"}},
  {"id": "q1", "type": "quiz", "content": "",
   "metadata": {"questions": [{"id": "qq1", "question": "Where does it happen?",
     "type": "multiple-choice",
     "options": [{"id": "o1", "text": "Chloroplast", "isCorrect": true},
                 {"id": "o2", "text": "Mitochondria", "isCorrect": false}]}]}}
]
` + "```" + `
`
