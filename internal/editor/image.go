package editor

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/starford/ansuz/internal/blocks"
)

// imageMIMEs maps accepted upload extensions to their MIME type.
var imageMIMEs = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// ImageEditor edits an image block.
type ImageEditor struct {
	ed *Editor
	id string
}

// Image returns an image editor for the given block.
func (e *Editor) Image(id string) (*ImageEditor, error) {
	b, err := e.Block(id)
	if err != nil {
		return nil, err
	}
	if b.Type != blocks.TypeImage {
		return nil, fmt.Errorf("editor: block %s is %s, not an image block", id, b.Type)
	}
	return &ImageEditor{ed: e, id: id}, nil
}

// HasSource reports whether an image source has been chosen yet; before that
// the block shows the upload / URL-embed chooser.
func (i *ImageEditor) HasSource() bool {
	return i.meta().Src != ""
}

// Upload stores a local file as a self-contained data URL in the block's
// metadata. The extension determines the MIME type.
func (i *ImageEditor) Upload(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	mime, ok := imageMIMEs[ext]
	if !ok {
		return fmt.Errorf("editor: unsupported image type %q", ext)
	}
	src := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return i.updateMeta(func(m *blocks.ImageMetadata) { m.Src = src })
}

// SetSourceURL embeds an image by URL.
func (i *ImageEditor) SetSourceURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("editor: image URL is empty")
	}
	return i.updateMeta(func(m *blocks.ImageMetadata) { m.Src = url })
}

// SetSize changes the display size preset.
func (i *ImageEditor) SetSize(s blocks.ImageSize) error {
	return i.updateMeta(func(m *blocks.ImageMetadata) { m.Size = s })
}

// SetAlignment changes the image alignment.
func (i *ImageEditor) SetAlignment(a blocks.Alignment) error {
	return i.updateMeta(func(m *blocks.ImageMetadata) { m.Alignment = a })
}

// SetBorderRadius changes the corner radius preset.
func (i *ImageEditor) SetBorderRadius(r blocks.BorderRadius) error {
	return i.updateMeta(func(m *blocks.ImageMetadata) { m.BorderRadius = r })
}

// SetAlt sets the alternative text.
func (i *ImageEditor) SetAlt(alt string) error {
	return i.updateMeta(func(m *blocks.ImageMetadata) { m.Alt = alt })
}

// SetCaption sets the caption shown under the image.
func (i *ImageEditor) SetCaption(caption string) error {
	return i.updateMeta(func(m *blocks.ImageMetadata) { m.Caption = caption })
}

func (i *ImageEditor) meta() *blocks.ImageMetadata {
	b, err := i.ed.Block(i.id)
	if err == nil {
		if m, ok := b.Metadata.(*blocks.ImageMetadata); ok {
			return m
		}
	}
	return &blocks.ImageMetadata{Size: blocks.SizeLarge, Alignment: blocks.AlignCenter, BorderRadius: blocks.RadiusMedium}
}

func (i *ImageEditor) updateMeta(mutate func(*blocks.ImageMetadata)) error {
	b, err := i.ed.Block(i.id)
	if err != nil {
		return err
	}
	meta, _ := b.Metadata.(*blocks.ImageMetadata)
	if meta == nil {
		meta = &blocks.ImageMetadata{Size: blocks.SizeLarge, Alignment: blocks.AlignCenter, BorderRadius: blocks.RadiusMedium}
	}
	mutate(meta)
	if err := meta.Validate(); err != nil {
		return err
	}
	return i.ed.UpdateContent(i.id, b.Content, meta)
}
