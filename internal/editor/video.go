package editor

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/starford/ansuz/internal/blocks"
)

// ErrUnsupportedURL is returned when a pasted video URL matches none of the
// supported platforms. The block is left untouched.
var ErrUnsupportedURL = errors.New("editor: unsupported video URL")

var (
	youtubeRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtube\.com/embed/|youtu\.be/)([A-Za-z0-9_-]{11})`)
	vimeoRe   = regexp.MustCompile(`vimeo\.com/(\d+)`)
	loomRe    = regexp.MustCompile(`loom\.com/(?:share|embed)/([A-Za-z0-9]+)`)
)

// ResolveEmbed classifies a pasted video URL and returns the platform plus
// the canonical embed URL. Unrecognised URLs yield ErrUnsupportedURL.
func ResolveEmbed(raw string) (blocks.Platform, string, error) {
	if m := youtubeRe.FindStringSubmatch(raw); m != nil {
		return blocks.PlatformYouTube, "https://www.youtube.com/embed/" + m[1], nil
	}
	if m := vimeoRe.FindStringSubmatch(raw); m != nil {
		return blocks.PlatformVimeo, "https://player.vimeo.com/video/" + m[1], nil
	}
	if m := loomRe.FindStringSubmatch(raw); m != nil {
		return blocks.PlatformLoom, "https://www.loom.com/embed/" + m[1], nil
	}
	return "", "", ErrUnsupportedURL
}

// VideoEditor edits a video block.
type VideoEditor struct {
	ed *Editor
	id string
}

// Video returns a video editor for the given block.
func (e *Editor) Video(id string) (*VideoEditor, error) {
	b, err := e.Block(id)
	if err != nil {
		return nil, err
	}
	if b.Type != blocks.TypeVideo {
		return nil, fmt.Errorf("editor: block %s is %s, not a video block", id, b.Type)
	}
	return &VideoEditor{ed: e, id: id}, nil
}

// SetURL classifies the pasted URL and, on a successful match, stores the
// canonical embed URL as the block content and the original URL plus derived
// platform in metadata. On ErrUnsupportedURL nothing changes.
func (v *VideoEditor) SetURL(raw string) error {
	platform, embed, err := ResolveEmbed(raw)
	if err != nil {
		return err
	}
	meta := v.meta()
	meta.URL = raw
	meta.Platform = platform
	return v.ed.UpdateContent(v.id, embed, meta)
}

// SetAspectRatio changes the embed frame's aspect ratio.
func (v *VideoEditor) SetAspectRatio(r blocks.AspectRatio) error {
	meta := v.meta()
	meta.AspectRatio = r
	if err := meta.Validate(); err != nil {
		return err
	}
	return v.updateMeta(meta)
}

// SetPlayback sets autoplay and the start/end offsets (seconds).
func (v *VideoEditor) SetPlayback(autoplay bool, start, end int) error {
	meta := v.meta()
	meta.Autoplay = autoplay
	meta.StartTime = start
	meta.EndTime = end
	if err := meta.Validate(); err != nil {
		return err
	}
	return v.updateMeta(meta)
}

func (v *VideoEditor) meta() *blocks.VideoMetadata {
	b, err := v.ed.Block(v.id)
	if err != nil {
		return &blocks.VideoMetadata{AspectRatio: blocks.Ratio16x9, Platform: blocks.PlatformYouTube}
	}
	if m, ok := b.Metadata.(*blocks.VideoMetadata); ok {
		return m
	}
	return &blocks.VideoMetadata{AspectRatio: blocks.Ratio16x9, Platform: blocks.PlatformYouTube}
}

func (v *VideoEditor) updateMeta(meta *blocks.VideoMetadata) error {
	b, err := v.ed.Block(v.id)
	if err != nil {
		return err
	}
	return v.ed.UpdateContent(v.id, b.Content, meta)
}
