package report

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/psykhi/wordclouds"

	"github.com/shopscope/shopscope/internal/types"
)

const (
	wordcloudWidth  = 1200
	wordcloudHeight = 600
)

var wordcloudColors = []color.Color{
	color.RGBA{0x26, 0xa6, 0x9a, 0xff},
	color.RGBA{0x42, 0xa5, 0xf5, 0xff},
	color.RGBA{0x7e, 0x57, 0xc2, 0xff},
	color.RGBA{0xff, 0xa7, 0x26, 0xff},
	color.RGBA{0xef, 0x53, 0x50, 0xff},
}

// WriteWordcloud renders the word frequencies as a cloud image. When
// there are no words or the configured font file is unavailable, a
// blank placeholder image is written instead so downstream artifacts
// always have something to link to.
func (r *Renderer) WriteWordcloud(freq map[string]int, path string) error {
	if len(freq) == 0 {
		r.logger.Warn("no words for word cloud, writing placeholder", "path", path)
		return r.writePlaceholder(path)
	}

	fontFile := r.cfg.Report.FontFile
	if fontFile == "" {
		r.logger.Warn("no font configured for word cloud, writing placeholder", "path", path)
		return r.writePlaceholder(path)
	}
	if _, err := os.Stat(fontFile); err != nil {
		r.logger.Warn("word cloud font not found, writing placeholder", "font", fontFile, "path", path)
		return r.writePlaceholder(path)
	}

	cloud := wordclouds.NewWordcloud(freq,
		wordclouds.FontFile(fontFile),
		wordclouds.Width(wordcloudWidth),
		wordclouds.Height(wordcloudHeight),
		wordclouds.FontMaxSize(120),
		wordclouds.FontMinSize(12),
		wordclouds.Colors(wordcloudColors),
		wordclouds.BackgroundColor(color.White),
	)

	return r.writePNG(cloud.Draw(), path)
}

// writePlaceholder writes a plain white canvas in the cloud's dimensions.
func (r *Renderer) writePlaceholder(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, wordcloudWidth, wordcloudHeight))
	for y := 0; y < wordcloudHeight; y++ {
		for x := 0; x < wordcloudWidth; x++ {
			img.Set(x, y, color.White)
		}
	}
	return r.writePNG(img, path)
}

func (r *Renderer) writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &types.ReportError{Artifact: "wordcloud", Path: path, Err: err}
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return &types.ReportError{Artifact: "wordcloud", Path: path, Err: err}
	}
	return nil
}
