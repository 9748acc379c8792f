package render

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/solevolog/solevolog/internal/card"
	"github.com/solevolog/solevolog/internal/catalog"
)

// Size of generated card art in terminal cells.
const (
	ArtWidth  = 40
	ArtHeight = 32
)

// ansiDirs hold pre-rendered .ansi files inside a deck directory.
var ansiDirs = []string{"ansi32", "ansi256"}

// ArtCache turns card images into ANSI art and keeps the result in Dir.
type ArtCache struct {
	Dir string
}

// Art returns ANSI art for c. A pre-rendered file in the deck directory
// wins; otherwise a local image reference is converted and cached. Cards
// with a remote or missing image return "".
func (a ArtCache) Art(deckPath string, c card.Card) (string, error) {
	if deckPath != "" {
		for _, dir := range ansiDirs {
			p := filepath.Join(deckPath, filepath.FromSlash(catalog.CardImagePath(dir, c))) + ".ansi"
			if data, err := os.ReadFile(p); err == nil {
				return string(data), nil
			}
		}
	}

	ref := c.ImageReference
	if ref == "" || strings.Contains(ref, "://") {
		return "", nil
	}
	if _, err := os.Stat(ref); err != nil {
		return "", nil
	}
	if strings.EqualFold(filepath.Ext(ref), ".svg") || strings.EqualFold(filepath.Ext(ref), ".webp") {
		// No decoder for these formats.
		return "", nil
	}

	cachePath := ""
	if a.Dir != "" {
		cachePath = filepath.Join(a.Dir, "ansi_cache", fmt.Sprintf("%x.ansi", md5.Sum([]byte(ref))))
		if data, err := os.ReadFile(cachePath); err == nil {
			return string(data), nil
		}
	}

	art, err := FileToANSI(ref, ArtWidth, ArtHeight)
	if err != nil {
		return "", err
	}
	if cachePath != "" {
		if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
			return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
		}
		if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
			return "", fmt.Errorf("failed to write ANSI art to cache: %w", err)
		}
	}
	return art, nil
}

// FileToANSI decodes an image file and converts it to ANSI art.
func FileToANSI(imagePath string, width, height int) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return ImageToANSI(img, width, height), nil
}

// ImageToANSI renders img as width x height cells of upper half blocks,
// each cell carrying two rows of averaged pixels.
func ImageToANSI(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var b strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			top := averageColor(colorAt(resized, x, y), colorAt(resized, x+1, y))
			bottom := averageColor(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			b.WriteString(cell('▀', top, bottom))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func colorAt(img image.Image, x, y int) colorful.Color {
	var c color.Color = color.RGBA{A: 255}
	if (image.Point{x, y}).In(img.Bounds()) {
		c = img.At(x, y)
	}
	cf, _ := colorful.MakeColor(c)
	return cf
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}.Clamped()
}

func cell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}
