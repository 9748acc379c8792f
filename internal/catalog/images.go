package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/solevolog/solevolog/internal/card"
)

// Image directories in priority order: scalable (SVG), then raster
// directories named by height.
var imageDirs = []string{"scalable", "h2400", "h1200", "h750"}

// ImageExtensions lists the card image file types, most preferred first.
var ImageExtensions = []string{".svg", ".png", ".jpg", ".jpeg", ".webp"}

const wikimediaFilePath = "https://commons.wikimedia.org/wiki/Special:FilePath/"

// resolveImages sets ImageReference for every card that has an image file
// in the deck. Cards without one get a Wikimedia URL when the deck opts in
// and are otherwise left without a reference.
func (d *Deck) resolveImages(fsys fs.FS, root string, images *ImagesSection) {
	dirs := ImageDirectories(fsys)
	for i := range d.Cards {
		c := &d.Cards[i]
		if p, ok := findCardImage(fsys, dirs, *c); ok {
			if root != "" {
				p = filepath.Join(root, filepath.FromSlash(p))
			}
			c.ImageReference = p
			continue
		}
		if images != nil && images.Wikimedia {
			c.ImageReference = WikimediaURL(*c)
		}
	}
}

// ImageDirectories lists the known image directories followed by any other
// h<height> directory present in fsys.
func ImageDirectories(fsys fs.FS) []string {
	var dirs []string
	for _, dir := range imageDirs {
		if info, err := fs.Stat(fsys, dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return dirs
	}
	for _, entry := range entries {
		if !entry.IsDir() || !IsRasterDir(entry.Name()) {
			continue
		}
		if !contains(dirs, entry.Name()) {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs
}

// IsRasterDir reports whether name looks like a raster image directory (h<height>).
func IsRasterDir(name string) bool {
	if !strings.HasPrefix(name, "h") {
		return false
	}
	var height int
	_, err := fmt.Sscanf(name, "h%d", &height)
	return err == nil && height > 0
}

// CardImagePath returns the path of a card image below an image directory,
// without extension.
func CardImagePath(dir string, c card.Card) string {
	if c.IsMajor() {
		return path.Join(dir, "major_arcana", MajorKey(c.Rank))
	}
	return path.Join(dir, "minor_arcana", string(c.Suit), card.RankName(c.Rank))
}

func findCardImage(fsys fs.FS, dirs []string, c card.Card) (string, bool) {
	for _, dir := range dirs {
		if p, ok := FindImage(fsys, dir, c); ok {
			return p, true
		}
	}
	return "", false
}

// FindImage returns the image file of c inside one image directory.
func FindImage(fsys fs.FS, dir string, c card.Card) (string, bool) {
	base := CardImagePath(dir, c)
	for _, ext := range ImageExtensions {
		if _, err := fs.Stat(fsys, base+ext); err == nil {
			return base + ext, true
		}
	}
	return "", false
}

// WikimediaURL returns the Wikimedia Commons URL of the public-domain
// Rider-Waite-Smith scan of c.
func WikimediaURL(c card.Card) string {
	if c.IsMajor() {
		name := strings.TrimPrefix(card.DefaultMajorName(c.Rank), "The ")
		name = strings.ReplaceAll(name, " ", "_")
		return fmt.Sprintf("%sRWS_Tarot_%02d_%s.jpg", wikimediaFilePath, c.Rank, name)
	}

	suit := string(c.Suit)
	if c.Suit == card.Pentacles {
		suit = "pents"
	}
	suit = strings.ToUpper(suit[:1]) + suit[1:]
	return fmt.Sprintf("%s%s%02d.jpg", wikimediaFilePath, suit, c.Rank)
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
