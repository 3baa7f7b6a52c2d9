package export

import (
	"os"
	"sync"
)

// FontSet is the outcome of system typeface discovery. When Unicode is false
// the PDF export falls back to the built-in Helvetica faces and extended
// characters may render incorrectly; the export itself still succeeds.
type FontSet struct {
	Regular []byte
	Bold    []byte
	Unicode bool
}

var (
	fontsOnce sync.Once
	fontSet   FontSet
)

var regularCandidates = []string{
	// Linux
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	// Windows
	"C:/Windows/Fonts/arial.ttf",
	"C:/Windows/Fonts/calibri.ttf",
	// macOS
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Helvetica.ttf",
}

var boldCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"C:/Windows/Fonts/arialbd.ttf",
	"C:/Windows/Fonts/calibrib.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	"/System/Library/Fonts/Supplemental/Helvetica Bold.ttf",
}

// Fonts locates a system typeface capable of the full character set. The scan
// runs once per process; the result is shared by every export and exposed as
// an explicit capability rather than hidden registration state.
func Fonts() FontSet {
	fontsOnce.Do(func() {
		regular := firstReadable(regularCandidates)
		if regular == nil {
			return
		}
		bold := firstReadable(boldCandidates)
		if bold == nil {
			// A regular face standing in for bold still beats losing glyphs.
			bold = regular
		}
		fontSet = FontSet{Regular: regular, Bold: bold, Unicode: true}
	})
	return fontSet
}

func firstReadable(candidates []string) []byte {
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			return data
		}
	}
	return nil
}
