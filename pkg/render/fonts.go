package render

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/bannersmith/pkg/banner"
)

// Font faces are built from the Go fonts embedded in golang.org/x/image.
// The document records a font_family per asset for round-trip fidelity, but
// rendering maps every family onto the embedded regular/bold faces so output
// never depends on fonts installed on the machine.

var (
	fontOnce    sync.Once
	fontRegular *opentype.Font
	fontBold    *opentype.Font

	faceMu    sync.Mutex
	faceCache = map[faceKey]font.Face{}
)

type faceKey struct {
	weight string
	size   float64
}

func parseFonts() {
	// The embedded TTFs are well-formed; a parse failure is a build defect.
	var err error
	fontRegular, err = opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	fontBold, err = opentype.Parse(gobold.TTF)
	if err != nil {
		panic(err)
	}
}

// faceFor returns a cached font face for the given weight and size.
func faceFor(weight string, size float64) font.Face {
	fontOnce.Do(parseFonts)

	if size <= 0 {
		size = 16
	}

	key := faceKey{weight: weight, size: size}
	faceMu.Lock()
	defer faceMu.Unlock()

	if f, ok := faceCache[key]; ok {
		return f
	}

	src := fontRegular
	if weight == banner.WeightBold {
		src = fontBold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err)
	}
	faceCache[key] = f
	return f
}
