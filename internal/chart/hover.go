package chart

import (
	"gdchart/internal/dataprocessing"
	"gdchart/pkg/contracts/domain"
)

// HoverBand is a run of plot pixel columns that all resolve to the same match.
type HoverBand struct {
	X0, X1 float64
	Index  int
	Record domain.MatchRecord
}

// HoverBands resolves every pixel column of a plot width wide through loc
// and merges neighbouring columns with the same nearest match. Bands are
// contiguous and cover [0, width).
func HoverBands(loc *dataprocessing.Locator, x TimeScale, width int) ([]HoverBand, error) {
	var bands []HoverBand
	for px := 0; px < width; px++ {
		i, err := loc.NearestIndex(x.Invert(float64(px)))
		if err != nil {
			return nil, err
		}
		if n := len(bands); n > 0 && bands[n-1].Index == i {
			bands[n-1].X1 = float64(px + 1)
			continue
		}
		bands = append(bands, HoverBand{
			X0:     float64(px),
			X1:     float64(px + 1),
			Index:  i,
			Record: loc.At(i),
		})
	}
	return bands, nil
}
