package pdf

const (
	// DPI is the CSS pixel density the browser lays pages out with.
	DPI = 96.0
	// Margin is the horizontal page margin in pixels (0.4in on each side).
	Margin = 0.8 * DPI

	MinScale = 0.1
	MaxScale = 2.0
)

// Box is a rendered element size in CSS pixels.
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout is the resolved print orientation and scale.
type Layout struct {
	Landscape bool
	Scale     float64
}

// AutoLayout picks orientation and scale so that box fits the page width.
// Wide content prints landscape. Degenerate boxes print portrait at 1.0.
func AutoLayout(box Box, paper PaperFormat) Layout {
	if box.Width <= 0 || box.Height <= 0 {
		return Layout{Scale: 1.0}
	}
	landscape := box.Width > box.Height
	return Layout{Landscape: landscape, Scale: fitScale(box, paper, landscape)}
}

// ResolveLayout keeps explicit choices and measures only what is missing.
// measure is called only when landscape or scale is nil.
func ResolveLayout(landscape *bool, scale *float64, paper PaperFormat, measure func() (Box, error)) (Layout, error) {
	if landscape != nil && scale != nil {
		return Layout{Landscape: *landscape, Scale: clamp(*scale)}, nil
	}

	box, err := measure()
	if err != nil {
		return Layout{}, err
	}
	layout := AutoLayout(box, paper)

	if landscape != nil {
		layout.Landscape = *landscape
		if box.Width > 0 && box.Height > 0 {
			layout.Scale = fitScale(box, paper, layout.Landscape)
		}
	}
	if scale != nil {
		layout.Scale = clamp(*scale)
	}
	return layout, nil
}

func fitScale(box Box, paper PaperFormat, landscape bool) float64 {
	widthIn := min(paper.Width, paper.Height)
	if landscape {
		widthIn = max(paper.Width, paper.Height)
	}
	padded := (box.Width + Margin) * 1.1
	return clamp((widthIn*DPI - Margin) / padded)
}

func clamp(scale float64) float64 {
	switch {
	case scale < MinScale:
		return MinScale
	case scale > MaxScale:
		return MaxScale
	default:
		return scale
	}
}
