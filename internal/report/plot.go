package report

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/wcharczuk/go-chart"
	"gonum.org/v1/gonum/floats"

	"github.com/hashforge/gasplot-cli/internal/dataset"
	"github.com/hashforge/gasplot-cli/internal/regression"
)

const (
	panelWidth  = 1024
	panelHeight = 420
	// linePoints samples the fitted line densely enough that the dashed
	// stroke looks continuous across the panel.
	linePoints = 100
)

// Panel is one scatter-plus-fit-line chart. The fit line is drawn over
// [0, XMax] and carries the fit equation as its legend label.
type Panel struct {
	Title string
	Rows  []dataset.NumericRow
	Fit   regression.Result
	XMax  float64
}

// Render draws each panel and stacks them top to bottom into a single PNG.
func Render(panels []Panel) ([]byte, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("no panels to render")
	}

	images := make([]image.Image, 0, len(panels))
	width, height := 0, 0
	for _, p := range panels {
		img, err := renderPanel(p)
		if err != nil {
			return nil, err
		}
		if w := img.Bounds().Dx(); w > width {
			width = w
		}
		height += img.Bounds().Dy()
		images = append(images, img)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	y := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
		y += b.Dy()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPanel(p Panel) (image.Image, error) {
	xs := make([]float64, len(p.Rows))
	ys := make([]float64, len(p.Rows))
	for i, r := range p.Rows {
		xs[i] = float64(r.Length)
		ys[i] = r.Gas
	}

	lineX := make([]float64, linePoints)
	floats.Span(lineX, 0, p.XMax)
	lineY := make([]float64, linePoints)
	for i, x := range lineX {
		lineY[i] = p.Fit.PredictY(x)
	}

	scatter := chart.ContinuousSeries{
		Name:    "measurements",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			Show:        true,
			StrokeWidth: chart.Disabled,
			DotWidth:    5,
			DotColor:    chart.ColorBlue,
		},
	}
	fitLine := chart.ContinuousSeries{
		Name:    p.Fit.Equation(),
		XValues: lineX,
		YValues: lineY,
		Style: chart.Style{
			Show:            true,
			StrokeColor:     chart.ColorRed,
			StrokeWidth:     2.0,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}

	graph := chart.Chart{
		Title:      p.Title,
		TitleStyle: chart.StyleShow(),
		Width:      panelWidth,
		Height:     panelHeight,
		XAxis: chart.XAxis{
			Name:      "Message Length (bytes)",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "Gas Used",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{scatter, fitLine},
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render panel %q: %w", p.Title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode panel %q: %w", p.Title, err)
	}
	return img, nil
}
