package cli

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go.viam.com/pathdecider/decision"
	"go.viam.com/pathdecider/frenet"
)

var (
	pathColor     = color.RGBA{B: 200, A: 255}
	obstacleColor = color.RGBA{R: 120, G: 120, B: 120, A: 120}
	stopColor     = color.RGBA{R: 220, A: 255}
	adcColor      = color.RGBA{G: 160, A: 160}
)

// plotDecisions draws the path, the vehicle footprint, every obstacle and every stop fence in the
// s-l plane and saves the image to file. The format follows the file extension.
func plotDecisions(file string, path *frenet.Path, adc frenet.SLBoundary, entries []decision.Entry) error {
	p := plot.New()
	p.Title.Text = "static obstacle decisions"
	p.X.Label.Text = "s (m)"
	p.Y.Label.Text = "l (m)"
	p.Add(plotter.NewGrid())

	pathXYs := make(plotter.XYs, 0, path.Len())
	for _, pt := range path.Points() {
		pathXYs = append(pathXYs, plotter.XY{X: pt.S, Y: pt.L})
	}
	pathLine, err := plotter.NewLine(pathXYs)
	if err != nil {
		return errors.Wrap(err, "plot path")
	}
	pathLine.Color = pathColor
	p.Add(pathLine)
	p.Legend.Add("path", pathLine)

	adcBox, err := boxPolygon(adc, adcColor)
	if err != nil {
		return err
	}
	p.Add(adcBox)
	p.Legend.Add("vehicle", adcBox)

	var stops plotter.XYs
	for _, e := range entries {
		box, err := boxPolygon(e.Obstacle.SLBoundary, obstacleColor)
		if err != nil {
			return errors.Wrapf(err, "obstacle %q", e.Obstacle.ID)
		}
		p.Add(box)

		stop, ok := e.Longitudinal.(decision.Stop)
		if !ok {
			continue
		}
		s := e.Obstacle.SLBoundary.StartS + stop.DistanceS
		l, err := path.EvaluateByS(s)
		if err != nil {
			return err
		}
		stops = append(stops, plotter.XY{X: s, Y: l})
	}

	if len(stops) > 0 {
		fences, err := plotter.NewScatter(stops)
		if err != nil {
			return errors.Wrap(err, "plot stops")
		}
		fences.GlyphStyle.Color = stopColor
		p.Add(fences)
		p.Legend.Add("stop", fences)
	}

	return errors.Wrapf(p.Save(8*vg.Inch, 4*vg.Inch, file), "save plot %q", file)
}

func boxPolygon(b frenet.SLBoundary, c color.Color) (*plotter.Polygon, error) {
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: b.StartS, Y: b.StartL},
		{X: b.EndS, Y: b.StartL},
		{X: b.EndS, Y: b.EndL},
		{X: b.StartS, Y: b.EndL},
	})
	if err != nil {
		return nil, errors.Wrap(err, "plot box")
	}
	poly.Color = c
	return poly, nil
}
