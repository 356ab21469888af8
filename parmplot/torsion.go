//Package parmplot renders the rotational energy profiles described by
//torsion parameters, which is the quickest sanity check on a freshly
//parametrized dihedral.
package parmplot

import (
	"fmt"
	"math"

	parm "github.com/rmera/goparm"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//EnergyProfile samples the torsional energy of a term sequence over a
//full turn. It returns the dihedral angles, in degrees from -180 to
//180, and the energy at each angle, in the units of the force
//constants, normally kcal/mol. At least 2 points are always sampled.
func EnergyProfile(terms []*parm.DihedralType, npoints int) ([]float64, []float64) {
	if npoints < 2 {
		npoints = 2
	}
	phis := floats.Span(make([]float64, npoints), -180, 180)
	energies := make([]float64, npoints)
	for i, phi := range phis {
		var e float64
		for _, t := range terms {
			e += t.PhiK * (1 + math.Cos((t.Per*phi-t.Phase)*math.Pi/180))
		}
		energies[i] = e
	}
	return phis, energies
}

func basicTorsionPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Phi (degrees)"
	p.Y.Label.Text = "Energy (kcal/mol)"
	p.X.Min = -180
	p.X.Max = 180
	p.Add(plotter.NewGrid())
	return p
}

//TorsionPlot renders the energy profile of a torsion term sequence to
//the named file, one degree per point, with the image format taken from
//the file extension.
func TorsionPlot(terms []*parm.DihedralType, title, plotname string) error {
	if terms == nil {
		panic("Given nil data")
	}
	phis, energies := EnergyProfile(terms, 361)
	p := basicTorsionPlot(title)
	pts := make(plotter.XYs, len(phis))
	for i := range phis {
		pts[i].X = phis[i]
		pts[i].Y = energies[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return &Error{message: err.Error(), deco: []string{"TorsionPlot"}}
	}
	p.Add(line)
	if err := p.Save(12*vg.Centimeter, 8*vg.Centimeter, plotname); err != nil {
		return &Error{message: err.Error(), deco: []string{"TorsionPlot"}}
	}
	return nil
}

//Error is the general type for plotting errors. It fullfills parm.Error.
type Error struct {
	message string
	deco    []string
}

func errorf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

func (err *Error) Error() string { return err.message }

//Decorate adds new information to the error and returns all of it
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
