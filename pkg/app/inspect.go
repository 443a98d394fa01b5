package app

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/chazu/geomesh/pkg/graph"
	"github.com/chazu/geomesh/pkg/kernel/manifold"
	"github.com/chazu/geomesh/pkg/kernel/sdfx"
	"github.com/chazu/geomesh/pkg/tessellate"
)

// VolumeReport describes the unplaced tessellation of one volume.
type VolumeReport struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Supported bool    `json:"supported"`
	Vertices  int     `json:"vertices"`
	Faces     int     `json:"faces"`
	Closed    bool    `json:"closed"`
	Oriented  bool    `json:"oriented"`
	Volume    float64    `json:"volume"`
	Centroid  [3]float64 `json:"centroid"`
	// Deviation is the largest vertex distance from the exact surface, or
	// -1 when the kind has no reference field.
	Deviation float64 `json:"deviation"`
	// ReferenceVolume is enclosed by a marching-cubes mesh of the exact
	// field, zero when the kind has none.
	ReferenceVolume float64 `json:"referenceVolume,omitempty"`
}

// Inspect evaluates source and tessellates each volume once, in name
// order, checking its topology and, where a reference field exists, that
// its vertices lie on the exact surface and that it encloses about the
// same volume as a marching-cubes rendering of that surface.
func (a *App) Inspect(source string) ([]VolumeReport, error) {
	g, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("app: %s", strings.Join(msgs, "; "))
	}
	if v := graph.ValidateAll(g); len(v.Errors) > 0 {
		return nil, fmt.Errorf("app: %w", v.Errors[0])
	}

	vols := g.Volumes()
	slices.SortFunc(vols, func(x, y *graph.Node) int { return strings.Compare(x.Name, y.Name) })

	reports := make([]VolumeReport, 0, len(vols))
	for _, n := range vols {
		s := n.Data.(graph.VolumeData).Shape
		r := VolumeReport{Name: n.Name, Kind: s.TypeName(), Deviation: -1}
		m := a.dispatcher.CreateGeometry(s)
		if m == nil {
			reports = append(reports, r)
			continue
		}
		rep := manifold.Check(m)
		r.Supported = true
		r.Vertices, r.Faces = rep.Vertices, rep.Faces
		r.Closed, r.Oriented = rep.Closed(), rep.Oriented()
		r.Volume = rep.Volume
		c := manifold.Centroid(m)
		r.Centroid = [3]float64{c.X, c.Y, c.Z}

		field, err := sdfx.Solid(s, tessellate.Scale)
		switch {
		case errors.Is(err, sdfx.ErrNoSolid):
		case err != nil:
			return nil, fmt.Errorf("app: volume %q: %w", n.Name, err)
		default:
			r.Deviation = sdfx.Deviation(m, field)
			r.ReferenceVolume = math.Abs(manifold.SignedVolume(sdfx.ToMesh(field, sdfx.DefaultMeshCells)))
		}
		a.logger.Debug("inspected volume", "name", r.Name, "kind", r.Kind, "closed", r.Closed, "deviation", r.Deviation)
		reports = append(reports, r)
	}
	return reports, nil
}
