//-----------------------------------------------------------------------------
/*

sesmesh-demo

Exercises the sesmesh library end to end from flat command-line flags.
No file is read or written: atom source parsing and host-binding /
buffer marshalling are explicitly out of this module's scope.

*/
//-----------------------------------------------------------------------------

package main

import (
	"flag"
	"log"
	"strconv"
	"strings"

	"github.com/sesmesh/sesmesh"
)

func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func main() {
	centersFlag := flag.String("centers", "0,0,0", "comma-separated x,y,z,x,y,z,... atom centers")
	radiiFlag := flag.String("radii", "1.5", "comma-separated per-atom radii")
	probe := flag.Float64("probe", 1.4, "probe radius")
	resolution := flag.Float64("resolution", 0.4, "grid resolution")
	sas := flag.Bool("sas", false, "return the solvent-accessible surface instead of the excluded surface")
	smooth := flag.Bool("smooth", false, "area-weighted normal smoothing")
	flag.Parse()

	centers, err := parseFloats(*centersFlag)
	if err != nil {
		log.Fatalf("error: -centers: %s", err)
	}
	radii, err := parseFloats(*radiiFlag)
	if err != nil {
		log.Fatalf("error: -radii: %s", err)
	}

	m, err := sesmesh.ComputeSES(centers, radii, *probe, *resolution, *sas, *smooth)
	if err != nil {
		log.Fatalf("error: %s", err)
	}

	log.Printf("vertices=%d triangles=%d", m.VertexCount(), m.TriangleCount())
}
