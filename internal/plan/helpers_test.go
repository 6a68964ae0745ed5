package plan

import "github.com/piwi3910/slicecore/internal/geom"

func pt(x, y int64) geom.Point3 { return geom.Point3{X: x, Y: y, Z: 0} }
