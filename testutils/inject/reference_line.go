package inject

import (
	"go.viam.com/pathdecider/referenceline"
)

// ReferenceLine is an injected reference line provider.
type ReferenceLine struct {
	referenceline.Provider
	GetReferencePointFunc func(s float64) referenceline.ReferencePoint
	// Queries records every s passed to GetReferencePoint.
	Queries []float64
}

// GetReferencePoint calls the injected GetReferencePoint or the real version.
func (r *ReferenceLine) GetReferencePoint(s float64) referenceline.ReferencePoint {
	r.Queries = append(r.Queries, s)
	if r.GetReferencePointFunc == nil {
		return r.Provider.GetReferencePoint(s)
	}
	return r.GetReferencePointFunc(s)
}
