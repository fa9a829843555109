package types

import (
	"fmt"
	"strings"
)

// FlowTempPoint is a single point on a FlowTempGraph.
type FlowTempPoint struct {
	Flow float64 // mm³/s
	Temp float64 // °C
}

// FlowTempGraph maps an extrusion flow rate to a print temperature. The points are kept in the order they were
// configured in, the graph is usually written with increasing flow. An empty graph means no override is configured.
type FlowTempGraph struct {
	Data []FlowTempPoint
}

// Add appends a point to the graph
func (g *FlowTempGraph) Add(flow, temp float64) {
	g.Data = append(g.Data, FlowTempPoint{Flow: flow, Temp: temp})
}

// Empty returns true if no points are configured
func (g FlowTempGraph) Empty() bool {
	return len(g.Data) == 0
}

// GetTemp returns the temperature for the given flow by linear interpolation between the surrounding points. When
// flow dependent temperature is disabled or the graph is empty the material print temperature is returned. Flows
// outside the graph are clamped to the first or last point.
func (g FlowTempGraph) GetTemp(flow, materialPrintTemp float64, flowDependentTemp bool) float64 {
	if !flowDependentTemp || len(g.Data) == 0 {
		return materialPrintTemp
	}

	if len(g.Data) == 1 || flow < g.Data[0].Flow {
		return g.Data[0].Temp
	}

	last := g.Data[0]
	for _, p := range g.Data[1:] {
		if p.Flow >= flow {
			if p.Flow == last.Flow {
				return p.Temp
			}
			return last.Temp + (p.Temp-last.Temp)*(flow-last.Flow)/(p.Flow-last.Flow)
		}
		last = p
	}

	return g.Data[len(g.Data)-1].Temp
}

// String renders the graph in the same bracketed form it is configured with
func (g FlowTempGraph) String() string {
	parts := make([]string, 0, len(g.Data))
	for _, p := range g.Data {
		parts = append(parts, fmt.Sprintf("[%g,%g]", p.Flow, p.Temp))
	}

	return fmt.Sprintf("[%s]", strings.Join(parts, ","))
}
