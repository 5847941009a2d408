// Package network draws a layered graph: columns of nodes where every node
// of one layer connects to every node of the next.
//
// # Layout
//
// Layer i of L sits at x = width/(L+1) * (i+1). Within a layer of K nodes,
// node j sits at y = padding + available/(K+1) * (j+1), where padding is 60
// and available = height - 2*padding - 40. The bottom 40 units hold the layer
// labels, drawn at y = height - 20.
//
//	r, err := network.New(doc, "network-viz", network.DefaultLayers())
//	if err != nil {
//	    return err
//	}
//	sc := r.Render()
//
// # Pulses
//
// [Renderer.Start] runs an owned ticker that picks one node per tick and
// pulses its radius from 8 to 12 and back over 600 ms. Pulses are overlay
// state: [Renderer.Radius] reports the animated radius at a given time, and
// the scene geometry never changes. [Renderer.Close] stops the ticker and
// waits for it, so no pulse fires after Close returns.
//
// For static output, [WithPulsePlan] bakes a deterministic schedule of pulses
// into the scene as SMIL radius animations.
package network
