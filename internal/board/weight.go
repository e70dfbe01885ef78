package board

// Aggregate contains the per-layer and total paper weight of one sheet plus
// the paper cost at the rates currently set on the layers. LayerWeights is
// index-aligned with the input layers.
type Aggregate struct {
	TotalWeight  float64
	LayerWeights []float64
	PaperCost    float64
}

// AggregateLayers combines sheet dimensions (mm) with the ordered layer
// specifications into weights and paper cost. A flute layer's grammage is
// multiplied by its fluting factor because corrugation consumes more paper
// per linear meter than the flat GSM suggests; a missing factor is treated
// as flat paper.
func AggregateLayers(sheetLength, sheetWidth float64, layers []LayerSpec) Aggregate {
	agg := Aggregate{LayerWeights: make([]float64, len(layers))}
	if sheetLength <= 0 || sheetWidth <= 0 {
		return agg
	}

	for i, layer := range layers {
		weight := sheetLength * sheetWidth * effectiveGSM(layer) / 1e6
		agg.LayerWeights[i] = weight
		agg.TotalWeight += weight
		agg.PaperCost += weight * layer.Rate
	}
	return agg
}

func effectiveGSM(layer LayerSpec) float64 {
	if layer.GSM <= 0 {
		return 0
	}
	if layer.LayerType == Flute && layer.FlutingFactor > 0 {
		return layer.GSM * layer.FlutingFactor
	}
	return layer.GSM
}
