package domain

// AssetType distinguishes physical holdings from digital ones.
type AssetType string

const (
	AssetPhysical AssetType = "PHYSICAL"
	AssetDigital  AssetType = "DIGITAL"
)

// Asset is reference data the wizard reads but never mutates.
type Asset struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            AssetType `json:"type"`
	IsPercentage    bool      `json:"isPercentage"`
	IsMotherAccount bool      `json:"isMotherAccount"`
	IsActive        bool      `json:"isActive"`
}

// TransactionRule is a directed edge of the allowed-conversion graph.
type TransactionRule struct {
	SourceAssetID string `json:"sourceAssetId"`
	TargetAssetID string `json:"targetAssetId"`
}

// RuleGraph indexes assets and the whitelist of source -> target conversions.
type RuleGraph struct {
	assets []Asset
	byID   map[string]Asset
	edges  map[string]map[string]struct{}
}

// NewRuleGraph builds the graph. Rules referencing unknown assets are kept as edges
// but never surface as options since options are drawn from the asset list.
func NewRuleGraph(assets []Asset, rules []TransactionRule) *RuleGraph {
	g := &RuleGraph{
		assets: make([]Asset, len(assets)),
		byID:   make(map[string]Asset, len(assets)),
		edges:  make(map[string]map[string]struct{}),
	}
	copy(g.assets, assets)
	for _, a := range assets {
		g.byID[a.ID] = a
	}
	for _, r := range rules {
		targets, ok := g.edges[r.SourceAssetID]
		if !ok {
			targets = make(map[string]struct{})
			g.edges[r.SourceAssetID] = targets
		}
		targets[r.TargetAssetID] = struct{}{}
	}
	return g
}

// Assets returns the asset list in backend order.
func (g *RuleGraph) Assets() []Asset {
	out := make([]Asset, len(g.assets))
	copy(out, g.assets)
	return out
}

// Asset looks up an asset by id.
func (g *RuleGraph) Asset(id string) (Asset, bool) {
	a, ok := g.byID[id]
	return a, ok
}

// Allows reports whether a rule source -> target exists.
func (g *RuleGraph) Allows(sourceID, targetID string) bool {
	_, ok := g.edges[sourceID][targetID]
	return ok
}

// EgressOptions returns exactly the assets reachable from ingressID by one rule.
func (g *RuleGraph) EgressOptions(ingressID string) []Asset {
	out := []Asset{}
	if ingressID == "" {
		return out
	}
	for _, a := range g.assets {
		if g.Allows(ingressID, a.ID) {
			out = append(out, a)
		}
	}
	return out
}
