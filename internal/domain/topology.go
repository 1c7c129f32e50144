package domain

// DefaultDNSName is the data-network label used when none is supplied
const DefaultDNSName = "Remote Surgery"

// UPFConfig is an opaque per-UPF configuration object supplied by the client
// (type, position hints, etc). The service stores it verbatim.
type UPFConfig map[string]any

// Link connects two named nodes. Endpoint order carries no meaning.
type Link struct {
	NodeA string `json:"nodeA" yaml:"nodeA"`
	NodeB string `json:"nodeB" yaml:"nodeB"`
}

// TopologyRecord is the complete configuration of the simulated network.
// A record is replaced wholesale; nothing mutates a stored record in place.
type TopologyRecord struct {
	UPFCount          int              `json:"numUPFs" yaml:"numUPFs"`
	UPFConfigs        []UPFConfig      `json:"upfConfigs" yaml:"upfConfigs"`
	GNBCount          int              `json:"numGNBs" yaml:"numGNBs"`
	GNBAssignments    map[string][]int `json:"gnbAssignments" yaml:"gnbAssignments"`
	Links             []Link           `json:"links" yaml:"links"`
	DNSName           string           `json:"dnsName" yaml:"dnsName"`
	DNSUPFConnections []int            `json:"dnsUpfConnections" yaml:"dnsUpfConnections"`
}

// DefaultTopology returns the empty record: zero counts, empty collections
// and the default DNS name.
func DefaultTopology() *TopologyRecord {
	return &TopologyRecord{
		UPFConfigs:        []UPFConfig{},
		GNBAssignments:    map[string][]int{},
		Links:             []Link{},
		DNSName:           DefaultDNSName,
		DNSUPFConnections: []int{},
	}
}

// Normalize replaces nil collections with empty ones and fills in the DNS
// name so the record always encodes as [] / {} rather than null.
func (t *TopologyRecord) Normalize() {
	if t.UPFConfigs == nil {
		t.UPFConfigs = []UPFConfig{}
	}
	if t.GNBAssignments == nil {
		t.GNBAssignments = map[string][]int{}
	}
	if t.Links == nil {
		t.Links = []Link{}
	}
	if t.DNSName == "" {
		t.DNSName = DefaultDNSName
	}
	if t.DNSUPFConnections == nil {
		t.DNSUPFConnections = []int{}
	}
}

// Clone returns a deep copy of the record's collections.
// UPF config values are copied one level deep; nested values are shared.
func (t *TopologyRecord) Clone() *TopologyRecord {
	if t == nil {
		return nil
	}
	c := &TopologyRecord{
		UPFCount:          t.UPFCount,
		GNBCount:          t.GNBCount,
		DNSName:           t.DNSName,
		UPFConfigs:        make([]UPFConfig, len(t.UPFConfigs)),
		GNBAssignments:    copyAssignments(t.GNBAssignments),
		Links:             append([]Link{}, t.Links...),
		DNSUPFConnections: append([]int{}, t.DNSUPFConnections...),
	}
	for i, cfg := range t.UPFConfigs {
		if cfg == nil {
			continue
		}
		dup := make(UPFConfig, len(cfg))
		for k, v := range cfg {
			dup[k] = v
		}
		c.UPFConfigs[i] = dup
	}
	return c
}

func copyAssignments(in map[string][]int) map[string][]int {
	out := make(map[string][]int, len(in))
	for k, v := range in {
		out[k] = append([]int{}, v...)
	}
	return out
}
