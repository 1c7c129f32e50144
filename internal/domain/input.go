package domain

// TopologyInput is the accepted shape of a save or import payload.
// Every field is optional; Record applies the defaults.
type TopologyInput struct {
	UPFCount          *int              `json:"numUPFs" yaml:"numUPFs"`
	UPFConfigs        *[]UPFConfig      `json:"upfConfigs" yaml:"upfConfigs"`
	GNBCount          *int              `json:"numGNBs" yaml:"numGNBs"`
	GNBAssignments    *map[string][]int `json:"gnbAssignments" yaml:"gnbAssignments"`
	Links             *[]Link           `json:"links" yaml:"links"`
	DNSName           *string           `json:"dnsName" yaml:"dnsName"`
	DNSUPFConnections *[]int            `json:"dnsUpfConnections" yaml:"dnsUpfConnections"`
}

// Record builds a full record from the input.
//
//	numUPFs, numGNBs     -> 0
//	upfConfigs, links    -> []
//	gnbAssignments       -> {}
//	dnsUpfConnections    -> []
//	dnsName              -> DefaultDNSName (also when empty)
//
// Values are not range-checked and cross-field consistency is not enforced.
func (in *TopologyInput) Record() *TopologyRecord {
	rec := DefaultTopology()
	if in == nil {
		return rec
	}
	if in.UPFCount != nil {
		rec.UPFCount = *in.UPFCount
	}
	if in.UPFConfigs != nil {
		rec.UPFConfigs = *in.UPFConfigs
	}
	if in.GNBCount != nil {
		rec.GNBCount = *in.GNBCount
	}
	if in.GNBAssignments != nil {
		rec.GNBAssignments = *in.GNBAssignments
	}
	if in.Links != nil {
		rec.Links = *in.Links
	}
	if in.DNSName != nil {
		rec.DNSName = *in.DNSName
	}
	if in.DNSUPFConnections != nil {
		rec.DNSUPFConnections = *in.DNSUPFConnections
	}
	rec.Normalize()
	return rec
}
