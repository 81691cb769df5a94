package models

// Capability is a monitoring domain a tool can cover
type Capability string

const (
	CapabilityHost    Capability = "host"
	CapabilityProcess Capability = "process"
	CapabilityNetwork Capability = "network"
	CapabilityDB      Capability = "db"
	CapabilityTrans   Capability = "trans"
	CapabilityLink    Capability = "link"
	CapabilityData    Capability = "data"
	CapabilityClient  Capability = "client"
)

// MandatoryCapabilities are the categories required for full coverage credit.
// Order is fixed; missing-capability reporting follows it.
var MandatoryCapabilities = []Capability{
	CapabilityHost,
	CapabilityProcess,
	CapabilityNetwork,
	CapabilityDB,
	CapabilityTrans,
}

// Severity is the alerting severity of a scenario
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityOrange Severity = "orange"
	SeverityYellow Severity = "yellow"
	SeverityGray   Severity = "gray"
)

// Scenario is a single standardized alerting rule belonging to one capability
type Scenario struct {
	ID        string     `yaml:"id" json:"id"`
	Category  Capability `yaml:"category" json:"category"`
	Name      string     `yaml:"name" json:"name"`
	Severity  Severity   `yaml:"severity" json:"severity"`
	Threshold string     `yaml:"threshold" json:"threshold"`
}

// Tool is a catalog entry for a monitoring tool. Systems reference tools by
// id and never own them.
type Tool struct {
	ID                  string       `yaml:"id" json:"id"`
	Name                string       `yaml:"name" json:"name"`
	DefaultCapabilities []Capability `yaml:"default_capabilities" json:"defaultCapabilities"`
	Scenarios           []Scenario   `yaml:"scenarios" json:"scenarios"`
}
