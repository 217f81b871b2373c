package models

// SystemDescription is the assessment input, immutable once bound.
//
// Posture flags are pointers so that an omitted flag is distinguishable from
// an explicit false. An absent flag means "not in place" for every flag
// except DataEncryption and AccessControls, which default to "in place".
// The asymmetry is inherited from the original scoring contract: changing
// either default silently shifts the score of any payload that omits the
// flag, so it is kept and documented here instead of being normalized.
type SystemDescription struct {
	SystemName     string   `json:"system_name" binding:"required"`
	ModelType      string   `json:"model_type" binding:"required"`
	DataSources    []string `json:"data_sources" binding:"required"`
	DeploymentEnv  string   `json:"deployment_env" binding:"required"`
	ThirdPartyLibs []string `json:"third_party_libs"`

	DataLineageDocumented  *bool `json:"data_lineage_documented"`
	DriftMonitoringEnabled *bool `json:"drift_monitoring_enabled"`
	DataEncryption         *bool `json:"data_encryption"`
	AccessControls         *bool `json:"access_controls"`
	DataIntegrityChecks    *bool `json:"data_integrity_checks"`
	SupplyChainPolicy      *bool `json:"supply_chain_policy"`
	VendorAssessment       *bool `json:"vendor_assessment"`
}

func (d SystemDescription) LineageDocumented() bool {
	return flag(d.DataLineageDocumented, false)
}

func (d SystemDescription) DriftMonitoring() bool {
	return flag(d.DriftMonitoringEnabled, false)
}

func (d SystemDescription) EncryptionEnabled() bool {
	return flag(d.DataEncryption, true)
}

func (d SystemDescription) AccessControlsEnabled() bool {
	return flag(d.AccessControls, true)
}

func (d SystemDescription) IntegrityChecks() bool {
	return flag(d.DataIntegrityChecks, false)
}

func (d SystemDescription) HasSupplyChainPolicy() bool {
	return flag(d.SupplyChainPolicy, false)
}

func (d SystemDescription) VendorAssessed() bool {
	return flag(d.VendorAssessment, false)
}

func flag(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
