package labeling

// FlagSet holds the categorical flags derived for one response. Main-category
// and sub-category flags are independent groups; any number of flags in a
// group may be raised at once.
type FlagSet struct {
	HealthBenefitsCoverage bool
	ProviderQuality        bool
	RCCQuality             bool
	ProviderWaitTimes      bool
	CustomerEducation      bool
	ProviderNetwork        bool
	TechIssues             bool

	MedicalStaff          bool
	ReceptionistFrontDesk bool
	FacilityQuality       bool
	MedicationQuality     bool
}

// rowState carries one response through the deriver: the lowercased text the
// substring rules match against, the flags under construction, and the
// auxiliary signals the override rules read. Auxiliary signals never reach
// the output on their own.
type rowState struct {
	text  string
	flags FlagSet

	medicationRelated      bool
	waitTimeRelated        bool
	timeRelated            bool
	accessRelated          bool
	doctorRelated          bool
	nurseRelated           bool
	clinicRelated          bool
	deliveryRelated        bool
	customerServiceRelated bool
	delay                  bool
	medTreatmentDrug       bool
}
