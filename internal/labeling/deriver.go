package labeling

import (
	"fmt"
	"strings"
)

// Per-flag score gates. Thresholds are per-label calibrations against the
// production model and are not interchangeable between labels.
var (
	healthBenefitsGates = []gate{
		{LabelVitaminCLack, 0.7},
		{LabelPaediatricCareLack, 0.9},
		{LabelMedicalBenefitsLack, 0.9},
		{LabelTyphoidDrugsLack, 0.9},
	}
	providerQualityGates = []gate{
		{LabelNurseAttitude, 0.95},
		{LabelDoctorAttitude, 0.8},
		{LabelHospitalCleanliness, 0.95},
		{LabelMedicationQuality, 0.95},
		{LabelFrontDesk, 0.95},
		{LabelReceptionist, 0.95},
		{LabelPlaceHygiene, 0.95},
		{LabelBuildingQuality, 0.95},
		{LabelCleanliness, 0.99},
		{LabelHospitalVisit, 0.95},
		{LabelClinicRelated, 0.95},
		{LabelFemaleCoworkersLack, 0.95},
	}
	rccQualityGates = []gate{
		{LabelCallCenterAgents, 0.9},
		{LabelPhoneResponse, 0.95},
		{LabelPhoneCalls, 0.9},
	}
	waitTimesGates = []gate{
		{LabelDoctorWait, 0.9},
		{LabelLongQueues, 0.9},
		{LabelTestResultDelay, 0.99},
	}
	medicationRelatedGates = []gate{
		{LabelPharmacyPickupGap, 0.9},
		{LabelMedicationPickup, 0.9},
	}
	customerEducationGates = []gate{
		{LabelBenefitConfusion, 0.95},
		{LabelProviderChangeComms, 0.95},
	}
	providerNetworkGates = []gate{
		{LabelNearbyHospitals, 0.95},
	}
	techIssuesGates = []gate{
		{LabelInternetIssue, 0.95},
		{LabelAppDysfunction, 0.95},
	}
	medicalStaffGates = []gate{
		{LabelDoctorAttitude, 0.9},
		{LabelNurseAttitude, 0.9},
	}
	receptionistFrontDeskGates = []gate{
		{LabelReceptionist, 0.9},
		{LabelFrontDesk, 0.95},
	}
	facilityQualityGates = []gate{
		{LabelBuildingQuality, 0.98},
		{LabelPlaceHygiene, 0.98},
		{LabelHospitalCleanliness, 0.98},
	}
	medicationQualityGates = []gate{
		{LabelMedicationQuality, 0.95},
	}
)

// Auxiliary signal gates. These feed the override cascade only.
var (
	waitTimeRelatedGate = gate{LabelWaitingTime, 0.99}
	timeRelatedGate     = gate{LabelTimeRelated, 0.99}
	accessRelatedGate   = gate{LabelAccessRelated, 0.99}
	doctorRelatedGate   = gate{LabelDoctorRelated, 0.99}
	nurseRelatedGate    = gate{LabelNurseRelated, 0.99}
	clinicRelatedGate   = gate{LabelClinicRelated, 0.99}
	deliveryRelatedGate = gate{LabelDeliveryRelated, 0.98}
	customerServiceGate = gate{LabelCustomerService, 0.99}
	delayGate           = gate{LabelDelay, 0.99}
	medTreatmentGate    = gate{LabelMedTreatmentDrug, 0.9}
)

var referenced = collectReferenced()

func collectReferenced() []Label {
	tables := [][]gate{
		healthBenefitsGates, providerQualityGates, rccQualityGates,
		waitTimesGates, medicationRelatedGates, customerEducationGates,
		providerNetworkGates, techIssuesGates, medicalStaffGates,
		receptionistFrontDeskGates, facilityQualityGates,
		medicationQualityGates,
		{
			waitTimeRelatedGate, timeRelatedGate, accessRelatedGate,
			doctorRelatedGate, nurseRelatedGate, clinicRelatedGate,
			deliveryRelatedGate, customerServiceGate, delayGate,
			medTreatmentGate,
		},
	}
	seen := make(map[Label]bool)
	var out []Label
	for _, gates := range tables {
		for _, g := range gates {
			if !seen[g.label] {
				seen[g.label] = true
				out = append(out, g.label)
			}
		}
	}
	return out
}

// referencedLabels lists every label the deriver reads. CheckTaxonomy and
// Derive validate score coverage against it.
func referencedLabels() []Label {
	return referenced
}

// Deriver turns raw per-label confidence scores and the response text into
// categorical flags. Phase one applies the calibrated score gates; phase two
// replays the ordered override cascade, later rules winning.
type Deriver struct {
	rules []rule
}

func NewDeriver() *Deriver {
	return &Deriver{rules: overrideRules()}
}

// Derive computes the flag set for one response. Scores missing any referenced
// label are a contract violation, reported as ErrConfiguration.
func (d *Deriver) Derive(text string, scores Scores) (FlagSet, error) {
	if missing := scores.Missing(referencedLabels()); len(missing) > 0 {
		return FlagSet{}, fmt.Errorf("%w: scores missing %q", ErrConfiguration, missing)
	}
	st := thresholdPass(text, scores)
	st = applyRules(st, d.rules)
	return st.flags, nil
}

// thresholdPass binarizes the raw scores into the initial row state.
func thresholdPass(text string, s Scores) rowState {
	st := rowState{text: strings.ToLower(text)}

	st.flags.HealthBenefitsCoverage = s.anyOver(healthBenefitsGates)
	st.flags.ProviderQuality = s.anyOver(providerQualityGates)
	st.flags.RCCQuality = s.anyOver(rccQualityGates)
	st.flags.ProviderWaitTimes = s.anyOver(waitTimesGates)
	st.flags.CustomerEducation = s.anyOver(customerEducationGates)
	st.flags.ProviderNetwork = s.anyOver(providerNetworkGates)
	st.flags.TechIssues = s.anyOver(techIssuesGates)

	st.medicationRelated = s.anyOver(medicationRelatedGates)
	st.waitTimeRelated = s.over(waitTimeRelatedGate)
	st.timeRelated = s.over(timeRelatedGate)
	st.accessRelated = s.over(accessRelatedGate)
	st.doctorRelated = s.over(doctorRelatedGate)
	st.nurseRelated = s.over(nurseRelatedGate)
	st.clinicRelated = s.over(clinicRelatedGate)
	st.deliveryRelated = s.over(deliveryRelatedGate)
	st.customerServiceRelated = s.over(customerServiceGate)
	st.delay = s.over(delayGate)
	st.medTreatmentDrug = s.over(medTreatmentGate)

	st.flags.MedicalStaff = s.anyOver(medicalStaffGates) || st.doctorRelated
	st.flags.ReceptionistFrontDesk = s.anyOver(receptionistFrontDeskGates)
	st.flags.FacilityQuality = s.anyOver(facilityQualityGates)
	st.flags.MedicationQuality = s.anyOver(medicationQualityGates)

	return st
}
