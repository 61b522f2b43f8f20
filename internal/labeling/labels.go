package labeling

import (
	"errors"
	"fmt"
)

// Label is one candidate phrase scored by the zero-shot classifier.
// The phrases are part of the model contract: scores come back keyed by these
// exact strings, so they must not be edited (misspellings included).
type Label string

const (
	LabelVitaminCLack        Label = "lack of vitamin c in customer plan benefits"
	LabelPaediatricCareLack  Label = "lack of Paediatric care in customer plan benefits"
	LabelMedicalBenefitsLack Label = "Lack of medical benefits in customer plan"
	LabelTyphoidDrugsLack    Label = "lack of typhoid drugs"
	LabelNurseAttitude       Label = "attitude of nurses"
	LabelDoctorAttitude      Label = "attitude of doctors"
	LabelHospitalCleanliness Label = "cleanliness of hosptials"
	LabelMedicationQuality   Label = "medication quality"
	LabelFrontDesk           Label = "Front desk related"
	LabelReceptionist        Label = "attitude of receptionist"
	LabelPlaceHygiene        Label = "place hygeine"
	LabelBuildingQuality     Label = "quality of building"
	LabelCleanliness         Label = "cleanliness"
	LabelHospitalVisit       Label = "customer visiting the hospital"
	LabelClinicRelated       Label = "clinic related"
	LabelFemaleCoworkersLack Label = "lack of female coworkers"
	LabelCallCenterAgents    Label = "call center agents"
	LabelPhoneResponse       Label = "response to phone calls"
	LabelPhoneCalls          Label = "phone calls related"
	LabelDoctorWait          Label = "waiting for doctors"
	LabelLongQueues          Label = "long queues in hospital"
	LabelTestResultDelay     Label = "delaying in getting test results"
	LabelPharmacyPickupGap   Label = "Unavailable drug for pick-up at pharmacy"
	LabelMedicationPickup    Label = "medication pickup related"
	LabelBenefitConfusion    Label = "customer confusion about the benefits"
	LabelProviderChangeComms Label = "lack of communication on changing providers on plan"
	LabelNearbyHospitals     Label = "hospitals near the customer city"
	LabelInternetIssue       Label = "internet work issue"
	LabelAppDysfunction      Label = "app dysfunction"
	LabelWaitingTime         Label = "waiting time"
	LabelTimeRelated         Label = "time related"
	LabelAccessRelated       Label = "access related"
	LabelDoctorRelated       Label = "doctor related"
	LabelNurseRelated        Label = "nurse related"
	LabelDeliveryRelated     Label = "delivery related"
	LabelCustomerService     Label = "customer service"
	LabelDelay               Label = "delay"
	LabelMedTreatmentDrug    Label = "medication, treatment, or drug related"
)

// ErrConfiguration signals a mismatch between the candidate taxonomy and the
// labels the deriver reads. It is fatal; a run must not start with it.
var ErrConfiguration = errors.New("label taxonomy mismatch")

// Taxonomy returns the candidate labels in scoring order.
func Taxonomy() []Label {
	return []Label{
		LabelVitaminCLack,
		LabelPaediatricCareLack,
		LabelMedicalBenefitsLack,
		LabelTyphoidDrugsLack,
		LabelNurseAttitude,
		LabelDoctorAttitude,
		LabelHospitalCleanliness,
		LabelMedicationQuality,
		LabelFrontDesk,
		LabelReceptionist,
		LabelPlaceHygiene,
		LabelBuildingQuality,
		LabelCleanliness,
		LabelHospitalVisit,
		LabelClinicRelated,
		LabelFemaleCoworkersLack,
		LabelCallCenterAgents,
		LabelPhoneResponse,
		LabelPhoneCalls,
		LabelDoctorWait,
		LabelLongQueues,
		LabelTestResultDelay,
		LabelPharmacyPickupGap,
		LabelMedicationPickup,
		LabelBenefitConfusion,
		LabelProviderChangeComms,
		LabelNearbyHospitals,
		LabelInternetIssue,
		LabelAppDysfunction,
		LabelWaitingTime,
		LabelTimeRelated,
		LabelAccessRelated,
		LabelDoctorRelated,
		LabelNurseRelated,
		LabelDeliveryRelated,
		LabelCustomerService,
		LabelDelay,
		LabelMedTreatmentDrug,
	}
}

// CheckTaxonomy verifies that candidates cover every label the deriver reads.
func CheckTaxonomy(candidates []Label) error {
	present := make(map[Label]bool, len(candidates))
	for _, l := range candidates {
		present[l] = true
	}
	var missing []Label
	for _, l := range referencedLabels() {
		if !present[l] {
			missing = append(missing, l)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: candidates missing %q", ErrConfiguration, missing)
	}
	return nil
}
