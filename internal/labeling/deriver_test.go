package labeling

import (
	"errors"
	"testing"
)

// scoresWith builds a full score map with every candidate label scored low,
// overridden by the given entries.
func scoresWith(over map[Label]float64) Scores {
	s := make(Scores, len(Taxonomy()))
	for _, l := range Taxonomy() {
		s[l] = 0.01
	}
	for l, v := range over {
		s[l] = v
	}
	return s
}

func TestDeriveRejectsPartialScores(t *testing.T) {
	t.Parallel()

	s := scoresWith(nil)
	delete(s, LabelDelay)

	_, err := NewDeriver().Derive("some text", s)
	if err == nil {
		t.Fatalf("expected error for partial score map")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestThresholdsAreStrictlyGreater(t *testing.T) {
	t.Parallel()

	d := NewDeriver()

	at, err := d.Derive("no keywords here", scoresWith(map[Label]float64{LabelDoctorAttitude: 0.8}))
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if at.ProviderQuality {
		t.Fatalf("score at the threshold must not raise the flag")
	}

	over, err := d.Derive("no keywords here", scoresWith(map[Label]float64{LabelDoctorAttitude: 0.81}))
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if !over.ProviderQuality {
		t.Fatalf("score over the threshold must raise the flag")
	}
}

func TestEachGateFiresItsFlag(t *testing.T) {
	t.Parallel()

	// One gate per flag, scored just over its threshold. Text carries no
	// keywords so only the score gates act.
	cases := []struct {
		name   string
		scores map[Label]float64
		check  func(FlagSet) bool
	}{
		{"health benefits via vitamin c", map[Label]float64{LabelVitaminCLack: 0.71}, func(f FlagSet) bool { return f.HealthBenefitsCoverage }},
		{"provider quality via cleanliness", map[Label]float64{LabelCleanliness: 0.995}, func(f FlagSet) bool { return f.ProviderQuality }},
		{"rcc via call center agents", map[Label]float64{LabelCallCenterAgents: 0.91}, func(f FlagSet) bool { return f.RCCQuality }},
		{"education via benefit confusion", map[Label]float64{LabelBenefitConfusion: 0.96}, func(f FlagSet) bool { return f.CustomerEducation }},
		{"network via nearby hospitals", map[Label]float64{LabelNearbyHospitals: 0.96}, func(f FlagSet) bool { return f.ProviderNetwork }},
		{"tech via app dysfunction", map[Label]float64{LabelAppDysfunction: 0.96}, func(f FlagSet) bool { return f.TechIssues }},
		{"medical staff via nurse attitude", map[Label]float64{LabelNurseAttitude: 0.91}, func(f FlagSet) bool { return f.MedicalStaff }},
		{"reception via receptionist attitude", map[Label]float64{LabelReceptionist: 0.91}, func(f FlagSet) bool { return f.ReceptionistFrontDesk }},
		{"facility via building quality", map[Label]float64{LabelBuildingQuality: 0.985}, func(f FlagSet) bool { return f.FacilityQuality }},
		{"medication via medication quality", map[Label]float64{LabelMedicationQuality: 0.96}, func(f FlagSet) bool { return f.MedicationQuality }},
	}

	d := NewDeriver()
	for _, tc := range cases {
		flags, err := d.Derive("nothing remarkable", scoresWith(tc.scores))
		if err != nil {
			t.Fatalf("%s: Derive error: %v", tc.name, err)
		}
		if !tc.check(flags) {
			t.Fatalf("%s: flag not raised", tc.name)
		}
	}
}

func TestGateTablesMatchCalibratedThresholds(t *testing.T) {
	t.Parallel()

	// Every score gate, pinned label by label.
	tables := []struct {
		name  string
		gates []gate
		want  []gate
	}{
		{"health benefits coverage", healthBenefitsGates, []gate{
			{LabelVitaminCLack, 0.7},
			{LabelPaediatricCareLack, 0.9},
			{LabelMedicalBenefitsLack, 0.9},
			{LabelTyphoidDrugsLack, 0.9},
		}},
		{"provider quality", providerQualityGates, []gate{
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
		}},
		{"rcc quality", rccQualityGates, []gate{
			{LabelCallCenterAgents, 0.9},
			{LabelPhoneResponse, 0.95},
			{LabelPhoneCalls, 0.9},
		}},
		{"provider wait times", waitTimesGates, []gate{
			{LabelDoctorWait, 0.9},
			{LabelLongQueues, 0.9},
			{LabelTestResultDelay, 0.99},
		}},
		{"medication related", medicationRelatedGates, []gate{
			{LabelPharmacyPickupGap, 0.9},
			{LabelMedicationPickup, 0.9},
		}},
		{"customer education", customerEducationGates, []gate{
			{LabelBenefitConfusion, 0.95},
			{LabelProviderChangeComms, 0.95},
		}},
		{"provider network", providerNetworkGates, []gate{
			{LabelNearbyHospitals, 0.95},
		}},
		{"tech issues", techIssuesGates, []gate{
			{LabelInternetIssue, 0.95},
			{LabelAppDysfunction, 0.95},
		}},
		{"medical staff", medicalStaffGates, []gate{
			{LabelDoctorAttitude, 0.9},
			{LabelNurseAttitude, 0.9},
		}},
		{"receptionist front desk", receptionistFrontDeskGates, []gate{
			{LabelReceptionist, 0.9},
			{LabelFrontDesk, 0.95},
		}},
		{"facility quality", facilityQualityGates, []gate{
			{LabelBuildingQuality, 0.98},
			{LabelPlaceHygiene, 0.98},
			{LabelHospitalCleanliness, 0.98},
		}},
		{"medication quality", medicationQualityGates, []gate{
			{LabelMedicationQuality, 0.95},
		}},
	}

	for _, tc := range tables {
		if len(tc.gates) != len(tc.want) {
			t.Fatalf("%s: %d gates, want %d", tc.name, len(tc.gates), len(tc.want))
		}
		for i, g := range tc.gates {
			if g != tc.want[i] {
				t.Fatalf("%s gate %d: {%s %v}, want {%s %v}",
					tc.name, i, g.label, g.over, tc.want[i].label, tc.want[i].over)
			}
		}
	}

	aux := []struct {
		name string
		got  gate
		want gate
	}{
		{"waiting time", waitTimeRelatedGate, gate{LabelWaitingTime, 0.99}},
		{"time related", timeRelatedGate, gate{LabelTimeRelated, 0.99}},
		{"access related", accessRelatedGate, gate{LabelAccessRelated, 0.99}},
		{"doctor related", doctorRelatedGate, gate{LabelDoctorRelated, 0.99}},
		{"nurse related", nurseRelatedGate, gate{LabelNurseRelated, 0.99}},
		{"clinic related", clinicRelatedGate, gate{LabelClinicRelated, 0.99}},
		{"delivery related", deliveryRelatedGate, gate{LabelDeliveryRelated, 0.98}},
		{"customer service", customerServiceGate, gate{LabelCustomerService, 0.99}},
		{"delay", delayGate, gate{LabelDelay, 0.99}},
		{"medication treatment", medTreatmentGate, gate{LabelMedTreatmentDrug, 0.9}},
	}
	for _, tc := range aux {
		if tc.got != tc.want {
			t.Fatalf("%s gate: {%s %v}, want {%s %v}",
				tc.name, tc.got.label, tc.got.over, tc.want.label, tc.want.over)
		}
	}
}

func TestDoctorSignalRaisesMedicalStaffAndProviderQuality(t *testing.T) {
	t.Parallel()

	flags, err := NewDeriver().Derive("no keywords", scoresWith(map[Label]float64{LabelDoctorRelated: 0.995}))
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if !flags.MedicalStaff {
		t.Fatalf("doctor signal must raise medical staff")
	}
	if !flags.ProviderQuality {
		t.Fatalf("doctor signal must raise provider quality")
	}
}

func TestUnconsumedSignalsDoNotLeak(t *testing.T) {
	t.Parallel()

	// These auxiliary labels feed no flag and no override on their own.
	flags, err := NewDeriver().Derive("fine overall", scoresWith(map[Label]float64{
		LabelNurseRelated:    0.995,
		LabelWaitingTime:     0.995,
		LabelCustomerService: 0.995,
	}))
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if flags != (FlagSet{}) {
		t.Fatalf("auxiliary-only scores raised flags: %+v", flags)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	d := NewDeriver()
	scores := scoresWith(map[Label]float64{
		LabelDoctorAttitude: 0.85,
		LabelDelay:          0.995,
		LabelTimeRelated:    0.995,
	})
	text := "the approval code took a week"

	first, err := d.Derive(text, scores)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := d.Derive(text, scores)
		if err != nil {
			t.Fatalf("Derive error: %v", err)
		}
		if again != first {
			t.Fatalf("repeat derivation diverged: %+v vs %+v", again, first)
		}
	}
}

func TestRudeDoctorsLongWait(t *testing.T) {
	t.Parallel()

	flags, err := NewDeriver().Derive(
		"The doctors were rude and I waited 2 hours",
		scoresWith(map[Label]float64{
			LabelDoctorAttitude: 0.85,
			LabelDoctorWait:     0.92,
		}),
	)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	if !flags.ProviderQuality {
		t.Fatalf("doctor attitude over .8 must raise provider quality")
	}
	if !flags.MedicalStaff {
		t.Fatalf("doctors keyword must raise medical staff")
	}
	// The wait-time score fired the initial gate, but the recompute step
	// drops it: neither time nor medication signals are present.
	if flags.ProviderWaitTimes {
		t.Fatalf("wait times must be recomputed away")
	}

	main, sub := Reduce(flags)
	if main != "provider_quality" {
		t.Fatalf("unexpected main topic: %q", main)
	}
	if sub != "medical_staff" {
		t.Fatalf("unexpected sub topic: %q", sub)
	}
}
