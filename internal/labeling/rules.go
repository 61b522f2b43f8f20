package labeling

import "strings"

// rule is one override step of the cascade. Rules run in declaration order
// over a by-value row state, so a later rule sees, and may undo, every
// earlier rule's effect.
type rule struct {
	name string
	when func(rowState) bool
	then func(rowState) rowState
}

func applyRules(st rowState, rules []rule) rowState {
	for _, r := range rules {
		if r.when(st) {
			st = r.then(st)
		}
	}
	return st
}

// mentions matches case-insensitive substrings against the row text, which
// thresholdPass has already lowercased.
func mentions(words ...string) func(rowState) bool {
	return func(st rowState) bool {
		for _, w := range words {
			if strings.Contains(st.text, w) {
				return true
			}
		}
		return false
	}
}

func always(rowState) bool { return true }

// overrideRules returns the cascade. The order is load-bearing: reordering
// changes outputs.
func overrideRules() []rule {
	return []rule{
		{
			name: "drug mention without delivery",
			when: func(st rowState) bool { return st.medTreatmentDrug && !st.deliveryRelated },
			then: func(st rowState) rowState { st.flags.ProviderQuality = true; return st },
		},
		{
			name: "medication pickup without delivery",
			when: func(st rowState) bool { return st.medicationRelated && !st.deliveryRelated },
			then: func(st rowState) rowState { st.flags.ProviderQuality = true; return st },
		},
		{
			name: "customer service keyword",
			when: mentions("customer service"),
			then: func(st rowState) rowState { st.flags.RCCQuality = true; return st },
		},
		{
			name: "mosquitoes keyword",
			when: mentions("mosquitoes"),
			then: func(st rowState) rowState { st.flags.ProviderQuality = true; return st },
		},
		{
			name: "on-site visit keyword",
			when: mentions("during my visit"),
			then: func(st rowState) rowState {
				st.flags.ProviderQuality = true
				st.flags.RCCQuality = false
				return st
			},
		},
		{
			name: "doctor signal",
			when: func(st rowState) bool { return st.doctorRelated },
			then: func(st rowState) rowState { st.flags.ProviderQuality = true; return st },
		},
		{
			name: "gym keyword",
			when: mentions("gym"),
			then: func(st rowState) rowState {
				st.flags.ProviderQuality = true
				st.flags.RCCQuality = false
				return st
			},
		},
		{
			name: "access and time signals",
			when: func(st rowState) bool { return st.accessRelated && st.timeRelated },
			then: func(st rowState) rowState { st.flags.ProviderWaitTimes = true; return st },
		},
		{
			name: "delay outside call center",
			when: func(st rowState) bool { return st.delay && !st.flags.RCCQuality },
			then: func(st rowState) rowState { st.flags.ProviderWaitTimes = true; return st },
		},
		{
			name: "staff keywords",
			when: mentions("doctors", "nurse", "dentist", "staff", "massage"),
			then: func(st rowState) rowState { st.flags.MedicalStaff = true; return st },
		},
		{
			name: "facility keywords",
			when: mentions("ambience", "welcome environment", "clean", "facilities", "empathy", "hospital"),
			then: func(st rowState) rowState { st.flags.FacilityQuality = true; return st },
		},
		{
			name: "treatment keyword",
			when: mentions("treatment"),
			then: func(st rowState) rowState { st.flags.MedicationQuality = true; return st },
		},
		{
			// Recomputes wait times from the two auxiliary signals,
			// replacing whatever the threshold pass and the two wait-time
			// overrides above produced. The keyword overrides below can
			// still re-raise the flag.
			name: "wait times recompute",
			when: always,
			then: func(st rowState) rowState {
				st.flags.ProviderWaitTimes = st.timeRelated && st.medicationRelated
				return st
			},
		},
		{
			name: "wait time keywords",
			when: mentions("delay", "computerized process", "code", "approved", "timelineness"),
			then: func(st rowState) rowState { st.flags.ProviderWaitTimes = true; return st },
		},
		{
			name: "lack keyword",
			when: mentions("lack"),
			then: func(st rowState) rowState { st.flags.HealthBenefitsCoverage = true; return st },
		},
	}
}
