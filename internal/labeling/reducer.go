package labeling

import "strings"

// Topic names as persisted in the output table, in reduction order.
const (
	TopicHealthBenefitsCoverage = "health_benefits_coverage"
	TopicProviderQuality        = "provider_quality"
	TopicRCCQuality             = "rcc_quality"
	TopicProviderWaitTimes      = "provider_wait_times"
	TopicCustomerEducation      = "customer_education"
	TopicProviderNetwork        = "provider_network"
	TopicTechIssues             = "tech_issues"

	TopicMedicalStaff          = "medical_staff"
	TopicReceptionistFrontDesk = "receptionist_front_desk"
	TopicFacilityQuality       = "facility_quality"
	TopicMedicationQuality     = "medication_quality"

	// SubTopicGeneric stands in when no sub-category flag is raised.
	SubTopicGeneric = "generic"
)

// Reduce collapses the flag groups into the main and sub topic strings. Main
// topics stay empty when nothing fired; sub topics fall back to the generic
// sentinel.
func Reduce(f FlagSet) (mainTopic, subTopic string) {
	main := make([]string, 0, 7)
	if f.HealthBenefitsCoverage {
		main = append(main, TopicHealthBenefitsCoverage)
	}
	if f.ProviderQuality {
		main = append(main, TopicProviderQuality)
	}
	if f.RCCQuality {
		main = append(main, TopicRCCQuality)
	}
	if f.ProviderWaitTimes {
		main = append(main, TopicProviderWaitTimes)
	}
	if f.CustomerEducation {
		main = append(main, TopicCustomerEducation)
	}
	if f.ProviderNetwork {
		main = append(main, TopicProviderNetwork)
	}
	if f.TechIssues {
		main = append(main, TopicTechIssues)
	}

	sub := make([]string, 0, 4)
	if f.MedicalStaff {
		sub = append(sub, TopicMedicalStaff)
	}
	if f.ReceptionistFrontDesk {
		sub = append(sub, TopicReceptionistFrontDesk)
	}
	if f.FacilityQuality {
		sub = append(sub, TopicFacilityQuality)
	}
	if f.MedicationQuality {
		sub = append(sub, TopicMedicationQuality)
	}

	subTopic = strings.Join(sub, ", ")
	if subTopic == "" {
		subTopic = SubTopicGeneric
	}
	return strings.Join(main, ", "), subTopic
}
