package warehouse

import (
	"strings"
	"testing"

	"NPSLabeler/internal/domain"
)

func TestBuildInsert(t *testing.T) {
	t.Parallel()

	records := []domain.LabeledRecord{
		{
			ResponseText: "the doctors were great",
			MainTopic:    "provider_quality",
			SubTopic:     "medical_staff",
			ServiceType:  "hospital",
		},
		{
			ResponseText: "app kept crashing",
			MainTopic:    "tech_issues",
			SubTopic:     "generic",
			ServiceType:  "telehealth",
		},
	}

	query, args, err := buildInsert(records)
	if err != nil {
		t.Fatalf("buildInsert error: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO final_nps_op") {
		t.Fatalf("unexpected insert target: %s", query)
	}
	if !strings.Contains(query, "(customer_response,main_topic,sub_topic,type_service)") {
		t.Fatalf("unexpected column list: %s", query)
	}
	if strings.Count(query, "(?,?,?,?)") != 2 {
		t.Fatalf("expected one placeholder tuple per record: %s", query)
	}

	if len(args) != 8 {
		t.Fatalf("expected 8 bound args, got %d", len(args))
	}
	if args[0] != "the doctors were great" || args[3] != "hospital" {
		t.Fatalf("first record args out of order: %v", args[:4])
	}
	if args[4] != "app kept crashing" || args[7] != "telehealth" {
		t.Fatalf("second record args out of order: %v", args[4:])
	}
}
