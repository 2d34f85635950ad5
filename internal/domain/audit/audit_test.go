package audit

import (
	"strings"
	"testing"
	"time"
)

func TestBuildBaseQueryNumbersPlaceholders(t *testing.T) {
	query, args := buildBaseQuery("SELECT COUNT(1)", "t1", Filter{Action: ActionEvaluationReset, ActorUser: "u1"})
	if !strings.Contains(query, "action = $2") || !strings.Contains(query, "actor_user_id::text = $3") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 || args[0] != "t1" || args[1] != ActionEvaluationReset || args[2] != "u1" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildBaseQueryNoFilter(t *testing.T) {
	query, args := buildBaseQuery("SELECT 1", "t1", Filter{})
	if strings.Contains(query, " AND ") {
		t.Fatalf("unexpected filter in query: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected tenant arg only, got %v", args)
	}
}

func TestBuildBaseQueryDateRange(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := since.AddDate(0, 1, 0)
	query, args := buildBaseQuery("SELECT 1", "t1", Filter{EntityType: "evaluation", Since: since, Until: until})
	if !strings.Contains(query, "created_at >= $3") || !strings.Contains(query, "created_at < $4") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 4 || args[2] != since || args[3] != until {
		t.Fatalf("unexpected args: %v", args)
	}
}
