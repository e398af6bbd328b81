package workflow

import "testing"

func TestKindCapabilities(t *testing.T) {
	tests := []struct {
		kind string
		want Capabilities
	}{
		{KindStart, Capabilities{Deletable: false, AllowsIncoming: false, AllowsOutgoing: true}},
		{KindEnd, Capabilities{Deletable: false, AllowsIncoming: true, AllowsOutgoing: false}},
		{KindLLM, Capabilities{Deletable: true, AllowsIncoming: true, AllowsOutgoing: true}},
		{"some_future_kind", Capabilities{Deletable: true, AllowsIncoming: true, AllowsOutgoing: true}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := KindCapabilities(tt.kind); got != tt.want {
				t.Errorf("KindCapabilities(%q) = %+v, want %+v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookupComponentType(t *testing.T) {
	ct, ok := LookupComponentType(KindLLM)
	if !ok {
		t.Fatal("expected llm in the palette")
	}
	if ct.Name != "LLM Model" || ct.Category != "AI Models" {
		t.Errorf("unexpected palette entry %+v", ct)
	}

	if _, ok := LookupComponentType(KindStart); ok {
		t.Error("sentinel kinds should not be palette entries")
	}
	if _, ok := LookupComponentType("nope"); ok {
		t.Error("unknown kinds should not be palette entries")
	}
}

func TestComponentTypesByCategory(t *testing.T) {
	grouped := ComponentTypesByCategory()
	total := 0
	for _, entries := range grouped {
		total += len(entries)
	}
	if total != len(ComponentTypes()) {
		t.Errorf("grouping lost entries: %d grouped vs %d total", total, len(ComponentTypes()))
	}
	if len(grouped["Tools"]) != 3 {
		t.Errorf("expected 3 tool entries, got %d", len(grouped["Tools"]))
	}
}

func TestLinkRequired(t *testing.T) {
	for _, kind := range []string{KindLLM, KindMCPTool, KindKnowledgeRetriever} {
		if !LinkRequired(kind) {
			t.Errorf("expected %q to require a link", kind)
		}
	}
	for _, kind := range []string{KindStart, KindEnd, KindCondition, KindTransform} {
		if LinkRequired(kind) {
			t.Errorf("expected %q to not require a link", kind)
		}
	}
}

func TestIsSentinel(t *testing.T) {
	if !IsSentinel(KindStart) || !IsSentinel(KindEnd) {
		t.Error("start and end are sentinels")
	}
	if IsSentinel(KindLLM) {
		t.Error("llm is not a sentinel")
	}
}
