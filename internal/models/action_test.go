package models

import "testing"

func TestActionValidate(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		wantErr bool
	}{
		{"valid reallocate", Action{Type: ActionReallocateRow, SourceZone: "a", TargetZone: "b", Row: "R3"}, false},
		{"reallocate missing source", Action{Type: ActionReallocateRow, TargetZone: "b", Row: "R3"}, true},
		{"reallocate bad row", Action{Type: ActionReallocateRow, SourceZone: "a", TargetZone: "b", Row: "R99"}, true},
		{"valid merge", Action{Type: ActionMergeZones, SourceZone: "a", TargetZone: "b"}, false},
		{"merge into itself", Action{Type: ActionMergeZones, SourceZone: "a", TargetZone: "a"}, true},
		{"valid retire", Action{Type: ActionRetireZone, SourceZone: "a", TargetZone: "b"}, false},
		{"expand without row", Action{Type: ActionExpandZone, TargetZone: "b"}, false},
		{"expand with preference", Action{Type: ActionExpandZone, TargetZone: "b", Row: "R12"}, false},
		{"expand bad row", Action{Type: ActionExpandZone, TargetZone: "b", Row: "nope"}, true},
		{"valid orphan", Action{Type: ActionAssignOrphanRow, TargetZone: "b", Row: "R7"}, false},
		{"orphan without row", Action{Type: ActionAssignOrphanRow, TargetZone: "b"}, true},
		{"unknown type", Action{Type: "shuffle"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"red", WineRed},
		{"RED", WineRed},
		{"white", WineWhite},
		{"rose", WineRose},
		{"rosé", WineRose},
		{"sparkling", WineSparkling},
		{"Prosecco", WineSparkling},
		{"champagne brut", WineSparkling},
		{"orange", WineWhite},
		{"", WineWhite},
	}
	for _, tt := range tests {
		if got := NormalizeColor(tt.raw); got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestRowMapCloneIsDeep(t *testing.T) {
	m := RowMap{"a": {"R1", "R2"}}
	c := m.Clone()
	c["a"][0] = "R9"
	if m["a"][0] != "R1" {
		t.Error("Clone shares row slices with the original")
	}
}

func TestBuildRowMapSortsRows(t *testing.T) {
	m := BuildRowMap([]*Allocation{
		{ZoneID: "a", Rows: []string{"R10", "R2"}},
	})
	if m["a"][0] != "R2" || m["a"][1] != "R10" {
		t.Errorf("BuildRowMap rows = %v, want numeric order", m["a"])
	}
	if owner := m.OwnerOf("R10"); owner != "a" {
		t.Errorf("OwnerOf(R10) = %q, want a", owner)
	}
	if owner := m.OwnerOf("R5"); owner != "" {
		t.Errorf("OwnerOf(R5) = %q, want empty", owner)
	}
}
