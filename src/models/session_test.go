package models

import "testing"

func TestStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   SessionStatus
		terminal bool
	}{
		{StatusPending, false},
		{StatusScheduled, false},
		{StatusActive, false},
		{StatusEnded, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.terminal {
			t.Errorf("%s.IsTerminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestNonTerminalStatuses(t *testing.T) {
	for _, status := range NonTerminalStatuses() {
		if status.IsTerminal() {
			t.Errorf("NonTerminalStatuses contains terminal status %s", status)
		}
	}
}

func TestKindIsValid(t *testing.T) {
	if !KindVoice.IsValid() || !KindVideo.IsValid() {
		t.Error("voice and video must be valid kinds")
	}
	if SessionKind("fax").IsValid() {
		t.Error("unknown kind reported valid")
	}
}

func TestCaseIsParticipant(t *testing.T) {
	lawyer := "lawyer-1"
	c := &Case{CaseID: "c1", ClientID: "client-1", AssignedLawyerID: &lawyer}

	if !c.IsParticipant("client-1") {
		t.Error("client should be a participant")
	}
	if !c.IsParticipant("lawyer-1") {
		t.Error("assigned lawyer should be a participant")
	}
	if c.IsParticipant("stranger") || c.IsParticipant("") {
		t.Error("non-participants accepted")
	}

	unassigned := &Case{CaseID: "c2", ClientID: "client-1"}
	if unassigned.IsParticipant("lawyer-1") {
		t.Error("lawyer of a different case accepted on unassigned case")
	}
}
