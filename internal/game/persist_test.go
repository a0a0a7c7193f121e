package game

import (
	"encoding/json"
	"errors"
	"testing"
)

func roundTrip(t *testing.T, s *GameSession) SavedSession {
	t.Helper()
	data, err := json.Marshal(s.Save())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var saved SavedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return saved
}

func TestRestoreMidHole(t *testing.T) {
	set := testSet(pondHole(), shortHole("two", 2))
	s, err := NewSession("s1", set, ModeCampaign, testField, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SelectClub(ClubWedge); err != nil {
		t.Fatal(err)
	}
	putt(t, s, 30)
	settle(t, s)

	restored, err := RestoreSession(roundTrip(t, s), set)
	if err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}
	want, got := s.Snapshot(), restored.Snapshot()
	if got.Ball != want.Ball || got.Club != ClubWedge || got.Score != want.Score || got.Status != StatusPlaying {
		t.Errorf("restored snapshot differs:\nwant %+v\ngot  %+v", want, got)
	}
	if err := restored.PressAim(got.Ball.Position.Ground()); err != nil {
		t.Errorf("restored session should be playable: %v", err)
	}
}

func TestRestoreHoledRearmsTransition(t *testing.T) {
	set := testSet(shortHole("one", 2), shortHole("two", 2))
	s, err := NewSession("s1", set, ModeCampaign, testField, nil)
	if err != nil {
		t.Fatal(err)
	}
	putt(t, s, 66)
	settle(t, s)

	restored, err := RestoreSession(roundTrip(t, s), set)
	if err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}
	if st := restored.RoundState(); st.Status != StatusHoled {
		t.Fatalf("status = %s", st.Status)
	}
	restored.Advance(NextHoleDelay)
	if st := restored.RoundState(); st.Status != StatusPlaying || st.CurrentHoleIndex != 1 || st.TotalStrokes != 1 {
		t.Errorf("restored session should move on to hole 2: %+v", st)
	}
}

func TestRestoreGameOverKeepsLastPar(t *testing.T) {
	set := testSet(shortHole("one", 2), shortHole("two", 4))
	s, err := NewSession("s1", set, ModeCampaign, testField, nil)
	if err != nil {
		t.Fatal(err)
	}
	putt(t, s, 66)
	settle(t, s)
	s.Advance(NextHoleDelay)
	putt(t, s, 66)
	settle(t, s)
	s.Advance(NextHoleDelay)
	if st := s.RoundState(); st.Status != StatusGameOver {
		t.Fatalf("status = %s", st.Status)
	}

	restored, err := RestoreSession(roundTrip(t, s), set)
	if err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}
	want, got := s.ScoreFeed(), restored.ScoreFeed()
	if got != want || got.Par != 4 {
		t.Errorf("restored score feed differs:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestRestoreRejectsChangedCourses(t *testing.T) {
	s, err := NewSession("s1", testSet(shortHole("one", 2)), ModeCampaign, testField, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = RestoreSession(s.Save(), testSet(shortHole("one", 3)))
	if !errors.Is(err, ErrCourseChanged) {
		t.Errorf("expected ErrCourseChanged, got %v", err)
	}
}
