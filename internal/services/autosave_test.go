package services

import (
	"sync"
	"testing"
	"time"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/store"
)

const (
	testDebounce = 40 * time.Millisecond
	testFloor    = 60 * time.Millisecond
)

func newTestAutosave(onState func(SaveState)) (*AutosaveCoordinator, *store.Projects) {
	projects := store.NewProjects(store.NewMemoryStore())
	a := NewAutosaveCoordinator(projects, nil, testDebounce, testFloor, onState)
	return a, projects
}

func TestAutosave_DebounceCoalesces(t *testing.T) {
	a, projects := newTestAutosave(nil)
	defer a.Close()

	draft := models.ProjectRecord{Title: "Solar Rover"}
	draft = a.Update(draft)
	for i := 0; i < 5; i++ {
		draft.Description = "rev " + string(rune('a'+i))
		draft = a.Update(draft)
	}

	time.Sleep(testDebounce + testFloor + 50*time.Millisecond)

	_, rev, err := projects.Get(draft.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rev != 1 {
		t.Errorf("burst of updates should commit once, revision = %d", rev)
	}

	rec, _, _ := projects.Get(draft.ID)
	if rec.Description != "rev e" {
		t.Errorf("committed Description = %q, expected the last update", rec.Description)
	}
}

func TestAutosave_CancelAndRearm(t *testing.T) {
	a, projects := newTestAutosave(nil)
	defer a.Close()

	draft := a.Update(models.ProjectRecord{Title: "Claw"})

	// Keep poking before the window closes; no commit should land
	for i := 0; i < 3; i++ {
		time.Sleep(testDebounce / 2)
		draft.Title = "Claw"
		draft = a.Update(draft)
	}

	if _, _, err := projects.Get(draft.ID); err != store.ErrNotFound {
		t.Errorf("commit should still be pending, got err = %v", err)
	}

	time.Sleep(testDebounce + testFloor + 50*time.Millisecond)

	if _, _, err := projects.Get(draft.ID); err != nil {
		t.Errorf("commit should land after a quiet window, got err = %v", err)
	}
}

func TestAutosave_IDStableAcrossCommits(t *testing.T) {
	a, projects := newTestAutosave(nil)
	defer a.Close()

	draft := a.Update(models.ProjectRecord{Title: "Motor"})
	id := draft.ID
	if id == "" {
		t.Fatal("Update should mint an id")
	}

	if _, err := a.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	draft.Description = "second save"
	draft = a.Update(draft)
	if draft.ID != id {
		t.Errorf("id changed across saves: %q -> %q", id, draft.ID)
	}
	if _, err := a.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	all := projects.All()
	if len(all) != 1 {
		t.Fatalf("re-save should replace, not append: %d records", len(all))
	}
	if all[0].ID != id {
		t.Errorf("stored id = %q, expected %q", all[0].ID, id)
	}
	if all[0].Description != "second save" {
		t.Errorf("Description = %q", all[0].Description)
	}
}

func TestAutosave_UpdateIgnoresCallerID(t *testing.T) {
	a, _ := newTestAutosave(nil)
	defer a.Close()

	a.seed(models.ProjectRecord{ID: "p1"})
	draft := a.Update(models.ProjectRecord{ID: "some-other-project", Title: "X"})
	if draft.ID != "p1" {
		t.Errorf("ID = %q, the seeded identity must win", draft.ID)
	}

	// A fresh coordinator mints its own id rather than adopting one
	b, _ := newTestAutosave(nil)
	defer b.Close()

	claimed := b.Update(models.ProjectRecord{ID: "claimed", Title: "Y"})
	if claimed.ID == "claimed" || claimed.ID == "" {
		t.Errorf("ID = %q, expected a freshly minted id", claimed.ID)
	}
}

func TestAutosave_FailedCommitSurfacesError(t *testing.T) {
	mem := store.NewMemoryStore()
	projects := store.NewProjects(mem)
	a := NewAutosaveCoordinator(projects, nil, testDebounce, testFloor, nil)
	defer a.Close()

	draft := a.Update(models.ProjectRecord{Title: "Flaky"})
	if _, err := a.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	savedAt := a.State().LastSaved

	// Break the stored record so the next commit cannot land
	mem.Corrupt(store.CollectionProjects, draft.ID)

	draft.Description = "will not land"
	a.Update(draft)
	time.Sleep(testDebounce + testFloor + 50*time.Millisecond)

	state := a.State()
	if state.Saving {
		t.Error("indicator should clear after a failed commit")
	}
	if state.LastError == "" {
		t.Error("failed commit should surface in the save state")
	}
	if !state.LastSaved.Equal(savedAt) {
		t.Errorf("LastSaved = %v, must not advance on failure", state.LastSaved)
	}
}

func TestAutosave_FlushCommitsImmediately(t *testing.T) {
	a, projects := newTestAutosave(nil)
	defer a.Close()

	draft := a.Update(models.ProjectRecord{Title: "Lamp"})

	rec, err := a.Flush()
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if rec.ID != draft.ID {
		t.Errorf("committed id = %q, expected %q", rec.ID, draft.ID)
	}
	if rec.Status != models.StatusDraft {
		t.Errorf("Status = %q, expected %q", rec.Status, models.StatusDraft)
	}
	if rec.LastEdited.IsZero() {
		t.Error("commit should stamp LastEdited")
	}

	if _, _, err := projects.Get(draft.ID); err != nil {
		t.Errorf("record should be stored without waiting, got err = %v", err)
	}
}

func TestAutosave_CloseDiscardsPending(t *testing.T) {
	a, projects := newTestAutosave(nil)

	draft := a.Update(models.ProjectRecord{Title: "Abandoned"})
	a.Close()

	time.Sleep(testDebounce + 50*time.Millisecond)

	if _, _, err := projects.Get(draft.ID); err != store.ErrNotFound {
		t.Errorf("pending edits should be discarded on close, got err = %v", err)
	}
}

func TestAutosave_SavingIndicatorFloor(t *testing.T) {
	var mu sync.Mutex
	var transitions []SaveState
	var savingAt, clearedAt time.Time

	a, _ := newTestAutosave(func(s SaveState) {
		mu.Lock()
		defer mu.Unlock()
		transitions = append(transitions, s)
		if s.Saving {
			savingAt = time.Now()
		} else {
			clearedAt = time.Now()
		}
	})
	defer a.Close()

	a.Update(models.ProjectRecord{Title: "Quick"})
	time.Sleep(testDebounce + testFloor + 80*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if len(transitions) != 2 {
		t.Fatalf("expected saving on/off transitions, got %d", len(transitions))
	}
	if !transitions[0].Saving || transitions[1].Saving {
		t.Errorf("transitions should be on then off: %+v", transitions)
	}
	if held := clearedAt.Sub(savingAt); held < testFloor {
		t.Errorf("indicator held %v, expected at least %v", held, testFloor)
	}
	if transitions[1].LastSaved.IsZero() {
		t.Error("LastSaved should be stamped after commit")
	}
}

func TestAutosave_CommitPreservesSocialState(t *testing.T) {
	a, projects := newTestAutosave(nil)
	defer a.Close()

	draft := a.Update(models.ProjectRecord{Title: "Bench"})
	if _, err := a.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// A social write lands between commits
	projects.Mutate(draft.ID, func(p *models.ProjectRecord) error {
		p.Views = 3
		p.Reactions.Love = 2
		return nil
	})

	draft.Description = "new text"
	a.Update(draft)
	rec, err := a.Flush()
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if rec.Views != 3 || rec.Reactions.Love != 2 {
		t.Errorf("social state lost by commit: views=%d love=%d", rec.Views, rec.Reactions.Love)
	}
	if rec.Description != "new text" {
		t.Errorf("Description = %q", rec.Description)
	}
}
