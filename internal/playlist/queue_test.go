package playlist

import (
	"math/rand"
	"testing"

	"github.com/jscyril/grootman/api"
)

func sampleTracks(n int) []api.Track {
	tracks := make([]api.Track, n)
	for i := range tracks {
		name := string(rune('A' + i))
		tracks[i] = api.Track{SongName: name, FilePath: "/" + name + ".mp3", CoverPath: "/" + name + ".png", Index: 99}
	}
	return tracks
}

func filePaths(tracks []api.Track) []string {
	paths := make([]string, len(tracks))
	for i, t := range tracks {
		paths[i] = t.FilePath
	}
	return paths
}

func assertContiguous(t *testing.T, tracks []api.Track) {
	t.Helper()
	for i, tr := range tracks {
		if tr.Index != i {
			t.Errorf("track %q has index %d at position %d", tr.FilePath, tr.Index, i)
		}
	}
}

func TestSetAssignsIndices(t *testing.T) {
	q := NewQueue()
	q.Set(sampleTracks(4))

	if q.Len() != 4 {
		t.Fatalf("Expected 4 tracks, got %d", q.Len())
	}
	assertContiguous(t, q.All())
	assertContiguous(t, q.Original())
}

func TestShuffleIsPermutation(t *testing.T) {
	q := NewQueue()
	q.Set(sampleTracks(8))
	q.Shuffle(rand.New(rand.NewSource(7)))

	assertContiguous(t, q.All())

	seen := make(map[string]bool)
	for _, p := range filePaths(q.All()) {
		seen[p] = true
	}
	for _, p := range filePaths(sampleTracks(8)) {
		if !seen[p] {
			t.Errorf("Track %s lost by shuffle", p)
		}
	}
}

func TestShuffleThenRestoreMatchesOriginal(t *testing.T) {
	q := NewQueue()
	q.Set(sampleTracks(6))
	want := filePaths(q.All())

	q.Shuffle(rand.New(rand.NewSource(42)))
	q.Restore()

	got := filePaths(q.All())
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Restore() = %v, want %v", got, want)
		}
	}
	assertContiguous(t, q.All())
}

func TestRestoreDoesNotAlias(t *testing.T) {
	q := NewQueue()
	q.Set(sampleTracks(3))
	q.Restore()
	q.Shuffle(rand.New(rand.NewSource(1)))

	orig := filePaths(q.Original())
	if orig[0] != "/A.mp3" || orig[1] != "/B.mp3" || orig[2] != "/C.mp3" {
		t.Errorf("Shuffle modified the original order: %v", orig)
	}
}

func TestIndexOf(t *testing.T) {
	q := NewQueue()
	q.Set(sampleTracks(3))

	if got := q.IndexOf("/B.mp3"); got != 1 {
		t.Errorf("IndexOf(/B.mp3) = %d, want 1", got)
	}
	if got := q.IndexOf("/missing.mp3"); got != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", got)
	}
}

func TestAt(t *testing.T) {
	q := NewQueue()
	q.Set(sampleTracks(2))

	if tr, ok := q.At(1); !ok || tr.SongName != "B" {
		t.Errorf("At(1) = %v, %v", tr, ok)
	}
	for _, i := range []int{-1, 2} {
		if _, ok := q.At(i); ok {
			t.Errorf("At(%d) should be out of range", i)
		}
	}
}

func TestTarget(t *testing.T) {
	q := NewQueue()
	q.Set(sampleTracks(3))

	tests := []struct {
		name    string
		current int
		step    int
		repeat  api.RepeatMode
		want    int
	}{
		{"next none", 0, 1, api.RepeatNone, 1},
		{"next none wraps", 2, 1, api.RepeatNone, 0},
		{"next all wraps", 2, 1, api.RepeatAll, 0},
		{"prev none wraps", 0, -1, api.RepeatNone, 2},
		{"prev all", 2, -1, api.RepeatAll, 1},
		{"next one stays", 1, 1, api.RepeatOne, 1},
		{"prev one stays", 2, -1, api.RepeatOne, 2},
		{"next unselected", -1, 1, api.RepeatNone, 1},
		{"prev unselected", -1, -1, api.RepeatNone, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.Target(tt.current, tt.step, tt.repeat, false, nil); got != tt.want {
				t.Errorf("Target(%d, %d, %v) = %d, want %d", tt.current, tt.step, tt.repeat, got, tt.want)
			}
		})
	}
}

func TestTargetNextThenPreviousReturns(t *testing.T) {
	for n := 1; n <= 5; n++ {
		q := NewQueue()
		q.Set(sampleTracks(n))
		for cur := 0; cur < n; cur++ {
			next := q.Target(cur, 1, api.RepeatNone, false, nil)
			if back := q.Target(next, -1, api.RepeatNone, false, nil); back != cur {
				t.Errorf("n=%d: next then previous from %d gave %d", n, cur, back)
			}
		}
	}
}

func TestTargetShuffleAvoidsCurrent(t *testing.T) {
	q := NewQueue()
	q.Set(sampleTracks(3))
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		got := q.Target(1, 1, api.RepeatNone, true, rng)
		if got == 1 || got < 0 || got >= 3 {
			t.Fatalf("shuffle target %d invalid", got)
		}
	}
}

func TestTargetShuffleSingleTrack(t *testing.T) {
	q := NewQueue()
	q.Set(sampleTracks(1))

	if got := q.Target(0, 1, api.RepeatNone, true, rand.New(rand.NewSource(1))); got != 0 {
		t.Errorf("single-track shuffle target = %d, want 0", got)
	}
}

func TestTargetEmpty(t *testing.T) {
	q := NewQueue()
	if got := q.Target(0, 1, api.RepeatNone, false, nil); got != -1 {
		t.Errorf("empty target = %d, want -1", got)
	}
}
