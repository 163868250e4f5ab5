package playlist

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/jscyril/grootman/api"
)

// Queue holds the play order of a collection together with the order it
// was loaded in. It is owned by a single controller and is not safe for
// concurrent use.
type Queue struct {
	tracks   []api.Track
	original []api.Track // Order as loaded, restored when shuffle is disabled
}

// NewQueue creates a new empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Set replaces the queue contents and records them as the original order
func (q *Queue) Set(tracks []api.Track) {
	q.original = reindex(tracks)
	q.tracks = reindex(tracks)
}

// Shuffle permutes the play order in place (Fisher-Yates) and reassigns
// indices positionally.
func (q *Queue) Shuffle(rng *rand.Rand) {
	for i := len(q.tracks) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
	}
	for i := range q.tracks {
		q.tracks[i].Index = i
	}
}

// Restore replaces the play order with a fresh copy of the original order
func (q *Queue) Restore() {
	q.tracks = reindex(q.original)
}

// IndexOf returns the position of the track with the given file reference,
// or -1 when it is not in the queue.
func (q *Queue) IndexOf(filePath string) int {
	_, i, ok := lo.FindIndexOf(q.tracks, func(t api.Track) bool {
		return t.FilePath == filePath
	})
	if !ok {
		return -1
	}
	return i
}

// At returns the track at index i
func (q *Queue) At(i int) (api.Track, bool) {
	if i < 0 || i >= len(q.tracks) {
		return api.Track{}, false
	}
	return q.tracks[i], true
}

// All returns a copy of the tracks in play order
func (q *Queue) All() []api.Track {
	result := make([]api.Track, len(q.tracks))
	copy(result, q.tracks)
	return result
}

// Original returns a copy of the tracks in load order
func (q *Queue) Original() []api.Track {
	result := make([]api.Track, len(q.original))
	copy(result, q.original)
	return result
}

// Len returns the number of tracks in the queue
func (q *Queue) Len() int {
	return len(q.tracks)
}

// Target computes the index next/previous should move to. step is +1 for
// next and -1 for previous; current is -1 when nothing is selected and is
// then treated as 0. With shuffle on, a uniform draw is taken, redrawn while
// it lands on current and there is more than one track.
func (q *Queue) Target(current, step int, repeat api.RepeatMode, shuffle bool, rng *rand.Rand) int {
	n := len(q.tracks)
	if n == 0 {
		return -1
	}
	if shuffle {
		for {
			i := rng.Intn(n)
			if n == 1 || i != current {
				return i
			}
		}
	}
	if current < 0 {
		current = 0
	}
	if repeat == api.RepeatOne {
		return current
	}
	return ((current+step)%n + n) % n
}

// reindex copies tracks and assigns positional indices
func reindex(tracks []api.Track) []api.Track {
	return lo.Map(tracks, func(t api.Track, i int) api.Track {
		t.Index = i
		return t
	})
}
