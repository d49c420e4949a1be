package related

import "github.com/gitkarasune/pix/internal/photo"

// Direction steps through a pool.
type Direction int

const (
	Next Direction = iota
	Prev
)

// Step returns the photo after (or before) current in pool, wrapping at both
// ends. It returns false when current is nil or not in pool.
func Step(pool []photo.Photo, current *photo.Photo, dir Direction) (photo.Photo, bool) {
	if current == nil || len(pool) == 0 {
		return photo.Photo{}, false
	}
	idx := -1
	for i, p := range pool {
		if p.ID == current.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return photo.Photo{}, false
	}

	n := len(pool)
	if dir == Prev {
		return pool[(idx-1+n)%n], true
	}
	return pool[(idx+1)%n], true
}
