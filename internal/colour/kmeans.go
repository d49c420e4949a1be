package colour

import (
	"cmp"
	"image"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// KMeansExtractor clusters sampled pixels in CIE L*a*b* space, so colours that
// look alike merge even when their RGB values differ slightly.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64 // average centroid movement (ΔE) that ends iteration
	seed          uint64
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   0.5,
		seed:          0x9e3779b97f4a7c15,
	}
}

// Extract returns up to count cluster centres, largest cluster first.
// It samples the same bounded raster as the frequency extractor.
func (e *KMeansExtractor) Extract(img image.Image, count int) ([]string, error) {
	if count < 1 {
		count = DefaultColourCount
	}
	raster, err := Rasterise(img)
	if err != nil {
		return nil, err
	}
	samples := samplePixels(raster.Pix)
	if len(samples) == 0 {
		return []string{}, nil
	}

	points := make([]lab, len(samples))
	unique := make(map[RGB]struct{})
	for i, s := range samples {
		points[i] = labFromRGB(s)
		unique[s] = struct{}{}
	}
	// Not enough distinct colours to cluster: frequency order is exact.
	if len(unique) <= count {
		return QuantizePixels(raster.Pix, count), nil
	}

	rng := rand.New(rand.NewPCG(e.seed, uint64(len(points))))
	centroids, weights := e.kmeans(rng, points, count)

	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(weights[b], weights[a])
	})

	colours := make([]string, 0, len(order))
	for _, idx := range order {
		if weights[idx] == 0 {
			continue
		}
		colours = append(colours, centroids[idx].hex())
	}
	return colours, nil
}

// lab is a point in CIE L*a*b* space.
type lab struct {
	L, A, B float64
}

func labFromRGB(rgb RGB) lab {
	c := colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
	l, a, b := c.Lab()
	return lab{L: l, A: a, B: b}
}

func (p lab) distance(other lab) float64 {
	dl := p.L - other.L
	da := p.A - other.A
	db := p.B - other.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

func (p lab) hex() string {
	return colorful.Lab(p.L, p.A, p.B).Clamped().Hex()
}

// kmeans clusters points into k groups and returns the centroids with the
// number of points assigned to each.
func (e *KMeansExtractor) kmeans(rng *rand.Rand, points []lab, k int) ([]lab, []int) {
	centroids := initialiseCentroids(rng, points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if iter > 0 && changed == 0 {
			break
		}

		next := recalculateCentroids(rng, points, assignments, k)
		movement := 0.0
		for i := range centroids {
			movement += centroids[i].distance(next[i])
		}
		centroids = next
		if movement/float64(k) < e.convergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	weights := make([]int, k)
	for _, p := range points {
		weights[nearestCentroid(p, centroids)]++
	}
	return centroids, weights
}

// initialiseCentroids seeds centroids with k-means++.
func initialiseCentroids(rng *rand.Rand, points []lab, k int) []lab {
	centroids := make([]lab, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			d := p.distance(centroids[nearestCentroid(p, centroids)])
			distances[i] = d * d
			total += distances[i]
		}
		if total == 0 {
			break
		}

		target := rng.Float64() * total
		cumulative := 0.0
		picked := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				picked = i
				break
			}
		}
		centroids = append(centroids, points[picked])
	}
	return centroids
}

func nearestCentroid(p lab, centroids []lab) int {
	nearest := 0
	minDist := math.MaxFloat64
	for i, c := range centroids {
		if d := p.distance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

func recalculateCentroids(rng *rand.Rand, points []lab, assignments []int, k int) []lab {
	sums := make([]lab, k)
	counts := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		sums[c].L += p.L
		sums[c].A += p.A
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]lab, k)
	for i := range k {
		if counts[i] == 0 {
			// Empty cluster: restart it on a random sample.
			centroids[i] = points[rng.IntN(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = lab{L: sums[i].L / n, A: sums[i].A / n, B: sums[i].B / n}
	}
	return centroids
}
