package layout

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sort"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

// Config controls the force simulation. Zero values are replaced with
// the defaults below, which reproduce the rendered graph's behavior.
type Config struct {
	// Iterations is the fixed number of synchronous ticks. There is no
	// convergence check: the cost is bounded and deterministic, at the
	// price of possible under- or over-convergence on large graphs.
	Iterations int
	// ChargeStrength is the global repulsion applied between all node
	// pairs. Negative values push nodes apart.
	ChargeStrength float64
	// LinkRestLength is the spring rest length for each connection.
	LinkRestLength float64
	// CollisionRadius is the minimum separation enforced between any
	// two nodes.
	CollisionRadius float64
}

const (
	defaultIterations      = 200
	defaultChargeStrength  = -250
	defaultLinkRestLength  = 120
	defaultCollisionRadius = 90

	velocityDecay = 0.6
	alphaMin      = 0.001

	// initialRadius and initialAngle place nodes on a phyllotaxis
	// spiral before the first tick, so starting positions are
	// deterministic and non-coincident.
	initialRadius = 10.0
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// DefaultConfig returns the simulation defaults used by the UI.
func DefaultConfig() Config {
	return Config{
		Iterations:      defaultIterations,
		ChargeStrength:  defaultChargeStrength,
		LinkRestLength:  defaultLinkRestLength,
		CollisionRadius: defaultCollisionRadius,
	}
}

func (c Config) withDefaults() Config {
	if c.Iterations <= 0 {
		c.Iterations = defaultIterations
	}
	if c.ChargeStrength == 0 {
		c.ChargeStrength = defaultChargeStrength
	}
	if c.LinkRestLength <= 0 {
		c.LinkRestLength = defaultLinkRestLength
	}
	if c.CollisionRadius <= 0 {
		c.CollisionRadius = defaultCollisionRadius
	}
	return c
}

// Point is a computed 2D node position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type simNode struct {
	id   string
	x, y float64
	vx   float64
	vy   float64
}

type simLink struct {
	source   int
	target   int
	strength float64
}

// Compute runs the force simulation and returns a position per person,
// keyed by person ID. Positions are recomputed from scratch on every
// call; there is no incremental re-layout across input deltas, so
// filtering the graph causes a full re-layout.
//
// Seeding policy: the tie-breaking RNG is seeded from an FNV-1a hash of
// the sorted node IDs, so identical input graphs always produce
// identical positions. An empty graph yields an empty map and a single
// node settles at the origin. Disconnected components each settle near
// the shared origin and may overlap; that is accepted behavior.
func Compute(
	people []common.Person,
	connections []common.Connection,
	cfg Config,
) map[string]Point {
	cfg = cfg.withDefaults()

	positions := make(map[string]Point, len(people))
	if len(people) == 0 {
		return positions
	}

	nodes := make([]*simNode, len(people))
	idxByName := make(map[string]int, len(people))
	for i, p := range people {
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		nodes[i] = &simNode{
			id: p.ID,
			x:  radius * math.Cos(angle),
			y:  radius * math.Sin(angle),
		}
		idxByName[p.Name] = i
	}

	links := make([]simLink, 0, len(connections))
	for _, c := range connections {
		src, ok := idxByName[c.PersonA]
		if !ok {
			continue
		}
		dst, ok := idxByName[c.PersonB]
		if !ok || src == dst {
			continue
		}
		strength := 0.1 * float64(c.MeetingCount)
		if strength > 1 {
			strength = 1
		}
		links = append(links, simLink{source: src, target: dst, strength: strength})
	}

	rng := rand.New(rand.NewSource(seedFor(nodes)))

	alpha := 1.0
	alphaDecay := 1 - math.Pow(alphaMin, 1/float64(cfg.Iterations))

	for i := 0; i < cfg.Iterations; i++ {
		alpha += (0 - alpha) * alphaDecay

		applyLinks(nodes, links, cfg.LinkRestLength, alpha, rng)
		applyCharge(nodes, cfg.ChargeStrength, alpha, rng)
		applyCenter(nodes)

		for _, n := range nodes {
			n.vx *= velocityDecay
			n.vy *= velocityDecay
			n.x += n.vx
			n.y += n.vy
		}

		resolveCollisions(nodes, cfg.CollisionRadius, rng, 1)
	}

	// A final strict separation pass so no two nodes end up inside the
	// collision radius.
	resolveCollisions(nodes, cfg.CollisionRadius, rng, 10*len(nodes))
	applyCenter(nodes)

	for _, n := range nodes {
		positions[n.id] = Point{X: n.x, Y: n.y}
	}
	return positions
}

func seedFor(nodes []*simNode) int64 {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.id
	}
	sort.Strings(ids)

	h := fnv.New64a()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return int64(h.Sum64())
}

// jiggle breaks exact ties between coincident nodes with a tiny seeded
// displacement, keeping the simulation deterministic.
func jiggle(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) * 1e-6
}

func applyLinks(nodes []*simNode, links []simLink, restLength, alpha float64, rng *rand.Rand) {
	for _, l := range links {
		src, dst := nodes[l.source], nodes[l.target]
		dx := dst.x + dst.vx - src.x - src.vx
		dy := dst.y + dst.vy - src.y - src.vy
		if dx == 0 {
			dx = jiggle(rng)
		}
		if dy == 0 {
			dy = jiggle(rng)
		}
		dist := math.Hypot(dx, dy)
		force := (dist - restLength) / dist * alpha * l.strength
		dx *= force
		dy *= force
		dst.vx -= dx / 2
		dst.vy -= dy / 2
		src.vx += dx / 2
		src.vy += dy / 2
	}
}

func applyCharge(nodes []*simNode, strength, alpha float64, rng *rand.Rand) {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			dx := b.x - a.x
			dy := b.y - a.y
			if dx == 0 {
				dx = jiggle(rng)
			}
			if dy == 0 {
				dy = jiggle(rng)
			}
			distSq := dx*dx + dy*dy
			// Negative strength repels: b is pushed along +d, a along -d.
			force := strength * alpha / distSq
			b.vx -= dx * force
			b.vy -= dy * force
			a.vx += dx * force
			a.vy += dy * force
		}
	}
}

// applyCenter shifts all nodes so the centroid sits at the origin.
func applyCenter(nodes []*simNode) {
	var cx, cy float64
	for _, n := range nodes {
		cx += n.x
		cy += n.y
	}
	cx /= float64(len(nodes))
	cy /= float64(len(nodes))
	for _, n := range nodes {
		n.x -= cx
		n.y -= cy
	}
}

func resolveCollisions(nodes []*simNode, radius float64, rng *rand.Rand, maxPasses int) {
	for pass := 0; pass < maxPasses; pass++ {
		moved := false
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				a, b := nodes[i], nodes[j]
				dx := b.x - a.x
				dy := b.y - a.y
				if dx == 0 {
					dx = jiggle(rng)
				}
				if dy == 0 {
					dy = jiggle(rng)
				}
				dist := math.Hypot(dx, dy)
				if dist >= radius {
					continue
				}
				overlap := (radius - dist) / dist / 2
				a.x -= dx * overlap
				a.y -= dy * overlap
				b.x += dx * overlap
				b.y += dy * overlap
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}
