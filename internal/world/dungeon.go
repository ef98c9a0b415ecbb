package world

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/armysarge/dungeongen/internal/entity"
	"github.com/armysarge/dungeongen/internal/gamedata"
	"github.com/armysarge/dungeongen/internal/rng"
	"github.com/armysarge/dungeongen/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 50
	DefaultHeight = 50

	// BSP parameters
	defaultMinRoomSize = 4  // Minimum room dimension
	defaultMaxRoomSize = 12 // Maximum room dimension
	defaultMaxRooms    = 15 // Cap on retained partition leaves
	defaultMaxDepth    = 4  // Maximum partition recursion depth

	// Door attribute probabilities
	doorLockedChance  = 0.3
	doorTrappedChance = 0.1
	doorSkipChance    = 0.2
)

// Config holds the tunable generation parameters. Zero values fall back to
// the defaults above.
type Config struct {
	Width  int
	Height int

	// Seed drives the random stream. Zero means derive one from the clock.
	Seed int64

	MinRoomSize int
	MaxRoomSize int
	MaxRooms    int
	MaxDepth    int
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MinRoomSize: defaultMinRoomSize,
		MaxRoomSize: defaultMaxRoomSize,
		MaxRooms:    defaultMaxRooms,
		MaxDepth:    defaultMaxDepth,
	}
}

// normalize fills zero fields with defaults.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.MinRoomSize == 0 {
		c.MinRoomSize = def.MinRoomSize
	}
	if c.MaxRoomSize == 0 {
		c.MaxRoomSize = def.MaxRoomSize
	}
	if c.MaxRooms == 0 {
		c.MaxRooms = def.MaxRooms
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = def.MaxDepth
	}
	return c
}

// Stage identifies the pipeline stage the generator is in.
type Stage int

const (
	StageIdle Stage = iota
	StagePartitioning
	StageRouting
	StageVarietyPass
	StageDoorPlacement
	StageAccessibilityBuild
	StageEntityPlacement
	StagePlayerStairsPlacement
	StageDone
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StagePartitioning:
		return "partitioning"
	case StageRouting:
		return "routing"
	case StageVarietyPass:
		return "variety_pass"
	case StageDoorPlacement:
		return "door_placement"
	case StageAccessibilityBuild:
		return "accessibility_build"
	case StageEntityPlacement:
		return "entity_placement"
	case StagePlayerStairsPlacement:
		return "player_stairs_placement"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Dungeon is the top-level aggregate. It exclusively owns the tile grid and
// every entity registry; collaborators read them after Generate returns.
type Dungeon struct {
	Width  int
	Height int
	Tiles  [][]Tile

	Rooms     []Room
	Corridors []Corridor
	Doors     []*Door
	Chests    []*entity.Chest
	Creatures []*entity.Creature
	Items     []*entity.Item // keys resting on floor tiles

	PlayerStart Point
	StairsPos   Point

	cfg       Config
	rng       *rng.Stream
	creatures *gamedata.CreatureRegistry
	log       *slog.Logger
	seed      int64
	stage     Stage
	report    *Report
}

// NewDungeon creates a dungeon generator for the given configuration.
// Non-positive dimensions are a configuration error.
func NewDungeon(cfg Config, creatures *gamedata.CreatureRegistry, logger *slog.Logger) (*Dungeon, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid dungeon dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.normalize()

	tiles := make([][]Tile, cfg.Height)
	for y := range tiles {
		tiles[y] = make([]Tile, cfg.Width)
	}

	d := &Dungeon{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Tiles:     tiles,
		cfg:       cfg,
		rng:       rng.New(cfg.Seed),
		creatures: creatures,
		log:       logger,
		stage:     StageIdle,
	}
	d.fillWalls()
	return d, nil
}

// Generate runs the full pipeline and returns the generation report, which
// carries the seed used. Generation never fails for placement problems; those
// degrade into report diagnostics.
func (d *Dungeon) Generate(ctx context.Context) *Report {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	seed := d.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	d.reset(seed)

	stages := []struct {
		stage Stage
		name  string
		fn    func(context.Context)
	}{
		{StagePartitioning, "dungeon.partition", d.partitionRooms},
		{StageRouting, "dungeon.route_corridors", d.routeCorridors},
		{StageVarietyPass, "dungeon.variety_pass", d.varietyPass},
		{StageDoorPlacement, "dungeon.place_doors", d.placeDoors},
		{StageAccessibilityBuild, "dungeon.build_accessibility", d.buildAccessibility},
		{StageEntityPlacement, "dungeon.place_entities", d.placeEntities},
		{StagePlayerStairsPlacement, "dungeon.place_player_stairs", d.placePlayerAndStairs},
	}

	for _, s := range stages {
		d.stage = s.stage
		stageCtx, stageSpan := tracer.Start(ctx, s.name)
		s.fn(stageCtx)
		stageSpan.End()
	}
	d.stage = StageDone

	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int64("dungeon.seed", d.seed),
		attribute.String("dungeon.run_id", d.report.RunID),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.corridor_count", len(d.Corridors)),
		attribute.Int("dungeon.door_count", len(d.Doors)),
		attribute.Int("dungeon.chest_count", len(d.Chests)),
		attribute.Int("dungeon.creature_count", len(d.Creatures)),
		attribute.Int("dungeon.unplaced_keys", len(d.report.UnplacedKeys)),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	d.log.Info("dungeon generated",
		"seed", d.seed,
		"rooms", len(d.Rooms),
		"corridors", len(d.Corridors),
		"doors", len(d.Doors),
		"chests", len(d.Chests),
		"creatures", len(d.Creatures),
		"unplaced_keys", len(d.report.UnplacedKeys),
		"elapsed", time.Since(startTime),
	)
	return d.report
}

// reset clears every registry, refills the grid with wall tiles, and restarts
// the random stream from the seed.
func (d *Dungeon) reset(seed int64) {
	d.seed = seed
	d.rng.Reseed(seed)
	d.fillWalls()
	d.Rooms = nil
	d.Corridors = nil
	d.Doors = nil
	d.Chests = nil
	d.Creatures = nil
	d.Items = nil
	d.PlayerStart = Point{}
	d.StairsPos = Point{}
	d.report = newReport(seed)
	d.stage = StageIdle
}

// Seed returns the seed the last generation ran with.
func (d *Dungeon) Seed() int64 {
	return d.seed
}

// Stage returns the current pipeline stage.
func (d *Dungeon) Stage() Stage {
	return d.stage
}

// Report returns the report of the last generation run, or nil before the
// first run.
func (d *Dungeon) Report() *Report {
	return d.report
}

// buildAccessibility constructs the baseline room-adjacency graph once so the
// pipeline can log connectivity before entity placement. Key placement always
// rebuilds its own graph per query; accessibility is never cached across
// lock-state contexts.
func (d *Dungeon) buildAccessibility(ctx context.Context) {
	if len(d.Rooms) == 0 {
		return
	}
	graph := d.BuildAccessGraph(nil)
	reachable := d.FindAccessibleRooms(0, graph)
	open := 0
	for _, ok := range reachable {
		if ok {
			open++
		}
	}
	d.log.Debug("accessibility graph built",
		"rooms", len(d.Rooms),
		"open_from_first", open,
	)
}

// allLockedRoom returns true if the room has at least one door and every one
// of its doors is locked.
func (d *Dungeon) allLockedRoom(roomIndex int) bool {
	count := 0
	for _, door := range d.Doors {
		if door.RoomIndex != roomIndex {
			continue
		}
		if !door.Locked {
			return false
		}
		count++
	}
	return count > 0
}
