package config

// ArchetypeConfig contains the base stats for a zombie archetype
type ArchetypeConfig struct {
	Name string

	// Combat
	Health      float64
	Damage      float64
	AttackRange float64
	AttackRate  float64 // attacks per second
	AggroRange  float64

	// Movement
	WalkSpeed     float64
	CollisionSize float64

	// Rewards
	Gold       int
	Experience int

	// Spawning
	SpawnWeight float64
	MinWave     int // first wave (1-indexed) this archetype may appear in

	Behavior BehaviorKind
}

// TargetingConfig contains target selection cadence and tuning
type TargetingConfig struct {
	Interval           float64 // seconds between target re-evaluations
	RangeCheckInterval float64 // seconds between in-range checks
	BlockRadius        float64 // defense proximity radius around path corners
	Workers            int     // goroutines used by the selection pass, <= 1 runs inline
}

// CombatConfig contains attack, death and scaling values shared by all agents
type CombatConfig struct {
	AttackWindup       float64 // delay between attack start and damage application
	DeathRemovalDelay  float64
	LootChance         float64
	RunSpeedMultiplier float64
	ArriveDistance     float64 // fixed-point overrides count as reached within this distance

	// Per-wave difficulty scaling applied after the first wave
	HealthScalePerWave float64
	DamageScalePerWave float64
}

type ChargerConfig struct {
	DetectionRange   float64
	ChargeDistance   float64 // max ray length for the line of sight test
	ChargeSpeed      float64
	ChargeDuration   float64
	Cooldown         float64
	HitRadius        float64
	DamageMultiplier float64
}

type LeaperConfig struct {
	JumpHeight        float64
	JumpDistance      float64
	JumpDuration      float64
	DetectionDistance float64
	Cooldown          float64
}

type SneakerConfig struct {
	TowerRushDistance    float64 // always go for the tower when this close to it
	PlayerIgnoreDistance float64 // never chase a player further than this
	BehindDot            float64
	BehindDistance       float64
	PlayerBias           float64 // prefer the player when distPlayer < distTower*PlayerBias
}

type SpitterConfig struct {
	SpitRange         float64
	Cooldown          float64
	PreferredDistance float64
	AloneRadius       float64
	AloneThreshold    int // fewer than this many neighbours counts as alone
	BackoffFraction   float64
	BackoffDistance   float64
}

// AcidConfig contains spitter projectile and puddle values
type AcidConfig struct {
	Speed        float64
	Lifetime     float64
	ArcHeight    float64
	SplashRadius float64

	PuddleDamageRatio  float64 // fraction of the projectile damage dealt per second
	PuddleDuration     float64
	PuddleRadius       float64
	PuddleTickInterval float64
	PuddleGrowTime     float64
}

// BehaviorConfig groups the per-archetype behavior override values
type BehaviorConfig struct {
	Charger ChargerConfig
	Leaper  LeaperConfig
	Sneaker SneakerConfig
	Spitter SpitterConfig
	Acid    AcidConfig
}

// WaveConfig contains wave scheduling timings and the synthesized default ladder
type WaveConfig struct {
	AutoStart          bool
	FirstWaveDelay     float64
	TimeBetweenWaves   float64
	InitialSpawnDelay  float64
	SubWavePause       float64
	SubWaveGrowth      float64
	TimeSurvivalRefill float64 // spawning restarts if more than this remains when the budget runs out

	// Default ladder used when a plan has no waves
	WaveCountIfEmpty     int
	BaseCount            int
	CountStep            int
	BaseRate             float64
	RateStep             float64
	FinalCountMultiplier int
	FinalRateMultiplier  float64
}

type SpawnConfig struct {
	MinDistanceFromDefender float64
	DefaultRingPoints       int
	DefaultRingRadius       float64
}

type TowerConfig struct {
	Health       float64
	AttackRange  float64
	Damage       float64
	AttackSpeed  float64 // shots per second
	ScanInterval float64
	Size         float64
}

type DefenseConfig struct {
	Health float64
	Height float64
	Width  float64
	Depth  float64
}

type PlayerConfig struct {
	Health float64
	Size   float64
}

// PathfindingConfig contains nav grid and ray test values
type PathfindingConfig struct {
	CellSize     float64
	LOSStepSize  float64
	LOSCheckSize float64
	SnapRadius   int // cells searched for a walkable node when start or goal is blocked
}

type EconomyConfig struct {
	ExperienceToLevel int
	LevelScaling      float64
}

type DebugConfig struct {
	LogSpawns    bool
	LogTargeting bool
}

var (
	Zombies     map[Archetype]ArchetypeConfig
	Targeting   TargetingConfig
	Combat      CombatConfig
	Behaviors   BehaviorConfig
	Waves       WaveConfig
	Spawning    SpawnConfig
	Tower       TowerConfig
	Defense     DefenseConfig
	Player      PlayerConfig
	Pathfinding PathfindingConfig
	Economy     EconomyConfig
	Debug       DebugConfig
)

func init() {
	Zombies = map[Archetype]ArchetypeConfig{
		Shambler: {
			Name:          "Shambler",
			Health:        100,
			Damage:        10,
			AttackRange:   1.5,
			AttackRate:    1.5,
			AggroRange:    15,
			WalkSpeed:     1.5,
			CollisionSize: 0.8,
			Gold:          10,
			Experience:    5,
			SpawnWeight:   10,
			MinWave:       1,
			Behavior:      BehaviorNone,
		},
		Bruiser: {
			Name:          "Bruiser",
			Health:        250,
			Damage:        20,
			AttackRange:   1.5,
			AttackRate:    1.0,
			AggroRange:    20,
			WalkSpeed:     1.0,
			CollisionSize: 1.2,
			Gold:          25,
			Experience:    15,
			SpawnWeight:   3,
			MinWave:       2,
			Behavior:      BehaviorCharger,
		},
		Jumper: {
			Name:          "Jumper",
			Health:        80,
			Damage:        15,
			AttackRange:   1.5,
			AttackRate:    1.2,
			AggroRange:    15,
			WalkSpeed:     2.5,
			CollisionSize: 0.8,
			Gold:          15,
			Experience:    8,
			SpawnWeight:   4,
			MinWave:       2,
			Behavior:      BehaviorLeaper,
		},
		Sneaker: {
			Name:          "Sneaker",
			Health:        80,
			Damage:        20,
			AttackRange:   1.5,
			AttackRate:    1.0,
			AggroRange:    20,
			WalkSpeed:     2.8,
			CollisionSize: 0.7,
			Gold:          15,
			Experience:    10,
			SpawnWeight:   3,
			MinWave:       3,
			Behavior:      BehaviorSneaker,
		},
		Spitter: {
			Name:          "Spitter",
			Health:        70,
			Damage:        8,
			AttackRange:   1.5,
			AttackRate:    0.5,
			AggroRange:    18,
			WalkSpeed:     1.8,
			CollisionSize: 0.8,
			Gold:          20,
			Experience:    12,
			SpawnWeight:   3,
			MinWave:       3,
			Behavior:      BehaviorSpitter,
		},
	}

	Targeting = TargetingConfig{
		Interval:           1.0,
		RangeCheckInterval: 0.2,
		BlockRadius:        3.0,
		Workers:            1,
	}

	Combat = CombatConfig{
		AttackWindup:       0.5,
		DeathRemovalDelay:  5.0,
		LootChance:         0.2,
		RunSpeedMultiplier: 1.5,
		ArriveDistance:     1.0,
		HealthScalePerWave: 0.10,
		DamageScalePerWave: 0.05,
	}

	Behaviors = BehaviorConfig{
		Charger: ChargerConfig{
			DetectionRange:   20,
			ChargeDistance:   15,
			ChargeSpeed:      6,
			ChargeDuration:   2,
			Cooldown:         8,
			HitRadius:        1,
			DamageMultiplier: 1.5,
		},
		Leaper: LeaperConfig{
			JumpHeight:        3,
			JumpDistance:      5,
			JumpDuration:      1,
			DetectionDistance: 2,
			Cooldown:          5,
		},
		Sneaker: SneakerConfig{
			TowerRushDistance:    10,
			PlayerIgnoreDistance: 25,
			BehindDot:            0.5,
			BehindDistance:       15,
			PlayerBias:           0.5,
		},
		Spitter: SpitterConfig{
			SpitRange:         15,
			Cooldown:          3,
			PreferredDistance: 10,
			AloneRadius:       10,
			AloneThreshold:    2,
			BackoffFraction:   0.8,
			BackoffDistance:   5,
		},
		Acid: AcidConfig{
			Speed:              12,
			Lifetime:           5,
			ArcHeight:          2,
			SplashRadius:       2,
			PuddleDamageRatio:  0.2,
			PuddleDuration:     5,
			PuddleRadius:       2,
			PuddleTickInterval: 0.5,
			PuddleGrowTime:     0.5,
		},
	}

	Waves = WaveConfig{
		AutoStart:            true,
		FirstWaveDelay:       5,
		TimeBetweenWaves:     30,
		InitialSpawnDelay:    1.5,
		SubWavePause:         5,
		SubWaveGrowth:        0.5,
		TimeSurvivalRefill:   10,
		WaveCountIfEmpty:     3,
		BaseCount:            10,
		CountStep:            5,
		BaseRate:             1,
		RateStep:             0.2,
		FinalCountMultiplier: 2,
		FinalRateMultiplier:  1.5,
	}

	Spawning = SpawnConfig{
		MinDistanceFromDefender: 15,
		DefaultRingPoints:       8,
		DefaultRingRadius:       40,
	}

	Tower = TowerConfig{
		Health:       1000,
		AttackRange:  15,
		Damage:       25,
		AttackSpeed:  1.5,
		ScanInterval: 0.5,
		Size:         4,
	}

	Defense = DefenseConfig{
		Health: 200,
		Height: 1.5,
		Width:  2,
		Depth:  1,
	}

	Player = PlayerConfig{
		Health: 100,
		Size:   1,
	}

	Pathfinding = PathfindingConfig{
		CellSize:     1,
		LOSStepSize:  0.25,
		LOSCheckSize: 0.1,
		SnapRadius:   10,
	}

	Economy = EconomyConfig{
		ExperienceToLevel: 100,
		LevelScaling:      1.5,
	}

	Debug = DebugConfig{}
}
