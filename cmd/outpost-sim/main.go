package main

import (
	"flag"
	"math"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
	"github.com/milk9111/outpost/ecs/entity"
	"github.com/milk9111/outpost/ecs/system"
	"github.com/milk9111/outpost/player"
	"github.com/milk9111/outpost/prefabs"
	"github.com/milk9111/outpost/ui"
)

func main() {
	levelName := flag.String("level", "outpost.yaml", "level prefab name")
	debug := flag.Bool("debug", false, "enable debug logging")
	ticks := flag.Int("ticks", 3600, "number of ticks to simulate")
	tps := flag.Int("tps", 60, "ticks per simulated second")
	watch := flag.Bool("watch", false, "reload prefabs/ edits between ticks and run in real time")
	autopilot := flag.Bool("autopilot", true, "drive the player toward the nearest enemy and shoot")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "outpost-sim"})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}
	if *tps <= 0 {
		logger.Fatal("tps must be positive", "tps", *tps)
	}

	opts := entity.DefaultOptions()
	opts.Level = *levelName
	opts.Logger = logger
	opts.Sink = ui.NewLogSink(logger, "label")
	o, err := entity.LoadOutpost(opts)
	if err != nil {
		logger.Fatal("load level", "err", err)
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			logger.Fatal("watch prefabs", "err", err)
		}
		defer watcher.Close()
	}

	dt := 1 / float64(*tps)
	counts := make(map[ecs.EventType]int)
	kills := 0
	deaths := 0
	wasDead := false

	for i := 0; i < *ticks; i++ {
		if watcher != nil {
			for _, c := range watcher.Pending() {
				o.Reload(c.Path)
			}
		}
		if *autopilot {
			o.Player.SetInput(steer(o))
		}

		o.Step(dt)

		for _, evt := range o.World.Events().Drain() {
			counts[evt.Type]++
			if sc, ok := evt.Data.(system.StateChange); ok && sc.To == component.StateDead {
				kills++
			}
		}

		dead := o.Player.Stats.Died()
		if dead && !wasDead {
			deaths++
			logger.Info("player died", "t", o.World.Now())
		}
		wasDead = dead
		if dead {
			o.RespawnPlayer()
			wasDead = false
		}
		// Respawn enemies every 10 simulated seconds so the run keeps going.
		if i > 0 && i%(*tps*10) == 0 {
			if n := o.RespawnDead(); n > 0 {
				logger.Info("enemies respawned", "count", n, "t", o.World.Now())
			}
		}

		if watcher != nil {
			time.Sleep(time.Duration(dt * float64(time.Second)))
		}
	}

	summarize(logger, o, counts, kills, deaths)
}

// steer turns toward the nearest living enemy, closes to firing range and shoots.
func steer(o *entity.Outpost) player.Input {
	var in player.Input
	p := o.Player
	if p.Stats.Died() {
		return in
	}
	pos := p.Stats.Position()

	var target *system.EnemyAI
	best := math.Inf(1)
	for _, ai := range o.Enemies() {
		if !ai.Enemy.Alive() || ai.Enemy.Disabled {
			continue
		}
		if d := common.PlanarDistance(pos, ai.Enemy.Position); d < best {
			best = d
			target = ai
		}
	}
	if target == nil {
		return in
	}

	want := common.YawOf(target.Enemy.Position.Sub(pos).Planar())
	delta := math.Remainder(want-p.Controller.Yaw(), 360)
	switch {
	case delta > 2:
		in.Turn = 1
	case delta < -2:
		in.Turn = -1
	}
	if best > 8 {
		in.Move = common.V3(0, 0, 1)
	}
	if math.Abs(delta) < 5 {
		in.Fire = true
	}
	if p.Gun.Ammo() == 0 {
		in.Reload = true
	}
	return in
}

func summarize(logger *log.Logger, o *entity.Outpost, counts map[ecs.EventType]int, kills, deaths int) {
	logger.Info("run complete",
		"t", o.World.Now(),
		"ticks", o.World.Tick(),
		"kills", kills,
		"player_deaths", deaths,
		"shots", counts[ecs.EventShot],
		"enemy_attacks", counts[ecs.EventAttack],
		"state_changes", counts[ecs.EventStateChanged],
		"pickups", counts[ecs.EventPickup],
	)

	names := make([]string, 0, len(o.Labels))
	for name := range o.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ai, _ := o.Enemy(name)
		logger.Info("enemy", "name", name, "state", ai.Enemy.State, "health", ai.Enemy.Health, "pos", ai.Enemy.Position)
	}
	logger.Info("player", "health", o.Player.Stats.Health(), "ammo", o.Player.Gun.Ammo(), "reserve", o.Player.Gun.Reserve())
}
