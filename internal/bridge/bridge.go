// Package bridge turns live-stream events (gifts, follows, likes and chat
// commands) into spawn commands for a running game.
package bridge

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyraid/internal/core"
)

const (
	heartsPerChaser = 10
	likesPerBarrel  = 50
	maxGiftRepeat   = 100 // cap on one combo
	bossCommand     = "!boss"
)

// Target is the game the bridge drives. Every method must be safe to call
// from the bridge goroutine.
type Target interface {
	SpawnEnemy(kind string) bool
	SpawnBarrel() bool
	SpawnObstacle() bool
	SpawnGate(modifier string) bool
	ForceBossSpawn(index int) bool
	BossCount() int
	Accepting() bool
	Notify(viewer, message string, color core.Color)
}

// Event is one message from the stream tool. Unused fields stay zero.
type Event struct {
	Event         string `json:"event"`
	Nickname      string `json:"nickname"`
	Username      string `json:"username"`
	GiftName      string `json:"giftName"`
	RepeatCount   int    `json:"repeatCount"`
	GiftAmount    int    `json:"giftAmount"`
	LikeCount     int    `json:"likeCount"`
	Comment       string `json:"comment"`
	CommandParams string `json:"commandParams"`
}

// Viewer returns the display name of whoever caused the event.
func (e Event) Viewer() string {
	if e.Nickname != "" {
		return e.Nickname
	}
	if e.Username != "" {
		return e.Username
	}
	return "viewer"
}

// amount is how many times a gift applies, at most maxGiftRepeat.
func (e Event) amount() int {
	switch {
	case e.RepeatCount > 0:
		return min(e.RepeatCount, maxGiftRepeat)
	case e.GiftAmount > 0:
		return min(e.GiftAmount, maxGiftRepeat)
	default:
		return 1
	}
}

// Bridge maps stream events onto a Target. Handle is not safe for
// concurrent use; the client calls it from a single goroutine.
type Bridge struct {
	target Target
	logger *log.Logger
	intn   func(n int) int

	hearts int
	likes  int
}

// New creates a bridge for target. A nil logger discards output.
func New(target Target, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bridge{
		target: target,
		logger: logger,
		intn:   rand.IntN,
	}
}

// HandleMessage decodes one JSON message and handles it.
func (b *Bridge) HandleMessage(data []byte) error {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	b.Handle(e)
	return nil
}

// Handle applies one event. Events arriving while the target is not
// accepting commands are dropped.
func (b *Bridge) Handle(e Event) {
	viewer := e.Viewer()

	switch e.Event {
	case "gift":
		b.handleGift(e.GiftName, e.amount(), viewer)

	case "follow":
		b.logger.Info("follow", "viewer", viewer)
		b.target.Notify(viewer, "followed!", core.ColorBrightGreen)
		if b.target.Accepting() {
			b.target.SpawnGate("+1")
		}

	case "like":
		n := e.LikeCount
		if n <= 0 {
			n = 1
		}
		b.likes += n
		if b.likes >= likesPerBarrel {
			b.logger.Info("likes reached", "count", b.likes)
			if b.target.Accepting() {
				b.target.SpawnBarrel()
			}
			b.likes = 0
		}

	case "chat":
		msg := strings.TrimSpace(e.CommandParams)
		if msg == "" {
			msg = strings.TrimSpace(e.Comment)
		}
		if strings.HasPrefix(msg, bossCommand) && b.target.Accepting() {
			b.logger.Info("chat command", "viewer", viewer, "command", bossCommand)
			b.target.SpawnEnemy("chaser")
		}

	case "":
		b.logger.Debug("event without type")

	default:
		b.logger.Debug("ignored event", "event", e.Event)
	}
}

func (b *Bridge) handleGift(name string, amount int, viewer string) {
	b.logger.Info("gift", "viewer", viewer, "gift", name, "amount", amount)

	if !b.target.Accepting() {
		b.logger.Warn("no run in progress, gift dropped", "gift", name)
		return
	}

	if !Known(name) {
		b.logger.Warn("unmapped gift", "gift", name)
		return
	}
	action := gifts[name]

	for i := 0; i < amount; i++ {
		b.apply(action, viewer)
	}
}

func (b *Bridge) apply(a giftAction, viewer string) {
	switch a.kind {
	case actionHeart:
		b.hearts++
		if b.hearts >= heartsPerChaser {
			b.target.SpawnEnemy("chaser")
			b.target.Notify(viewer, "Heart chaser!", core.ColorPink)
			b.hearts = 0
		}
		return
	case actionEnemy:
		b.target.SpawnEnemy(a.enemy)
	case actionBarrel:
		b.target.SpawnBarrel()
	case actionObstacle:
		b.target.SpawnObstacle()
	case actionGate:
		b.target.SpawnGate(a.modifier)
	case actionBoss:
		b.target.ForceBossSpawn(a.boss)
	case actionRandomBoss:
		if n := b.target.BossCount(); n > 0 {
			b.target.ForceBossSpawn(b.intn(n))
		}
	}
	b.target.Notify(viewer, a.label, a.color)
	b.logger.Debug("applied", "action", a.label, "viewer", viewer)
}

// Hearts returns the hearts collected toward the next chaser.
func (b *Bridge) Hearts() int {
	return b.hearts
}

// Likes returns the likes collected toward the next barrel.
func (b *Bridge) Likes() int {
	return b.likes
}
