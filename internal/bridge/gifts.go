package bridge

import "github.com/vovakirdan/skyraid/internal/core"

type actionKind int

const (
	actionHeart actionKind = iota // accumulate toward a chaser
	actionEnemy
	actionBarrel
	actionObstacle
	actionGate
	actionBoss
	actionRandomBoss
)

// giftAction describes what one unit of a gift does to the run.
type giftAction struct {
	kind     actionKind
	enemy    string
	modifier string
	boss     int
	label    string
	color    core.Color
}

var (
	heartMe   = giftAction{kind: actionEnemy, enemy: "sniper", label: "Heart Me → sniper", color: core.ColorYellow}
	rose      = giftAction{kind: actionEnemy, enemy: "wave", label: "Rose → wave", color: core.ColorSky}
	donut     = giftAction{kind: actionBarrel, label: "Donut → item barrel", color: core.ColorGray}
	moneyGun  = giftAction{kind: actionBoss, boss: 0, label: "Money Gun → BEAM BOSS!", color: core.ColorBrightRed}
	lion      = giftAction{kind: actionRandomBoss, label: "Lion → random BOSS!", color: core.ColorOrange}
	perfume   = giftAction{kind: actionObstacle, label: "Perfume → obstacle", color: core.ColorDarkGray}
	heartGift = giftAction{kind: actionHeart}
)

// gifts maps TikTok gift names, English and Japanese, to actions.
var gifts = map[string]giftAction{
	"Heart":        heartGift,
	"ハート":          heartGift,
	"Heart Me":     heartMe,
	"ハートミー":        heartMe,
	"Rose":         rose,
	"バラ":           rose,
	"Rosa":         {kind: actionEnemy, enemy: "wave", label: "Rosa → wave", color: core.ColorSky},
	"Donut":        donut,
	"Doughnut":     donut,
	"ドーナッツ":        donut,
	"ドーナツ":         donut,
	"Money Gun":    moneyGun,
	"マネーガン":        moneyGun,
	"GG":           {kind: actionGate, modifier: "+2", label: "GG → +2 gate", color: core.ColorBrightCyan},
	"Lion":         lion,
	"ライオン":         lion,
	"Finger Heart": {kind: actionGate, modifier: "+1", label: "Finger Heart → +1 gate", color: core.ColorBrightCyan},
	"Perfume":      perfume,
	"パフューム":        perfume,
	"TikTok":       {kind: actionBoss, boss: 1, label: "TikTok → BOMB BOSS!", color: core.ColorBrightRed},
}

// Known reports whether a gift name has an action.
func Known(gift string) bool {
	_, ok := gifts[gift]
	return ok
}
