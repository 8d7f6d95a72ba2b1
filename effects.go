package asciify

import "math"

// DefaultEffect is the effect used when Rainbow is set without a name.
const DefaultEffect = "rainbow"

// EffectFunc colors cell (x, y) of a grid lineWidth columns wide and
// totalLines rows tall. It must be pure apart from reading rnd.
type EffectFunc func(x, y, lineWidth, totalLines int, rnd Jitter) Color

// Effect is a named gradient used by rainbow colorizing.
type Effect struct {
	Name string
	// Random is set for effects that read the jitter source; their output
	// is not reproducible without a seeded Jitter.
	Random bool
	Func   EffectFunc
}

// effects holds the built-in gradients; read-only after init.
var effects = newOrderedMap[string, Effect]()

func init() {
	for _, e := range []Effect{
		{Name: "rainbow", Func: rainbowEffect},
		{Name: "fire", Func: fireEffect},
		{Name: "sunrise", Func: sunriseEffect},
		{Name: "unicorn", Func: unicornEffect},
		{Name: "vaporwave", Func: vaporwaveEffect},
		{Name: "cyberpunk", Func: cyberpunkEffect},
		{Name: "ocean", Func: oceanEffect},
		{Name: "chrome", Func: chromeEffect},
		{Name: "neon", Func: neonEffect},
		{Name: "poison", Func: poisonEffect},
		{Name: "metal", Func: metalEffect},
		{Name: "matrix", Random: true, Func: matrixEffect},
	} {
		effects.Set(e.Name, e)
	}
}

// Effects lists the built-in effect names in order.
func Effects() []string {
	return effects.Keys()
}

// LookupEffect returns the named effect, falling back to rainbow.
func LookupEffect(name string) Effect {
	if e, ok := effects.Get(normalizeName(name)); ok {
		return e
	}
	e, _ := effects.Get(DefaultEffect)
	return e
}

// diagonal is the position of (x, y) along the top-left to bottom-right
// diagonal, in [0, 1].
func diagonal(x, y, w, h int) float64 {
	return float64(x+y) / float64(w+h)
}

func rainbowEffect(x, y, w, h int, _ Jitter) Color {
	hue := math.Mod(float64(x+2*y)*360/float64(w+2*h), 360)
	return HSLColor(hue, 70, 50)
}

func fireEffect(_, y, _, h int, _ Jitter) Color {
	fy, fh := float64(y), float64(h)
	return HSLColor(60-fy*60/fh, 100-fy*20/fh, 55)
}

func sunriseEffect(_, y, _, h int, _ Jitter) Color {
	p := float64(y) / float64(h)
	return HSLColor(330+60*p, 85+15*p, 60+20*p)
}

func unicornEffect(x, _, w, _ int, _ Jitter) Color {
	return HSLColor(math.Mod(float64(x)*360/float64(w), 360), 95, 65)
}

func vaporwaveEffect(x, y, _, h int, _ Jitter) Color {
	p := float64(y) / float64(h)
	sat := 80 + math.Sin(float64(x+y)*0.3)*15
	light := 65 + math.Sin(float64(x)*0.4)*10
	return HSLColor(280+80*p, sat, light)
}

func cyberpunkEffect(x, y, w, h int, _ Jitter) Color {
	return HSLColor(320-140*diagonal(x, y, w, h), 100, 60)
}

func oceanEffect(_, y, _, h int, _ Jitter) Color {
	p := float64(y) / float64(h)
	return HSLColor(180+30*p, 70+20*p, 50+20*p)
}

func chromeEffect(x, y, _, _ int, _ Jitter) Color {
	return HSLColor(200+math.Sin(float64(x)*0.2)*60, 30, 70+math.Sin(float64(y)*0.3)*20)
}

func neonEffect(x, y, w, h int, _ Jitter) Color {
	p := diagonal(x, y, w, h)
	return HSLColor(60+math.Sin(p*10)*120, 100, 60+math.Sin(p*8)*15)
}

func poisonEffect(x, y, w, h int, _ Jitter) Color {
	p := diagonal(x, y, w, h)
	return HSLColor(90+30*p, 90+math.Sin(float64(x)*0.5)*10, 45+20*p)
}

func metalEffect(x, _, _, _ int, _ Jitter) Color {
	return HSLColor(220, 10, 60+math.Sin(float64(x)*0.3)*20)
}

func matrixEffect(_, _, _, _ int, rnd Jitter) Color {
	return HSLColor(120, 100, 30+rnd.Float64()*40)
}
