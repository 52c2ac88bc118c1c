package mandelzoom

// Landmark is a named starting view: classic regions of the Mandelbrot set
// expressed as center and zoom so they stay meaningful at any depth.
type Landmark struct {
	Name    string
	CenterX string // decimal
	CenterY string // decimal
	Zoom    string // decimal, view height is 1/zoom plane units
	MaxIter int
	Comment string
}

// Classic regions / landmarks in the Mandelbrot set.
var Landmarks = []Landmark{
	{
		Name:    "home",
		CenterX: "-0.5", CenterY: "0", Zoom: "0.4",
		MaxIter: 512,
		Comment: "full set",
	},
	{
		// Seahorse Valley – dense filaments and repeating seahorse curls
		Name:    "seahorse",
		CenterX: "-0.75", CenterY: "0.1", Zoom: "10",
		MaxIter: 1024,
		Comment: "Seahorse Valley",
	},
	{
		// Elephant Valley – large bulb with trunk-like tendrils
		Name:    "elephant",
		CenterX: "-1.8", CenterY: "-0.06", Zoom: "12.5",
		MaxIter: 1024,
		Comment: "Elephant Valley",
	},
	{
		// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
		Name:    "spiral-minibrot",
		CenterX: "-0.74275", CenterY: "0.13175", Zoom: "660",
		MaxIter: 2048,
		Comment: "Spiral Minibrot",
	},
	{
		// Triple Spiral – threefold symmetric spiral structure
		Name:    "triple-spiral",
		CenterX: "-0.7465", CenterY: "0.0965", Zoom: "330",
		MaxIter: 2048,
		Comment: "Triple Spiral",
	},
	{
		// Valley of the Dragon – deep, highly detailed spiral filaments
		Name:    "dragon",
		CenterX: "-0.7375", CenterY: "0.1825", Zoom: "200",
		MaxIter: 2048,
		Comment: "Valley of the Dragon",
	},
	{
		// Minibrot in a Mini-Spiral – self-similar copy inside a spiral arm
		Name:    "mini-minibrot",
		CenterX: "-1.73825", CenterY: "-0.02275", Zoom: "660",
		MaxIter: 4096,
		Comment: "Minibrot in a Mini-Spiral",
	},
}

// FindLandmark looks a landmark up by name.
func FindLandmark(name string) (Landmark, bool) {
	for _, l := range Landmarks {
		if l.Name == name {
			return l, true
		}
	}
	return Landmark{}, false
}
