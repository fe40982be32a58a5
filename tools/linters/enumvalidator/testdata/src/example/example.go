package example

type FortuneMode string

const (
	FortuneModeStructured FortuneMode = "structured"
	FortuneModeFreeform   FortuneMode = "freeform"
)

type Fortune struct {
	Mode FortuneMode
	Text string
}

func bad() {
	f := &Fortune{}
	f.Mode = "poem" // want "enum field Mode assigned string literal"

	_ = Fortune{Mode: "structured"} // want "enum field Mode set to string literal"
}

func good() {
	f := &Fortune{}
	f.Mode = FortuneModeFreeform // OK: using constant
	f.Text = "오늘은 좋은 날"         // OK: not an enum field

	_ = Fortune{Mode: FortuneModeStructured, Text: "hi"}
}

func alsoGood() {
	// OK: Variable, not literal
	mode := FortuneModeStructured
	f := &Fortune{Mode: mode}
	_ = f
}
