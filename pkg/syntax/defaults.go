package syntax

// Colors of the built-in categories.
const (
	ColorVariable    = "#00FFFF"
	ColorIO          = "#2196F3"
	ColorControl     = "#FF6B35"
	ColorOperator    = "#FFC107"
	ColorMemory      = "#E91E63"
	ColorString      = "#00E676"
	ColorFunction    = "#4CAF50"
	ColorExit        = "#9C27B0"
	ColorPunctuation = "#9E9E9E"
)

// DefaultCategories returns the built-in Mollang keyword set, in priority
// order. Each call returns fresh slices.
//
// Variables are 몰 and the 모…올 / 모…울 families (모올, 모오올, 모오오올, …).
// Runs of four or more dots and of two or more '?' or '!' are single
// operators.
func DefaultCategories() []Category {
	bold := func(color string) Style { return Style{Color: color, Bold: true} }

	return []Category{
		{Name: "strings", Patterns: []string{"~"}, Style: bold(ColorString)},
		{Name: "memory", Patterns: []string{"&", "*", "="}, Style: bold(ColorMemory)},
		{Name: "control", Patterns: []string{"은?행", "털!자", "돌!자", "짓!자"}, Style: bold(ColorControl)},
		{Name: "jump", Patterns: []string{"가!자", "가자!"}, Style: bold(ColorControl)},
		{Name: "io", Patterns: []string{"루", "루?", "루!", "아"}, Style: bold(ColorIO)},
		{Name: "exit", Patterns: []string{"0ㅅ0"}, Style: bold(ColorExit)},
		{Name: "functions", Patterns: []string{
			"뭵뤩", "뭵뤡", "말랑", "머리", "무릎", "망령", "매립", "무리", "밀랍",
		}, Style: bold(ColorFunction)},
		{Name: "variables", Patterns: []string{"몰", "모올", "모{오}올", "모울", "모{오}울"}, Style: bold(ColorVariable)},
		{Name: "operators", Patterns: []string{"..", "...", "...{.}", "?{?}", "!{!}", "?", "!", "."}, Style: bold(ColorOperator)},
		{Name: "punctuation", Patterns: []string{"(", ")", ","}, Style: Style{Color: ColorPunctuation}},
	}
}
