package render

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Theme is a set of SGR codes for the table text and borders. A nil entry
// leaves that part uncolored.
type Theme struct {
	Name       string
	Default    text.Colors
	Vertical   text.Colors
	Horizontal text.Colors
	Junction   text.Colors
}

// DefaultTheme is used for unknown style names.
const DefaultTheme = "DEFAULT"

func sgr(code int) text.Colors { return text.Colors{text.Color(code)} }

func theme(name string, def, vertical, horizontal, junction int) Theme {
	pick := func(c int) text.Colors {
		if c < 0 {
			return nil
		}
		return sgr(c)
	}
	return Theme{
		Name:       name,
		Default:    pick(def),
		Vertical:   pick(vertical),
		Horizontal: pick(horizontal),
		Junction:   pick(junction),
	}
}

const none = -1

var palette = []Theme{
	theme(DefaultTheme, none, none, none, none),
	theme("OCEANYELLOW", 22, 33, 44, 55),
	theme("LINES", 1, 9, 9, 9),
	theme("LIGHT", 7, none, none, none),
	theme("DARK", 2, 7, 7, 7),
	theme("BLINK", 5, 5, 5, 5),
	theme("DARKBGRED", 31, 41, 41, 41),
	theme("DARKBGGREEN", 32, 42, 42, 42),
	theme("DARKBGYELLOW", 33, 43, 43, 43),
	theme("DARKBGBLU", 34, 44, 44, 44),
	theme("DARKBGMAGENTA", 35, 45, 45, 45),
	theme("DARKBGCYANO", 36, 46, 46, 46),
	theme("DARKBGGRAY", 37, 47, 47, 47),
	theme("BGRED", 91, 7, 7, 7),
	theme("BGGREEN", 92, 7, 7, 7),
	theme("BGYELLOW", 93, 7, 7, 7),
	theme("BGBLU", 94, 7, 7, 7),
	theme("BGMAGENTA", 95, 7, 7, 7),
	theme("BGCYANO", 96, 7, 7, 7),
	theme("BGGRAY", 97, 7, 7, 7),
	theme("TEST", 5, 5, 5, 5),
}

var byName = func() map[string]Theme {
	m := make(map[string]Theme, len(palette))
	for _, t := range palette {
		m[t.Name] = t
	}
	return m
}()

// Lookup finds a theme by name, ignoring case.
func Lookup(name string) (Theme, bool) {
	t, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	return t, ok
}

// ThemeFor is Lookup with the default theme as fallback.
func ThemeFor(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return byName[DefaultTheme]
}

// ThemeNames lists the palette in declaration order.
func ThemeNames() []string {
	names := make([]string, len(palette))
	for i, t := range palette {
		names[i] = t.Name
	}
	return names
}
