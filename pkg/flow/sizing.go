package flow

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SizingKind identifies the variant of a [Sizing].
type SizingKind uint8

const (
	// KindFit shrinks a node to the minimum size of its content.
	KindFit SizingKind = iota
	// KindFixed gives a node an exact size.
	KindFixed
	// KindFlex grows a node to a weighted share of the available space.
	KindFlex
)

func (k SizingKind) String() string {
	switch k {
	case KindFit:
		return "fit"
	case KindFixed:
		return "fixed"
	case KindFlex:
		return "flex"
	}
	return fmt.Sprintf("SizingKind(%d)", uint8(k))
}

// Sizing is the policy a node declares for one axis. The zero value is Fit.
type Sizing struct {
	kind   SizingKind
	value  float64
	weight uint8
}

// Fit returns the shrink-to-content policy.
func Fit() Sizing { return Sizing{} }

// Fixed returns a policy with an exact size. Negative values are clamped to 0.
func Fixed(v float64) Sizing {
	return Sizing{kind: KindFixed, value: nonNegative(v)}
}

// Flex returns a policy that takes weight shares of the space left over
// after fixed siblings. A weight of 0 receives no space.
func Flex(weight uint8) Sizing {
	return Sizing{kind: KindFlex, weight: weight}
}

// Kind returns the variant of s.
func (s Sizing) Kind() SizingKind { return s.kind }

// IsFit reports whether s is Fit.
func (s Sizing) IsFit() bool { return s.kind == KindFit }

// Fixed returns the fixed value and true if s is Fixed.
func (s Sizing) Fixed() (float64, bool) {
	return s.value, s.kind == KindFixed
}

// Flex returns the flex weight and true if s is Flex.
func (s Sizing) Flex() (uint8, bool) {
	return s.weight, s.kind == KindFlex
}

// String returns the canonical text form: "fit", "flex", "flex(N)" or
// "fixed(V)".
func (s Sizing) String() string {
	switch s.kind {
	case KindFixed:
		return "fixed(" + strconv.FormatFloat(s.value, 'g', -1, 64) + ")"
	case KindFlex:
		if s.weight == 1 {
			return "flex"
		}
		return "flex(" + strconv.Itoa(int(s.weight)) + ")"
	}
	return "fit"
}

// ParseSizing parses the text form produced by [Sizing.String]. A bare number
// is accepted as a fixed size and "flex:N" as an alias for "flex(N)".
// Weight 0 and negative or non-finite fixed values are rejected.
func ParseSizing(text string) (Sizing, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "", "fit", "auto":
		return Fit(), nil
	case "flex", "fill":
		return Flex(1), nil
	}

	if arg, ok := call(t, "flex"); ok {
		w, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return Sizing{}, fmt.Errorf("invalid flex weight %q", arg)
		}
		if w == 0 {
			return Sizing{}, fmt.Errorf("flex weight must be at least 1")
		}
		return Flex(uint8(w)), nil
	}

	num := t
	if arg, ok := call(t, "fixed"); ok {
		num = arg
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Sizing{}, fmt.Errorf("invalid sizing %q", text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Sizing{}, fmt.Errorf("fixed size must be finite: %q", text)
	}
	if v < 0 {
		return Sizing{}, fmt.Errorf("fixed size must not be negative: %g", v)
	}
	return Fixed(v), nil
}

// call extracts the argument of name(arg) or name:arg.
func call(t, name string) (string, bool) {
	if !strings.HasPrefix(t, name) {
		return "", false
	}
	rest := strings.TrimSpace(t[len(name):])
	switch {
	case strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")"):
		return strings.TrimSpace(rest[1 : len(rest)-1]), true
	case strings.HasPrefix(rest, ":"):
		return strings.TrimSpace(rest[1:]), true
	}
	return "", false
}

// MarshalText implements encoding.TextMarshaler.
func (s Sizing) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sizing) UnmarshalText(text []byte) error {
	v, err := ParseSizing(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
