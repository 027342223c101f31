package svg

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/gogpu/glyphsvg"
)

// ErrInvalidPathData is returned by ParsePathData for malformed input.
var ErrInvalidPathData = errors.New("svg: invalid path data")

// PathData formats p as the d attribute of an SVG path element, using
// absolute M, L, C and Z commands. A contour's final line back to its
// start is left out since Z draws it.
//
// prec is the number of decimals; a negative prec writes the shortest
// exact form.
func PathData(p glyphsvg.GlyphPath, prec int) string {
	var b []byte
	for _, c := range p.Contours() {
		if c.Len() == 0 {
			continue
		}
		b = appendCommand(b, 'M', prec, c.Start())

		segs := c.Segments()
		if last := segs[len(segs)-1]; last.Kind == glyphsvg.SegmentLine && last.To == c.Start() {
			segs = segs[:len(segs)-1]
		}
		for _, s := range segs {
			switch s.Kind {
			case glyphsvg.SegmentLine:
				b = appendCommand(b, 'L', prec, s.To)
			case glyphsvg.SegmentCubic:
				b = appendCommand(b, 'C', prec, s.C1, s.C2, s.To)
			}
		}
		b = append(b, 'Z')
	}
	return string(b)
}

func appendCommand(b []byte, cmd byte, prec int, pts ...glyphsvg.Point) []byte {
	b = append(b, cmd)
	for i, p := range pts {
		if i > 0 {
			b = append(b, ' ')
		}
		b = appendNumber(b, p.X, prec)
		b = append(b, ' ')
		b = appendNumber(b, p.Y, prec)
	}
	return b
}

// argCount is the number of arguments per command.
var argCount = map[byte]int{
	'M': 2,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'Q': 4,
	'Z': 0,
}

// ParsePathData parses SVG path data into a canvas-space GlyphPath.
//
// It accepts the M, L, H, V, C, Q and Z commands in absolute and relative
// form, with implicit repetition. Quadratic curves are raised to cubics.
// Every subpath is closed, whether or not it ends with Z.
func ParsePathData(d string) (glyphsvg.GlyphPath, error) {
	pp := pathParser{data: []byte(d)}
	if err := pp.parse(); err != nil {
		return glyphsvg.GlyphPath{}, err
	}
	return glyphsvg.NewGlyphPath(glyphsvg.SpaceCanvas, pp.contours...), nil
}

type pathParser struct {
	data []byte
	pos  int

	contours []glyphsvg.Contour
	start    glyphsvg.Point
	cur      glyphsvg.Point
	segs     []glyphsvg.Segment
	open     bool
}

func (pp *pathParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at position %d", ErrInvalidPathData, fmt.Sprintf(format, args...), pp.pos+1)
}

func (pp *pathParser) skipSpace() {
	for pp.pos < len(pp.data) {
		switch pp.data[pp.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			pp.pos++
		default:
			return
		}
	}
}

func (pp *pathParser) atNumber() bool {
	if pp.pos >= len(pp.data) {
		return false
	}
	c := pp.data[pp.pos]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func (pp *pathParser) number(cmd byte) (float64, error) {
	f, n := strconv.ParseFloat(pp.data[pp.pos:])
	if n == 0 {
		return 0, pp.errorf("number expected after '%c'", cmd)
	}
	pp.pos += n
	pp.skipSpace()
	return f, nil
}

func (pp *pathParser) parse() error {
	var prev byte
	for {
		pp.skipSpace()
		if pp.pos >= len(pp.data) {
			break
		}

		cmd := prev
		if !pp.atNumber() {
			cmd = pp.data[pp.pos]
			pp.pos++
			pp.skipSpace()
		} else if prev == 0 || prev == 'Z' || prev == 'z' {
			return pp.errorf("number without a command")
		}

		upper := cmd
		if cmd >= 'a' && cmd <= 'z' {
			upper -= 'a' - 'A'
		}
		n, ok := argCount[upper]
		if !ok {
			return pp.errorf("unsupported command '%c'", cmd)
		}
		if prev == 0 && upper != 'M' {
			return pp.errorf("path data must start with a move")
		}

		var f [6]float64
		for i := range n {
			v, err := pp.number(cmd)
			if err != nil {
				return err
			}
			f[i] = v
		}
		if err := pp.apply(cmd, f); err != nil {
			return err
		}

		// Pairs after a move are implicit lines.
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
		prev = cmd
	}
	pp.closePath()
	return nil
}

func (pp *pathParser) apply(cmd byte, f [6]float64) error {
	rel := cmd >= 'a' && cmd <= 'z'
	pt := func(x, y float64) glyphsvg.Point {
		if rel {
			return glyphsvg.Pt(pp.cur.X+x, pp.cur.Y+y)
		}
		return glyphsvg.Pt(x, y)
	}

	switch cmd {
	case 'M', 'm':
		to := pt(f[0], f[1])
		pp.closePath()
		pp.start, pp.cur, pp.open = to, to, true
		return nil
	case 'Z', 'z':
		pp.closePath()
		pp.cur = pp.start
		return nil
	}

	if !pp.open {
		// Drawing after Z continues from the last subpath's start.
		pp.open = true
		pp.start = pp.cur
	}

	switch cmd {
	case 'L', 'l':
		pp.lineTo(pt(f[0], f[1]))
	case 'H':
		pp.lineTo(glyphsvg.Pt(f[0], pp.cur.Y))
	case 'h':
		pp.lineTo(glyphsvg.Pt(pp.cur.X+f[0], pp.cur.Y))
	case 'V':
		pp.lineTo(glyphsvg.Pt(pp.cur.X, f[0]))
	case 'v':
		pp.lineTo(glyphsvg.Pt(pp.cur.X, pp.cur.Y+f[0]))
	case 'C', 'c':
		c1, c2, to := pt(f[0], f[1]), pt(f[2], f[3]), pt(f[4], f[5])
		pp.segs = append(pp.segs, glyphsvg.CubicSeg(c1, c2, to))
		pp.cur = to
	case 'Q', 'q':
		q := glyphsvg.QuadBez{P0: pp.cur, P1: pt(f[0], f[1]), P2: pt(f[2], f[3])}
		c := q.Raise()
		pp.segs = append(pp.segs, glyphsvg.CubicSeg(c.P1, c.P2, c.P3))
		pp.cur = c.P3
	default:
		return pp.errorf("unsupported command '%c'", cmd)
	}
	return nil
}

func (pp *pathParser) lineTo(to glyphsvg.Point) {
	pp.segs = append(pp.segs, glyphsvg.LineSeg(to))
	pp.cur = to
}

// closePath finishes the open subpath. A subpath without segments is
// dropped.
func (pp *pathParser) closePath() {
	if pp.open && len(pp.segs) > 0 {
		pp.contours = append(pp.contours, glyphsvg.NewContour(pp.start, pp.segs...))
	}
	pp.segs = nil
	pp.open = false
}
