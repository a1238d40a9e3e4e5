package mdp

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-mdp/game/maze"
	"github.com/logrusorgru/aurora"
)

// Render draws a value map row by row, top row first. Each cell is shown as (tag,score). Cells
// missing from the map are drawn as "--". When colored is set, kind tags are coloured.
func Render(vm ValueMap, bounds maze.Bounds, colored bool) string {
	au := aurora.NewAurora(colored)
	var sb strings.Builder

	for y := bounds.MaxY; y >= bounds.MinY; y-- {
		fmt.Fprintf(&sb, "%-4s:", fmt.Sprintf("y=%d", y))
		for x := bounds.MinX; x <= bounds.MaxX; x++ {
			v, ok := vm[maze.Cell{X: x, Y: y}]
			if !ok {
				fmt.Fprintf(&sb, "(%2s,%8s)", "--", "")
				continue
			}
			fmt.Fprintf(&sb, "(%s,%8s)", paintTag(au, v.Kind()), fmt.Sprintf("%+4.3f", v.Value()))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("     ")
	for x := bounds.MinX; x <= bounds.MaxX; x++ {
		fmt.Fprintf(&sb, "%-13s", fmt.Sprintf(" x=%d", x))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func paintTag(au aurora.Aurora, k Kind) string {
	tag := k.Tag()
	switch k {
	case KindWall:
		return au.Blue(tag).String()
	case KindTarget:
		return au.Green(tag).String()
	case KindHazard:
		return au.Red(tag).String()
	case KindConverged:
		return au.Cyan(tag).String()
	default:
		return tag
	}
}
