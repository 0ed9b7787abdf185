package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// DataSeries is one plotted line
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// BalanceChart plots balance paths on a character grid
type BalanceChart struct {
	Title  string
	Series []DataSeries
	Labels []string // first and last are printed under the x-axis
	Width  int
	Height int
}

// NewBalanceChart creates a chart with a default size
func NewBalanceChart(title string) *BalanceChart {
	return &BalanceChart{Title: title, Width: 60, Height: 12}
}

// AddSeries appends a series
func (c *BalanceChart) AddSeries(name string, points []float64, color lipgloss.Color) *BalanceChart {
	c.Series = append(c.Series, DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets x-axis labels
func (c *BalanceChart) WithLabels(labels []string) *BalanceChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *BalanceChart) WithSize(width, height int) *BalanceChart {
	if width > 20 {
		c.Width = width
	}
	if height > 3 {
		c.Height = height
	}
	return c
}

const yAxisWidth = 9

var seriesChars = []rune{'●', '■', '▲', '♦'}

// Render returns the chart as text
func (c *BalanceChart) Render() string {
	if len(c.Series) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	lo, hi := c.bounds()
	if hi <= lo {
		hi = lo + 1
	}

	plotWidth := c.Width - yAxisWidth - 3
	grid := make([][]rune, c.Height)
	owner := make([][]int, c.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", plotWidth))
		owner[y] = make([]int, plotWidth)
	}

	for si, s := range c.Series {
		n := len(s.Points)
		for i, p := range s.Points {
			x := 0
			if n > 1 {
				x = i * (plotWidth - 1) / (n - 1)
			}
			y := c.Height - 1 - int(math.Round((p-lo)/(hi-lo)*float64(c.Height-1)))
			if y >= 0 && y < c.Height && x < plotWidth {
				grid[y][x] = seriesChars[si%len(seriesChars)]
				owner[y][x] = si
			}
		}
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		out.WriteString("\n")
	}
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for y, row := range grid {
		label := ""
		if y == 0 || y == c.Height-1 || y == c.Height/2 {
			label = tuistyles.FormatCompact(hi - float64(y)/float64(c.Height-1)*(hi-lo))
		}
		out.WriteString(axis.Render(label))
		out.WriteString(" │ ")
		for x, r := range row {
			if r == ' ' {
				out.WriteRune(r)
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[owner[y][x]].Color).Render(string(r)))
		}
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth) + " └" + strings.Repeat("─", plotWidth) + "\n")
	if len(c.Labels) > 1 {
		first, last := c.Labels[0], c.Labels[len(c.Labels)-1]
		gap := plotWidth - len(first) - len(last)
		if gap < 1 {
			gap = 1
		}
		out.WriteString(strings.Repeat(" ", yAxisWidth+3) + first + strings.Repeat(" ", gap) + last + "\n")
	}
	out.WriteString(c.legend())
	return out.String()
}

func (c *BalanceChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if math.IsInf(lo, 0) {
		return 0, 1
	}
	return math.Min(lo, 0), hi
}

func (c *BalanceChart) legend() string {
	items := make([]string, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChars[i%len(seriesChars)]))
		items[i] = fmt.Sprintf("%s %s", symbol, s.Name)
	}
	return tuistyles.SubtitleStyle.Render("Legend: ") + strings.Join(items, "  ")
}
