package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/mat"

	"github.com/elvijs/linear-systems/internal/linsys"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const rotateStep = math.Pi / 12

// Viewer is a bubbletea model that browses a finished trajectory.
type Viewer struct {
	title  string
	system string
	tr     *linsys.Trajectory

	panels   []string
	panel    int
	cursor   int
	cam      *Camera
	showHelp bool

	width  int
	height int
}

// NewViewer prepares a viewer for tr. sys may be nil.
func NewViewer(title string, sys fmt.Stringer, tr *linsys.Trajectory) *Viewer {
	v := &Viewer{
		title:  title,
		tr:     tr,
		cam:    NewCamera(),
		width:  DefaultChartWidth,
		height: 24,
	}
	if sys != nil {
		v.system = sys.String()
	}
	v.panels = []string{"x"}
	if tr.HasOutputs() {
		v.panels = append(v.panels, "y")
	}
	in := tr.InputName
	if in == "" {
		in = "u"
	}
	v.panels = append(v.panels, in, "norms")
	return v
}

// Panel reports the signal currently on screen.
func (v *Viewer) Panel() string { return v.panels[v.panel] }

// Cursor reports the selected step.
func (v *Viewer) Cursor() int { return v.cursor }

func (v *Viewer) Init() tea.Cmd { return nil }

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

func (v *Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return v, tea.Quit
	case "tab":
		v.panel = (v.panel + 1) % len(v.panels)
	case "shift+tab":
		v.panel = (v.panel + len(v.panels) - 1) % len(v.panels)
	case "]", "right", "l":
		if v.cursor < v.tr.Len()-1 {
			v.cursor++
		}
	case "[", "left", "h":
		if v.cursor > 0 {
			v.cursor--
		}
	case "home", "g":
		v.cursor = 0
	case "end", "G":
		v.cursor = max(v.tr.Len()-1, 0)
	case "x":
		v.cam.RotateX(rotateStep)
	case "y":
		v.cam.RotateY(rotateStep)
	case "z":
		v.cam.RotateZ(rotateStep)
	case "+", "=":
		v.cam.ZoomIn()
	case "-":
		v.cam.ZoomOut()
	case "t", "T":
		NextTheme()
	case "?":
		v.showHelp = !v.showHelp
	}
	return v, nil
}

func (v *Viewer) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Foreground(CurrentTheme.Primary).Render(v.title))
	b.WriteString("  ")
	for i, p := range v.panels {
		if i == v.panel {
			b.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).Render("[" + p + "]"))
		} else {
			b.WriteString(labelStyle.Render(" " + p + " "))
		}
	}
	b.WriteString("\n\n")

	if v.showHelp {
		if v.system != "" {
			b.WriteString(Panel.Render(v.system))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render(helpText))
		b.WriteString("\n")
		return b.String()
	}

	width := max(v.width-12, 20)
	height := max(v.height-12, 5)
	body, err := v.body(width, height)
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(v.stepLine())
	b.WriteString("\n")
	if err != nil {
		b.WriteString(ErrorStyle.Render(err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab signal · [ ] step · x y z rotate · + - zoom · t theme · ? help · q quit"))
	return b.String()
}

func (v *Viewer) body(width, height int) (string, error) {
	name := v.Panel()
	if name == "norms" {
		return NormChart(v.tr, width, height), nil
	}
	return RenderSignal(name, v.sequence(name), width, height, v.cam)
}

func (v *Viewer) sequence(name string) []*mat.VecDense {
	switch name {
	case "x":
		return v.tr.States
	case "y":
		return v.tr.Outputs
	default:
		return v.tr.Inputs
	}
}

func (v *Viewer) stepLine() string {
	n := v.tr.Len()
	if n == 0 {
		return labelStyle.Render("empty trajectory")
	}
	k := v.cursor
	parts := []string{KeyValue("step", fmt.Sprintf("%d/%d", k, n-1))}
	parts = append(parts, KeyValue("x", formatVec(v.tr.States[k])))
	if v.tr.HasOutputs() {
		parts = append(parts, KeyValue("y", formatVec(v.tr.Outputs[k])))
	}
	in := v.tr.InputName
	if in == "" {
		in = "u"
	}
	parts = append(parts, KeyValue(in, formatVec(v.tr.Inputs[k])))
	return strings.Join(parts, "\n")
}

func formatVec(x mat.Vector) string {
	vals := make([]string, x.Len())
	for i := range vals {
		vals[i] = fmt.Sprintf("%.4g", x.AtVec(i))
	}
	return "[" + strings.Join(vals, " ") + "]"
}

const helpText = `tab / shift+tab   next / previous signal
[ ] or ← →        move the step cursor
g G               first / last step
x y z             rotate 3D phase plots
+ -               zoom
t                 cycle theme
?                 toggle this help
q                 quit`

// Run opens the viewer full screen and blocks until the user quits.
func Run(title string, sys fmt.Stringer, tr *linsys.Trajectory) error {
	p := tea.NewProgram(NewViewer(title, sys, tr), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
