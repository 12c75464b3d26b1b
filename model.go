package main

import (
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusParams focus = iota
	focusQASM
)

// Hard caps on the interactive parameter ranges. The statevector doubles per
// qubit and the bar panel lists every basis state, so the register stays
// small in the TUI; the headless command has no such cap.
const (
	maxTUIQubits    = 6
	maxTUIPrecision = 24
)

// Model is the TUI application state: the construction parameters, the
// planned levels, the emitted circuit and both distributions derived from it.
type Model struct {
	params    GaussianParams
	precision int
	qubits    int

	levels    []Level
	circuit   *Circuit
	target    []float64
	simulated []float64

	paramCursor int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string // transient status message (e.g. save confirmation)
}

func initialModel() Model {
	ta := textarea.New()
	ta.SetWidth(40)
	ta.SetHeight(16)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		params:     DefaultGaussianParams(),
		precision:  6,
		qubits:     3,
		focus:      focusParams,
		qasmEditor: ta,
	}
	m.rebuild()
	return m
}

// rebuild re-plans the levels, re-emits the circuit, re-simulates and
// refreshes the QASM view. Called after every parameter change.
func (m *Model) rebuild() {
	levels, err := PlanLevels(m.params, m.precision, m.qubits)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.levels = levels

	circuit := NewCircuit(m.qubits)
	if _, err := PrepareGaussianState(circuit, m.params, m.precision, m.qubits); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.circuit = circuit
	m.target = TargetDistribution(m.params, m.qubits)
	m.simulated = SimulateCircuit(circuit).BasisProbabilities()

	qasm := circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

// parseQASMInput re-parses an edited QASM buffer into the circuit and
// re-simulates it. The parameter panel keeps its last values; the circuit is
// marked as hand-edited until the next parameter change rebuilds it.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	circuit := NewCircuit(m.qubits)
	if err := circuit.ParseQASM(qasm); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.circuit = circuit
	m.simulated = SimulateCircuit(circuit).BasisProbabilities()
	m.target = TargetDistribution(m.params, circuit.NumQubits)
	m.lastQASM = qasm
	m.statusMsg = "circuit from edited QASM"
}

// adjustParam applies a left/right adjustment to the selected parameter.
// big steps come from the shifted keys.
func (m *Model) adjustParam(dir float64, big bool) {
	switch m.paramCursor {
	case 0:
		step := 0.1
		if big {
			step = 1
		}
		m.params.Mu += dir * step
	case 1:
		step := 0.1
		if big {
			step = 1
		}
		m.params.Sigma = math.Max(m.params.Sigma+dir*step, 0.1)
	case 2:
		m.params.Radius = max(m.params.Radius+int(dir)*100, 10)
	case 3:
		m.precision = min(max(m.precision+int(dir), 1), maxTUIPrecision)
	case 4:
		m.qubits = min(max(m.qubits+int(dir), 1), maxTUIQubits)
	}
	m.rebuild()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		editorH := max(msg.Height/2-8, 4)
		m.qasmEditor.SetHeight(editorH)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusParams:
			switch key {
			case "q", "esc":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "up", "k":
				if m.paramCursor > 0 {
					m.paramCursor--
				}
			case "down", "j":
				if m.paramCursor < 4 {
					m.paramCursor++
				}
			case "left", "h":
				m.adjustParam(-1, false)
			case "right", "l":
				m.adjustParam(+1, false)
			case "H", "shift+left":
				m.adjustParam(-1, true)
			case "L", "shift+right":
				m.adjustParam(+1, true)
			case "ctrl+s":
				if err := os.WriteFile("gaussian.qasm", []byte(m.circuit.ToQASM()), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("save error: %v", err)
				} else {
					m.statusMsg = "saved gaussian.qasm"
				}
			case "ctrl+e":
				if err := WriteDistributionChart("distribution.html", m.params, m.target, m.simulated); err != nil {
					m.statusMsg = fmt.Sprintf("chart error: %v", err)
				} else {
					m.statusMsg = "exported distribution.html"
				}
			}

		case focusQASM:
			switch key {
			case "tab", "esc":
				m.focus = focusParams
				m.qasmEditor.Blur()
				m.parseQASMInput()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	paramsWidth := 38
	circuitWidth := m.width - qasmWidth - paramsWidth - 6
	controlsHeight := 5
	rowHeight := max((m.height-controlsHeight-4)/2, 8)

	paramsPanel := m.renderParamsPanel(paramsWidth, rowHeight)
	circuitPanel := m.renderCircuitPanel(circuitWidth+qasmWidth+2, rowHeight)
	distPanel := m.renderDistributionPanel(paramsWidth+circuitWidth+2, rowHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, rowHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, paramsPanel, circuitPanel)
	midRow := lipgloss.JoinHorizontal(lipgloss.Top, distPanel, qasmPanel)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, midRow, controlsPanel)
}

// runTUI starts the interactive explorer.
func runTUI() error {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
