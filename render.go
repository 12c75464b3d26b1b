package main

import (
	"fmt"
	"math"
	"strings"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a gate type. Controlled
// rotations show the rotation name in the target box; the control wire gets
// the dot.
func gateDisplayName(gateType string) string {
	switch gateType {
	case "MEASURE":
		return "M"
	case "CRX", "CRY", "CRZ":
		return strings.TrimPrefix(gateType, "C")
	default:
		return gateType
	}
}

// targetSymbol returns the wire symbol for the target of a plain two-qubit
// gate. Controlled rotations are boxed instead and never reach this.
func targetSymbol(gateType string) string {
	if gateType == "CZ" {
		return "●"
	}
	return "⊕"
}

// ──────────────────────────── Cell rendering ────────────────────────────

// renderCell returns 3 lines (top, mid, bot) for a single cell, each exactly
// cellW visual characters wide.
func renderCell(info cellInfo) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	boxed := func(name string) {
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		padded := padCenter(name, gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+padded+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	}

	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.gate != nil && info.isControl:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.gate != nil && info.isTarget:
		if info.gate.IsRotation() {
			boxed(gateDisplayName(info.gate.Type))
		} else {
			top = emptyRow
			mid = strings.Repeat("─", dashL) + gateStyle.Render(targetSymbol(info.gate.Type)) + strings.Repeat("─", dashR)
			bot = emptyRow
		}
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}

	case info.gate != nil:
		boxed(gateDisplayName(info.gate.Type))

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	default:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Preparation Circuit"))
	sb.WriteString("\n\n")

	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.circuit.MaxSteps > maxSteps {
		startStep = m.circuit.MaxSteps - maxSteps
	}
	displaySteps := maxSteps

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+displaySteps-1)
	}

	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+displaySteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := 0; qubit < m.circuit.NumQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+displaySteps; step++ {
			info := m.circuit.getCellInfo(step, qubit)
			top, mid, bot := renderCell(info)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	fmt.Fprintf(&sb, "\n  %d rotation gates over %d levels",
		m.circuit.RotationGateCount(), m.circuit.NumQubits)
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderDistributionPanel renders target vs simulated probabilities as
// horizontal bar pairs, one per basis state.
func (m Model) renderDistributionPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Distribution"))
	sb.WriteString("\n\n")

	maxP := 0.0
	for i := range m.target {
		maxP = math.Max(maxP, math.Max(m.target[i], m.simulated[i]))
	}
	if maxP == 0 {
		maxP = 1
	}

	barW := max(width-18, 8)
	for i := range m.target {
		tLen := int(math.Round(m.target[i] / maxP * float64(barW)))
		sLen := int(math.Round(m.simulated[i] / maxP * float64(barW)))
		fmt.Fprintf(&sb, "%s %s\n", dimStyle.Render(fmt.Sprintf("|%0*b⟩", m.circuit.NumQubits, i)),
			targetBarStyle.Render(strings.Repeat("█", tLen)))
		fmt.Fprintf(&sb, "%s %s %s\n", strings.Repeat(" ", m.circuit.NumQubits+2),
			simulatedBarStyle.Render(strings.Repeat("█", sLen)),
			dimStyle.Render(fmt.Sprintf("%.4f", m.simulated[i])))
	}

	sb.WriteString("\n")
	sb.WriteString(targetBarStyle.Render("█ target"))
	sb.WriteString("  ")
	sb.WriteString(simulatedBarStyle.Render("█ simulated"))
	if div := DistributionDivergence(m.target, m.simulated); math.IsInf(div, 0) {
		sb.WriteString(dimStyle.Render("  KL ∞"))
	} else {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  KL %.5f", div)))
	}

	return distStyle.Width(width).Height(height).Render(sb.String())
}

// renderParamsPanel renders the adjustable construction parameters.
func (m Model) renderParamsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Gaussian Parameters"))
	sb.WriteString("\n\n")

	rows := []struct {
		name  string
		value string
	}{
		{"μ (mean)", fmt.Sprintf("%g", m.params.Mu)},
		{"σ (std dev)", fmt.Sprintf("%g", m.params.Sigma)},
		{"n (radius)", fmt.Sprintf("%d", m.params.Radius)},
		{"k (precision)", fmt.Sprintf("%d", m.precision)},
		{"N (qubits)", fmt.Sprintf("%d", m.qubits)},
	}
	for i, row := range rows {
		cursor := "  "
		style := menuNormalStyle
		if i == m.paramCursor {
			cursor = "❯ "
			style = menuSelectedStyle
		}
		sb.WriteString(cursor + style.Render(fmt.Sprintf("%-14s %s", row.name, row.value)) + "\n")
	}

	sb.WriteString("\n")
	for _, lv := range m.levels {
		fmt.Fprintf(&sb, "%s\n", dimStyle.Render(fmt.Sprintf("q%d  α=%.6f  bits=%s",
			lv.Qubit, lv.Angle, bitString(lv.Approx.Bits))))
	}

	return paramsStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Params:  "))
	sb.WriteString("↑↓/jk Select  ←→/hl Adjust  Shift speeds μ/σ")
	sb.WriteString("\n")
	sb.WriteString(activeGateStyle.Render("Actions: "))
	sb.WriteString("Tab Focus QASM  ^S Save QASM  ^E Export chart  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// bitString formats a bit slice as e.g. "000111".
func bitString(bits []int) string {
	var sb strings.Builder
	for _, b := range bits {
		sb.WriteByte(byte('0' + b))
	}
	return sb.String()
}
