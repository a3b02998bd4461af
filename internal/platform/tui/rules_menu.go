package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/games/t2048"
)

var (
	difficultyChoices = []config.DifficultyPreset{
		config.DifficultyFixed,
		config.DifficultyEasy,
		config.DifficultyNormal,
		config.DifficultyHard,
	}
	lossRuleChoices = []t2048.LossRule{t2048.LossReference, t2048.LossNoMoves}
)

// Rules menu rows.
const (
	rowDifficulty = iota
	rowLossRule
	rowSkipIdle
	rowAnimate
	rowStart
	rowCount
)

// RulesSelection holds the rule tweaks chosen before a game starts.
type RulesSelection struct {
	Difficulty    config.DifficultyPreset
	LossRule      t2048.LossRule
	SkipIdleSpawn bool
	Animate       bool
}

// Apply writes the selection into a loaded config.
func (s RulesSelection) Apply(cfg *config.T2048Config) {
	config.ApplyT2048Preset(cfg, s.Difficulty)
	cfg.Rules.LossRule = string(s.LossRule)
	cfg.Rules.SkipIdleSpawn = s.SkipIdleSpawn
	cfg.Presentation.Animate = s.Animate
}

// RulesModel lets users adjust difficulty and rule options for a board.
type RulesModel struct {
	title      string
	cursor     int
	difficulty int // Index into difficultyChoices
	lossRule   int // Index into lossRuleChoices
	skipIdle   bool
	animate    bool
	width      int
	height     int
	keyMapper  *KeyMapper
	choosing   bool
	quitting   bool
	back       bool
}

// NewRulesModel creates a rules menu starting from the loaded config.
func NewRulesModel(title string, cfg config.T2048Config, width, height int) RulesModel {
	m := RulesModel{
		title:     title,
		cursor:    rowStart,
		skipIdle:  cfg.Rules.SkipIdleSpawn,
		animate:   cfg.Presentation.Animate,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	for i, r := range lossRuleChoices {
		if string(r) == cfg.Rules.LossRule {
			m.lossRule = i
		}
	}
	return m
}

// Init initializes the model.
func (m RulesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m RulesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m RulesModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < rowCount-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.cycle(-1)
	case MenuActionRight:
		m.cycle(1)
	case MenuActionSelect:
		if m.cursor == rowStart {
			m.choosing = false
			return m, tea.Quit
		}
		m.cycle(1)
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// cycle changes the option under the cursor.
func (m *RulesModel) cycle(delta int) {
	switch m.cursor {
	case rowDifficulty:
		m.difficulty = wrap(m.difficulty+delta, len(difficultyChoices))
	case rowLossRule:
		m.lossRule = wrap(m.lossRule+delta, len(lossRuleChoices))
	case rowSkipIdle:
		m.skipIdle = !m.skipIdle
	case rowAnimate:
		m.animate = !m.animate
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// View renders the rule options.
func (m RulesModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Game rules:", m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Difficulty:      < %s >", m.selection().Difficulty),
		fmt.Sprintf("Loss rule:       < %s >", m.selection().LossRule),
		fmt.Sprintf("Skip idle moves: < %s >", onOff(m.skipIdle)),
		fmt.Sprintf("Animations:      < %s >", onOff(m.animate)),
		"Start",
	}

	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Change  |  Enter: Start  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m RulesModel) selection() RulesSelection {
	return RulesSelection{
		Difficulty:    difficultyChoices[m.difficulty],
		LossRule:      lossRuleChoices[m.lossRule],
		SkipIdleSpawn: m.skipIdle,
		Animate:       m.animate,
	}
}

// Selected returns the selection, or nil if still choosing.
func (m RulesModel) Selected() *RulesSelection {
	if m.choosing {
		return nil
	}
	s := m.selection()
	return &s
}

// IsQuitting returns true if user wants to quit.
func (m RulesModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m RulesModel) WantsBack() bool {
	return m.back
}

// RunRulesMenu runs the rules menu for a board. A nil selection means the
// player backed out or quit; quit reports which.
func RunRulesMenu(title string, cfg config.T2048Config, rc core.RuntimeConfig) (sel *RulesSelection, quit bool, err error) {
	model := NewRulesModel(title, cfg, rc.ScreenW, rc.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(RulesModel)
	if !ok {
		return nil, true, nil
	}
	if m.IsQuitting() {
		return nil, true, nil
	}
	if m.WantsBack() {
		return nil, false, nil
	}
	return m.Selected(), false, nil
}
