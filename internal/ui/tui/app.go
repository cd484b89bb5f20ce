package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenHome screen = iota
	screenWizard
	screenOutput
)

const (
	menuReading = "New reading"
	menuPlaces  = "Places"
	menuVerify  = "Verify casebooks"
	menuInit    = "Init workspace"
	menuQuit    = "Quit"
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps

	scr  screen
	menu list.Model

	input      textinput.Model
	wizardStep wizardStep
	form       wizardForm

	running bool
	toast   string

	outputTitle string
	output      string

	workspaceFound bool
	workspaceRoot  string
	cwd            string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	items := []list.Item{
		menuItem{menuReading, "姓名五格與四柱八字 (name chart and Four Pillars)"},
		menuItem{menuPlaces, "Places known without a network lookup"},
		menuItem{menuVerify, "Recompute casebooks under cases/ and check them"},
		menuItem{menuInit, "Scaffold mingpan.yaml, places.yaml, cases/ and data/ here"},
		menuItem{menuQuit, "Exit mingpan"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "mingpan"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	in := textinput.New()
	in.CharLimit = 64
	in.Width = 40

	return model{
		theme: t,
		deps:  deps,
		scr:   screenHome,
		menu:  l,
		input: in,
	}
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.menu.SetSize(w-4, h-10)
		return m, nil

	case workspaceRefreshedMsg:
		m.cwd = msg.cwd
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m, nil

	case initWorkspaceDoneMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace initialized at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case placesLoadedMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			m.scr = screenHome
			return m, nil
		}
		m.showOutput(menuPlaces, renderPlaces(msg.places))
		return m, nil

	case verifyDoneMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			m.scr = screenHome
			return m, nil
		}
		m.showOutput(menuVerify, renderVerify(msg.results))
		return m, nil

	case readingDoneMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			if msg.res.Reading.BaziReport == "" {
				m.scr = screenHome
				return m, nil
			}
		}
		m.showOutput(menuReading, renderReading(msg.res))
		return m, nil

	case tea.KeyMsg:
		if m.running {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch m.scr {
		case screenHome:
			return m.updateHome(msg)
		case screenWizard:
			return m.updateWizard(msg)
		case screenOutput:
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "b", "q", "enter":
				m.scr = screenHome
				return m, nil
			}
			return m, nil
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	if m.scr == screenWizard {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.menu.FilterState() != list.Filtering {
			return m, tea.Quit
		}
	case "enter":
		if m.menu.FilterState() == list.Filtering {
			break
		}
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		return m.open(it.title)
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) open(title string) (tea.Model, tea.Cmd) {
	m.toast = ""
	if title == menuQuit {
		return m, tea.Quit
	}
	if title == menuInit {
		root := m.cwd
		if m.workspaceFound {
			root = m.workspaceRoot
		}
		if strings.TrimSpace(root) == "" {
			m.toast = "Working directory unknown"
			return m, nil
		}
		m.running = true
		return m, cmdInitWorkspaceHere(m.deps, root)
	}
	if !m.workspaceFound {
		m.toast = "No workspace found. Choose " + menuInit + " first."
		return m, nil
	}

	switch title {
	case menuReading:
		m.scr = screenWizard
		m.form = wizardForm{}
		m.setStep(stepName)
		return m, textinput.Blink
	case menuPlaces:
		m.running = true
		return m, cmdLoadPlaces(m.workspaceRoot, m.deps.Logger)
	case menuVerify:
		m.running = true
		return m, cmdVerifyAll(m.workspaceRoot, m.deps.Logger)
	}
	return m, nil
}

func (m model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.wizardStep == stepName {
			m.scr = screenHome
			m.input.Blur()
			return m, nil
		}
		m.setStep(m.wizardStep - 1)
		return m, nil
	case "enter":
		if err := m.form.set(m.wizardStep, m.input.Value()); err != nil {
			m.toast = userMessage(err)
			return m, nil
		}
		m.toast = ""
		if m.wizardStep+1 < stepCount {
			m.setStep(m.wizardStep + 1)
			return m, nil
		}
		m.running = true
		m.input.Blur()
		_, cmd := startReadingAsync(m.workspaceRoot, m.form.request(), m.deps.Logger, m.deps.Debug)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) setStep(step wizardStep) {
	m.wizardStep = step
	m.input.Reset()
	m.input.Placeholder = stepPlaceholders[step]
	m.input.Focus()
}

func (m *model) showOutput(title, body string) {
	m.scr = screenOutput
	m.outputTitle = title
	m.output = body
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("mingpan 命盤") + "\n" +
		m.theme.Subtitle.Render("Four Pillars and five-grid name readings") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Card.Render(
			"⚠ No workspace found.\n\nCreate one with " + menuInit + ".",
		)
	}

	footer := ""
	if m.running {
		footer = "\n" + m.theme.Help.Render("working…")
	}
	if m.toast != "" {
		footer += "\n" + m.theme.Toast.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help + footer)

	case screenWizard:
		var answered strings.Builder
		for s := stepName; s < m.wizardStep; s++ {
			answered.WriteString(m.theme.Help.Render("✓ "+stepPrompts[s]) + "\n")
		}
		card := m.theme.Card.Render(
			fmt.Sprintf("%s\n\n%s%s\n%s\n\n%s",
				m.theme.Title.Render(menuReading),
				answered.String(),
				m.theme.Prompt.Render(stepPrompts[m.wizardStep]),
				m.input.View(),
				m.theme.Help.Render(fmt.Sprintf("step %d/%d • enter next • esc back", m.wizardStep+1, stepCount)),
			),
		)
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + card + footer)

	case screenOutput:
		card := m.theme.Card.Render(
			fmt.Sprintf("%s\n\n%s\n%s",
				m.theme.Title.Render(m.outputTitle),
				m.output,
				m.theme.Help.Render("esc/b back • q home"),
			),
		)
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + card + footer)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
